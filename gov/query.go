package gov

import (
	"github.com/calehh/funddao/state"
	"github.com/calehh/funddao/types"
)

// Read-side accessors. These take the engine lock in read mode so a
// query never observes a half-applied operation.

func (e *Engine) GetProposal(id uint64) (*types.Proposal, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	p, err := e.db.State().Proposal(id)
	if err != nil {
		if err == state.ErrNotFound {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return p, nil
}

// ProposalStatus derives the lifecycle status of a proposal as seen at
// the given height.
func (e *Engine) ProposalStatus(id uint64, height uint64) (types.ProposalStatus, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	st := e.db.State()
	p, err := st.Proposal(id)
	if err != nil {
		if err == state.ErrNotFound {
			return 0, ErrProposalNotFound
		}
		return 0, err
	}
	passed := Passed(p.YesVotes, p.NoVotes, st.Header().MemberCount)
	return p.StatusAt(height, passed), nil
}

func (e *Engine) GetVote(proposal uint64, voter string) (*types.Vote, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	st := e.db.State()
	if _, err := st.Proposal(proposal); err != nil {
		if err == state.ErrNotFound {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return st.Vote(proposal, voter)
}

func (e *Engine) Votes(proposal uint64) ([]*types.Vote, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	st := e.db.State()
	if _, err := st.Proposal(proposal); err != nil {
		if err == state.ErrNotFound {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return st.Votes(proposal)
}

func (e *Engine) IsMember(addr string) (bool, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	m, err := e.db.State().Member(addr)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// VotingPowerOf reports the weight the member would carry on a ballot
// cast now. Non-members have no power.
func (e *Engine) VotingPowerOf(addr string) (uint64, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	m, err := e.db.State().Member(addr)
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, nil
	}
	if m.Power == 0 {
		return types.DefaultPower, nil
	}
	return m.Power, nil
}

func (e *Engine) Members() ([]*types.Member, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Members()
}

func (e *Engine) MemberCount() uint64 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Header().MemberCount
}

func (e *Engine) ProposalCount() uint64 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Header().ProposalCount
}

func (e *Engine) Treasury() uint64 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Treasury()
}

func (e *Engine) AccountBalance(addr string) (uint64, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	a, err := e.db.State().Account(addr)
	if err != nil {
		return 0, err
	}
	if a == nil {
		return 0, nil
	}
	return a.Balance, nil
}

func (e *Engine) AccountNonce(addr string) (uint64, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	a, err := e.db.State().Account(addr)
	if err != nil {
		return 0, err
	}
	if a == nil {
		return 0, nil
	}
	return a.Nonce, nil
}

func (e *Engine) IsVotingActive(proposal uint64, height uint64) (bool, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	p, err := e.db.State().Proposal(proposal)
	if err != nil {
		if err == state.ErrNotFound {
			return false, ErrProposalNotFound
		}
		return false, err
	}
	return p.IsActive(height), nil
}

func (e *Engine) HasProposalPassed(proposal uint64) (bool, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	st := e.db.State()
	p, err := st.Proposal(proposal)
	if err != nil {
		if err == state.ErrNotFound {
			return false, ErrProposalNotFound
		}
		return false, err
	}
	if p.Cancelled {
		return false, nil
	}
	return Passed(p.YesVotes, p.NoVotes, st.Header().MemberCount), nil
}

func (e *Engine) StateHash() []byte {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	h := e.db.State().Hash()
	return h.Bytes()
}

func (e *Engine) Admin() string {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Header().Admin
}

func (e *Engine) ChainID() string {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Header().ChainID
}

func (e *Engine) VotingPeriod() uint64 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Header().VotingPeriod
}

func (e *Engine) LastHeight() uint64 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.db.State().Header().LastHeight
}
