package gov

import (
	"sync"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/state"
	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// Engine orchestrates proposals, voting, execution and membership over
// the state store. One mutex serializes every mutating operation; every
// mutating path touches the shared counters, so there is nothing to
// gain from finer locking. Height is always an explicit argument, never
// read from a clock.
type Engine struct {
	logger cmtlog.Logger
	db     *state.StateDB
	sink   EventSink

	mtx sync.RWMutex
}

func NewEngine(db *state.StateDB, sink EventSink, logger cmtlog.Logger) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		logger: logger.With("module", "gov"),
		db:     db,
		sink:   sink,
	}
}

// Bootstrap applies the genesis document once, on an empty state: chain
// identity, administrator, voting period, treasury seed and the
// founding membership. A later call on an initialized state is a no-op.
func (e *Engine) Bootstrap(genDoc *types.GenesisDoc) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	hdr := st.Header()
	if hdr.ChainID != "" {
		return nil
	}
	hdr.ChainID = genDoc.ChainID
	hdr.Admin = genDoc.Admin
	hdr.VotingPeriod = genDoc.VotingPeriod
	hdr.TreasuryBalance = genDoc.TreasuryBalance

	evs, err := e.initializeDAO(st, genDoc.Admin, genDoc.Members, 0)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, 0); err != nil {
		return err
	}
	e.logger.Info("dao bootstrapped", "chainId", genDoc.ChainID,
		"members", len(genDoc.Members), "treasury", genDoc.TreasuryBalance)
	e.publish(evs...)
	return nil
}

func (e *Engine) commit(st *state.State, height uint64) error {
	if height > st.Header().LastHeight {
		st.Header().LastHeight = height
	}
	if _, err := st.Commit(); err != nil {
		e.logger.Error("commit fail", "err", err)
		return err
	}
	return nil
}

func (e *Engine) publish(evs ...types.Event) {
	for _, ev := range evs {
		e.sink.Publish(ev)
	}
}

// CreateProposal allocates the next id for a funding proposal. The
// solvency check here is advisory; execution re-checks it.
func (e *Engine) CreateProposal(caller, title, description, recipient string, amount, height uint64) (uint64, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	id, ev, err := e.createProposal(st, caller, title, description, recipient, amount, height)
	if err != nil {
		st.Rollback()
		return 0, err
	}
	if err := e.commit(st, height); err != nil {
		return 0, err
	}
	e.publish(ev)
	return id, nil
}

func (e *Engine) createProposal(st *state.State, caller, title, description, recipient string, amount, height uint64) (uint64, types.Event, error) {
	m, err := st.Member(caller)
	if err != nil {
		return 0, types.Event{}, err
	}
	if m == nil {
		return 0, types.Event{}, ErrNotAMember
	}
	if amount == 0 {
		return 0, types.Event{}, ErrInvalidAmount
	}
	if amount > st.Treasury() {
		return 0, types.Event{}, ErrInsufficientFunds
	}

	p := &types.Proposal{
		Proposer:    caller,
		Title:       title,
		Description: description,
		Recipient:   recipient,
		Amount:      amount,
		StartHeight: height,
		EndHeight:   height + st.Header().VotingPeriod,
	}
	id, err := st.CreateProposal(p)
	if err != nil {
		return 0, types.Event{}, err
	}
	e.logger.Debug("proposal created", "proposal", id, "proposer", caller, "amount", amount)
	ev := types.EncodeEventProposal(&types.EventProposal{
		Proposal:    id,
		Proposer:    caller,
		Title:       title,
		Recipient:   recipient,
		Amount:      amount,
		StartHeight: p.StartHeight,
		EndHeight:   p.EndHeight,
	})
	return id, ev, nil
}

// Vote records a single immutable ballot with the caller's power
// snapshotted at cast time.
func (e *Engine) Vote(caller string, proposal uint64, support bool, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.vote(st, caller, proposal, support, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) vote(st *state.State, caller string, proposal uint64, support bool, height uint64) (types.Event, error) {
	p, err := st.Proposal(proposal)
	if err != nil {
		if err == state.ErrNotFound {
			return types.Event{}, ErrProposalNotFound
		}
		return types.Event{}, err
	}
	m, err := st.Member(caller)
	if err != nil {
		return types.Event{}, err
	}
	if m == nil {
		return types.Event{}, ErrNotAMember
	}
	prev, err := st.Vote(proposal, caller)
	if err != nil {
		return types.Event{}, err
	}
	if prev != nil {
		return types.Event{}, ErrAlreadyVoted
	}
	if !p.IsActive(height) {
		return types.Event{}, ErrVotingEnded
	}

	power := m.Power
	if power == 0 {
		power = types.DefaultPower
	}
	if err := st.PutVote(&types.Vote{
		Proposal: proposal,
		Voter:    caller,
		Support:  support,
		Power:    power,
		Height:   height,
	}); err != nil {
		return types.Event{}, err
	}
	if support {
		p.YesVotes += power
	} else {
		p.NoVotes += power
	}
	if err := st.PutProposal(p); err != nil {
		return types.Event{}, err
	}
	ev := types.EncodeEventVote(&types.EventVote{
		Proposal: proposal,
		Voter:    caller,
		Support:  support,
		Power:    power,
		YesVotes: p.YesVotes,
		NoVotes:  p.NoVotes,
		Height:   height,
	})
	return ev, nil
}

// Execute disburses a passed proposal exactly once. A transfer failure
// leaves the proposal non-executed and retryable; success flips the
// executed flag in the same commit as the transfer, so funds can never
// move twice.
func (e *Engine) Execute(caller string, proposal uint64, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.execute(st, caller, proposal, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) execute(st *state.State, caller string, proposal uint64, height uint64) (types.Event, error) {
	p, err := st.Proposal(proposal)
	if err != nil {
		if err == state.ErrNotFound {
			return types.Event{}, ErrProposalNotFound
		}
		return types.Event{}, err
	}
	if p.Executed {
		return types.Event{}, ErrAlreadyExecuted
	}
	if height < p.EndHeight {
		return types.Event{}, ErrVotingNotEnded
	}
	// a cancelled proposal can never pass, whatever its tally
	if p.Cancelled {
		return types.Event{}, ErrProposalNotPassed
	}
	if !Passed(p.YesVotes, p.NoVotes, st.Header().MemberCount) {
		return types.Event{}, ErrProposalNotPassed
	}
	if p.Amount > st.Treasury() {
		return types.Event{}, ErrInsufficientFunds
	}

	if err := st.WithdrawTreasury(p.Amount); err != nil {
		return types.Event{}, err
	}
	if err := st.Credit(p.Recipient, p.Amount); err != nil {
		return types.Event{}, err
	}
	p.Executed = true
	if err := st.PutProposal(p); err != nil {
		return types.Event{}, err
	}
	e.logger.Info("proposal executed", "proposal", proposal, "recipient", p.Recipient, "amount", p.Amount)
	ev := types.EncodeEventExecute(&types.EventExecute{
		Proposal:  proposal,
		Recipient: p.Recipient,
		Amount:    p.Amount,
		Treasury:  st.Treasury(),
		Height:    height,
	})
	return ev, nil
}

// Cancel is open to the proposer and the administrator while the
// proposal has not executed. Cancelled is terminal.
func (e *Engine) Cancel(caller string, proposal uint64, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.cancel(st, caller, proposal, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) cancel(st *state.State, caller string, proposal uint64, height uint64) (types.Event, error) {
	p, err := st.Proposal(proposal)
	if err != nil {
		if err == state.ErrNotFound {
			return types.Event{}, ErrProposalNotFound
		}
		return types.Event{}, err
	}
	if caller != p.Proposer && caller != st.Header().Admin {
		return types.Event{}, ErrUnauthorized
	}
	if p.Executed {
		return types.Event{}, ErrAlreadyExecuted
	}
	if p.Cancelled {
		return types.Event{}, ErrAlreadyCancelled
	}
	p.Cancelled = true
	if err := st.PutProposal(p); err != nil {
		return types.Event{}, err
	}
	ev := types.EncodeEventCancel(&types.EventCancel{
		Proposal: proposal,
		Actor:    caller,
		Height:   height,
	})
	return ev, nil
}

// Deposit adds funds to the shared treasury. Anyone may deposit.
func (e *Engine) Deposit(caller string, amount, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.deposit(st, caller, amount, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) deposit(st *state.State, caller string, amount, height uint64) (types.Event, error) {
	if amount == 0 {
		return types.Event{}, ErrInvalidAmount
	}
	if err := st.DepositTreasury(amount); err != nil {
		return types.Event{}, ErrInvalidAmount
	}
	ev := types.EncodeEventDeposit(&types.EventDeposit{
		Actor:    caller,
		Amount:   amount,
		Treasury: st.Treasury(),
		Height:   height,
	})
	return ev, nil
}

func (e *Engine) AddMember(caller, addr string, power, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.addMember(st, caller, addr, power, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) addMember(st *state.State, caller, addr string, power, height uint64) (types.Event, error) {
	if caller != st.Header().Admin {
		return types.Event{}, ErrUnauthorized
	}
	if power == 0 {
		power = types.DefaultPower
	}
	err := st.AddMember(&types.Member{
		Address:      addr,
		Power:        power,
		JoinedHeight: height,
	})
	if err != nil {
		if err == state.ErrMemberExists {
			return types.Event{}, ErrMemberExists
		}
		return types.Event{}, err
	}
	ev := types.EncodeEventMember(&types.EventMember{
		Address: addr,
		Power:   power,
		Members: st.Header().MemberCount,
		Added:   true,
		Height:  height,
	})
	return ev, nil
}

func (e *Engine) RemoveMember(caller, addr string, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.removeMember(st, caller, addr, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) removeMember(st *state.State, caller, addr string, height uint64) (types.Event, error) {
	if caller != st.Header().Admin {
		return types.Event{}, ErrUnauthorized
	}
	if err := st.RemoveMember(addr); err != nil {
		if err == state.ErrNotFound {
			return types.Event{}, ErrNotAMember
		}
		return types.Event{}, err
	}
	ev := types.EncodeEventMember(&types.EventMember{
		Address: addr,
		Members: st.Header().MemberCount,
		Added:   false,
		Height:  height,
	})
	return ev, nil
}

// UpdateVotingPower changes a member's weight for future votes only;
// past ballots keep their snapshotted power.
func (e *Engine) UpdateVotingPower(caller, addr string, power, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.updateVotingPower(st, caller, addr, power, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) updateVotingPower(st *state.State, caller, addr string, power, height uint64) (types.Event, error) {
	if caller != st.Header().Admin {
		return types.Event{}, ErrUnauthorized
	}
	if power == 0 {
		return types.Event{}, ErrInvalidAmount
	}
	m, err := st.Member(addr)
	if err != nil {
		return types.Event{}, err
	}
	if m == nil {
		return types.Event{}, ErrNotAMember
	}
	m.Power = power
	if err := st.SetMember(m); err != nil {
		return types.Event{}, err
	}
	ev := types.EncodeEventPowerUpdate(&types.EventPowerUpdate{
		Address: addr,
		Power:   power,
		Height:  height,
	})
	return ev, nil
}

// InitializeDAO admits the founding members in bulk.
func (e *Engine) InitializeDAO(caller string, members []types.GenesisMember, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	evs, err := e.initializeDAO(st, caller, members, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(evs...)
	return nil
}

func (e *Engine) initializeDAO(st *state.State, caller string, members []types.GenesisMember, height uint64) ([]types.Event, error) {
	var evs []types.Event
	for _, gm := range members {
		ev, err := e.addMember(st, caller, gm.Address, gm.Power, height)
		if err != nil {
			return nil, err
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

// EmergencyWithdraw moves funds out of the treasury without a proposal,
// administrator only, solvency permitting.
func (e *Engine) EmergencyWithdraw(caller, recipient string, amount, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	ev, err := e.emergencyWithdraw(st, caller, recipient, amount, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(ev)
	return nil
}

func (e *Engine) emergencyWithdraw(st *state.State, caller, recipient string, amount, height uint64) (types.Event, error) {
	if caller != st.Header().Admin {
		return types.Event{}, ErrUnauthorized
	}
	if amount == 0 {
		return types.Event{}, ErrInvalidAmount
	}
	if amount > st.Treasury() {
		return types.Event{}, ErrInsufficientFunds
	}
	if err := st.WithdrawTreasury(amount); err != nil {
		return types.Event{}, err
	}
	if err := st.Credit(recipient, amount); err != nil {
		return types.Event{}, err
	}
	e.logger.Info("emergency withdraw", "recipient", recipient, "amount", amount)
	ev := types.EncodeEventWithdraw(&types.EventWithdraw{
		Recipient: recipient,
		Amount:    amount,
		Treasury:  st.Treasury(),
		Height:    height,
	})
	return ev, nil
}

// SubmitAction verifies a signed envelope, checks and advances the
// caller's nonce, and dispatches to the matching operation, all under
// one commit.
func (e *Engine) SubmitAction(act *action.Action, height uint64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	st := e.db.State()
	if err := act.Verify(st.Header().ChainID); err != nil {
		return err
	}
	caller := act.CallerAddress()
	acct, err := st.Account(caller)
	if err != nil {
		return err
	}
	if act.Nonce != acct.Nonce {
		return action.ErrNonceInvalid
	}
	acct.Nonce += 1
	if err := st.SetAccount(acct); err != nil {
		st.Rollback()
		return err
	}

	evs, err := e.apply(st, caller, act, height)
	if err != nil {
		st.Rollback()
		return err
	}
	if err := e.commit(st, height); err != nil {
		return err
	}
	e.publish(evs...)
	return nil
}

func (e *Engine) apply(st *state.State, caller string, act *action.Action, height uint64) ([]types.Event, error) {
	switch act.Type {
	case action.ActionTypeProposal:
		a := act.Act.(*action.ProposalAct)
		_, ev, err := e.createProposal(st, caller, a.Title, a.Description, a.Recipient, a.Amount, height)
		return []types.Event{ev}, err
	case action.ActionTypeVote:
		a := act.Act.(*action.VoteAct)
		ev, err := e.vote(st, caller, a.Proposal, a.Support, height)
		return []types.Event{ev}, err
	case action.ActionTypeExecute:
		a := act.Act.(*action.ExecuteAct)
		ev, err := e.execute(st, caller, a.Proposal, height)
		return []types.Event{ev}, err
	case action.ActionTypeCancel:
		a := act.Act.(*action.CancelAct)
		ev, err := e.cancel(st, caller, a.Proposal, height)
		return []types.Event{ev}, err
	case action.ActionTypeDeposit:
		a := act.Act.(*action.DepositAct)
		ev, err := e.deposit(st, caller, a.Amount, height)
		return []types.Event{ev}, err
	case action.ActionTypeAddMember:
		a := act.Act.(*action.AddMemberAct)
		ev, err := e.addMember(st, caller, a.Address, a.Power, height)
		return []types.Event{ev}, err
	case action.ActionTypeRemoveMember:
		a := act.Act.(*action.RemoveMemberAct)
		ev, err := e.removeMember(st, caller, a.Address, height)
		return []types.Event{ev}, err
	case action.ActionTypePowerUpdate:
		a := act.Act.(*action.PowerUpdateAct)
		ev, err := e.updateVotingPower(st, caller, a.Address, a.Power, height)
		return []types.Event{ev}, err
	case action.ActionTypeWithdraw:
		a := act.Act.(*action.WithdrawAct)
		ev, err := e.emergencyWithdraw(st, caller, a.Recipient, a.Amount, height)
		return []types.Event{ev}, err
	default:
		return nil, action.ErrUnsupportedActionType
	}
}
