package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrMemberExists     = errors.New("member already exists")
	ErrTreasuryOverflow = errors.New("treasury balance overflow")
	ErrTreasuryDrained  = errors.New("treasury balance underflow")
)

var (
	KeyHeader       = "s"
	KeyMemberBody   = "m%s"
	KeyAccountBody  = "a%s"
	KeyProposalBody = "p%v"
	KeyVoteBody     = "v%v:%s"
)

// Header carries the global counters and treasury balance. It is
// serialized under KeyHeader on every commit so the counters and the
// record set can never diverge.
type Header struct {
	ChainID         string `json:"chain_id"`
	Admin           string `json:"admin"`
	MemberCount     uint64 `json:"member_count"`
	ProposalCount   uint64 `json:"proposal_count"`
	TreasuryBalance uint64 `json:"treasury_balance"`
	VotingPeriod    uint64 `json:"voting_period"`
	LastHeight      uint64 `json:"last_height"`
	RootHash        []byte `json:"root_hash"`
	Hash            []byte `json:"hash"`
}

// State is a pure data holder over the iavl tree: members, accounts,
// proposals, votes and the header. Eligibility and timing rules live in
// the gov engine, never here.
type State struct {
	logger cmtlog.Logger
	db     *iavl.MutableTree
	dbVer  int64

	header *Header
}

func newState(db *iavl.MutableTree, logger cmtlog.Logger) *State {
	return &State{
		logger: logger,
		db:     db,
		dbVer:  0,
		header: new(Header),
	}
}

func (s *State) load() (err error) {
	val, err := s.db.Get([]byte(KeyHeader))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	header := new(Header)
	if val != nil {
		err = json.Unmarshal(val, header)
		if err != nil {
			return
		}
	}
	s.header = header
	if h := s.db.Hash(); h != nil {
		s.calcHash(h, true)
	}
	return
}

func (s *State) Header() *Header {
	return s.header
}

func (s *State) calcHash(rootHash []byte, update bool) (h common.Hash) {
	h = crypto.Keccak256Hash(rootHash)
	if update {
		if s.header.RootHash == nil {
			s.header.RootHash = make([]byte, len(rootHash))
		}
		copy(s.header.RootHash, rootHash)
		if s.header.Hash == nil {
			s.header.Hash = make([]byte, len(h))
		}
		copy(s.header.Hash, h[:])
	}
	return
}

func (s *State) Hash() (h common.Hash) {
	if s.header.Hash != nil {
		copy(h[:], s.header.Hash)
	}
	return
}

// Commit serializes the header and saves a new tree version. On failure
// the working set is discarded and the last committed state remains.
func (s *State) Commit() (h common.Hash, err error) {
	defer func() {
		if err != nil {
			s.Rollback()
		}
	}()
	var val []byte
	val, err = json.Marshal(s.header)
	if err != nil {
		return
	}
	_, err = s.db.Set([]byte(KeyHeader), val)
	if err != nil {
		return
	}
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		return
	}
	s.dbVer = ver
	h = s.calcHash(hash, true)
	return
}

// Rollback drops staged writes and reloads the header from the last
// committed version, so in-memory counters never outlive a failed op.
func (s *State) Rollback() {
	s.db.Rollback()
	if err := s.load(); err != nil {
		s.logger.Error("reload header after rollback fail", "err", err)
	}
}

func (s *State) Member(addr string) (m *types.Member, err error) {
	key := fmt.Sprintf(KeyMemberBody, addr)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	m = new(types.Member)
	err = json.Unmarshal(val, m)
	if err != nil {
		m = nil
	}
	return
}

// AddMember writes the member record and bumps the member count in the
// same working set; the two land or fail together.
func (s *State) AddMember(m *types.Member) (err error) {
	prev, err := s.Member(m.Address)
	if err != nil {
		return err
	}
	if prev != nil {
		return ErrMemberExists
	}
	if err = s.setMember(m); err != nil {
		return err
	}
	s.header.MemberCount += 1
	return
}

func (s *State) RemoveMember(addr string) (err error) {
	prev, err := s.Member(addr)
	if err != nil {
		return err
	}
	if prev == nil {
		return ErrNotFound
	}
	key := fmt.Sprintf(KeyMemberBody, addr)
	_, _, err = s.db.Remove([]byte(key))
	if err != nil {
		return err
	}
	s.header.MemberCount -= 1
	return
}

// SetMember overwrites an existing member record. The count is untouched.
func (s *State) SetMember(m *types.Member) error {
	return s.setMember(m)
}

func (s *State) setMember(m *types.Member) error {
	val, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(fmt.Sprintf(KeyMemberBody, m.Address)), val)
	return err
}

func (s *State) Members() (members []*types.Member, err error) {
	start := []byte(fmt.Sprintf(KeyMemberBody, ""))
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, false)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		m := new(types.Member)
		if err = json.Unmarshal(it.Value(), m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return
}

func (s *State) Account(addr string) (a *types.Account, err error) {
	key := fmt.Sprintf(KeyAccountBody, addr)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return &types.Account{Address: addr}, nil
		}
		return nil, err
	}
	if val == nil {
		return &types.Account{Address: addr}, nil
	}
	a = new(types.Account)
	err = rlp.DecodeBytes(val, a)
	if err != nil {
		a = nil
	}
	return
}

func (s *State) SetAccount(a *types.Account) error {
	val, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(fmt.Sprintf(KeyAccountBody, a.Address)), val)
	return err
}

func (s *State) Credit(addr string, amount uint64) error {
	a, err := s.Account(addr)
	if err != nil {
		return err
	}
	a.Balance += amount
	return s.SetAccount(a)
}

func (s *State) Proposal(id uint64) (p *types.Proposal, err error) {
	if id == 0 || id > s.header.ProposalCount {
		return nil, ErrNotFound
	}
	key := fmt.Sprintf(KeyProposalBody, id)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, ErrNotFound
	}
	p = new(types.Proposal)
	err = json.Unmarshal(val, p)
	return
}

// CreateProposal assigns the next sequential id and stores the record.
// The count only moves when the write is staged, so a failed create
// never consumes an id.
func (s *State) CreateProposal(p *types.Proposal) (id uint64, err error) {
	id = s.header.ProposalCount + 1
	p.ID = id
	if err = s.PutProposal(p); err != nil {
		return 0, err
	}
	s.header.ProposalCount = id
	return
}

func (s *State) PutProposal(p *types.Proposal) error {
	val, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(fmt.Sprintf(KeyProposalBody, p.ID)), val)
	return err
}

func (s *State) Vote(proposal uint64, voter string) (v *types.Vote, err error) {
	key := fmt.Sprintf(KeyVoteBody, proposal, voter)
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	v = new(types.Vote)
	err = json.Unmarshal(val, v)
	if err != nil {
		v = nil
	}
	return
}

func (s *State) PutVote(v *types.Vote) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(fmt.Sprintf(KeyVoteBody, v.Proposal, v.Voter)), val)
	return err
}

func (s *State) Votes(proposal uint64) (votes []*types.Vote, err error) {
	start := []byte(fmt.Sprintf(KeyVoteBody, proposal, ""))
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, false)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		v := new(types.Vote)
		if err = json.Unmarshal(it.Value(), v); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return
}

func (s *State) Treasury() uint64 {
	return s.header.TreasuryBalance
}

func (s *State) DepositTreasury(amount uint64) error {
	if s.header.TreasuryBalance+amount < s.header.TreasuryBalance {
		return ErrTreasuryOverflow
	}
	s.header.TreasuryBalance += amount
	return nil
}

func (s *State) WithdrawTreasury(amount uint64) error {
	if amount > s.header.TreasuryBalance {
		return ErrTreasuryDrained
	}
	s.header.TreasuryBalance -= amount
	return nil
}

func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			break
		}

		end = end[:len(end)-1]

		if len(end) == 0 {
			end = nil
			break
		}
	}

	return end
}
