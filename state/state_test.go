package state

import (
	"testing"

	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	db, err := NewStateDB(t.TempDir(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.State()
}

func TestMemberRoundTrip(t *testing.T) {
	st := newTestState(t)

	m, err := st.Member("alice")
	require.NoError(t, err)
	require.Nil(t, m)

	require.NoError(t, st.AddMember(&types.Member{Address: "alice", Power: 3, JoinedHeight: 7}))
	require.EqualValues(t, 1, st.Header().MemberCount)
	require.ErrorIs(t, st.AddMember(&types.Member{Address: "alice"}), ErrMemberExists)

	m, err = st.Member("alice")
	require.NoError(t, err)
	require.EqualValues(t, 3, m.Power)
	require.EqualValues(t, 7, m.JoinedHeight)

	require.NoError(t, st.RemoveMember("alice"))
	require.EqualValues(t, 0, st.Header().MemberCount)
	require.ErrorIs(t, st.RemoveMember("alice"), ErrNotFound)
}

func TestMembersIteration(t *testing.T) {
	st := newTestState(t)
	for _, addr := range []string{"alice", "bob", "carol"} {
		require.NoError(t, st.AddMember(&types.Member{Address: addr, Power: 1}))
	}
	_, err := st.Commit()
	require.NoError(t, err)

	members, err := st.Members()
	require.NoError(t, err)
	require.Len(t, members, 3)
}

func TestProposalIds(t *testing.T) {
	st := newTestState(t)

	_, err := st.Proposal(0)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = st.Proposal(1)
	require.ErrorIs(t, err, ErrNotFound)

	id, err := st.CreateProposal(&types.Proposal{Proposer: "alice", Amount: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, id)
	id, err = st.CreateProposal(&types.Proposal{Proposer: "bob", Amount: 20})
	require.NoError(t, err)
	require.EqualValues(t, 2, id)

	p, err := st.Proposal(1)
	require.NoError(t, err)
	require.Equal(t, "alice", p.Proposer)

	_, err = st.Proposal(3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVotesPrefixScan(t *testing.T) {
	st := newTestState(t)
	require.NoError(t, st.PutVote(&types.Vote{Proposal: 1, Voter: "alice", Support: true, Power: 1}))
	require.NoError(t, st.PutVote(&types.Vote{Proposal: 1, Voter: "bob", Support: false, Power: 2}))
	require.NoError(t, st.PutVote(&types.Vote{Proposal: 2, Voter: "alice", Support: true, Power: 1}))
	_, err := st.Commit()
	require.NoError(t, err)

	votes, err := st.Votes(1)
	require.NoError(t, err)
	require.Len(t, votes, 2)

	v, err := st.Vote(1, "bob")
	require.NoError(t, err)
	require.False(t, v.Support)
	require.EqualValues(t, 2, v.Power)

	v, err = st.Vote(1, "carol")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestTreasuryBounds(t *testing.T) {
	st := newTestState(t)
	require.NoError(t, st.DepositTreasury(100))
	require.EqualValues(t, 100, st.Treasury())

	require.ErrorIs(t, st.WithdrawTreasury(101), ErrTreasuryDrained)
	require.NoError(t, st.WithdrawTreasury(100))
	require.EqualValues(t, 0, st.Treasury())

	st.Header().TreasuryBalance = ^uint64(0)
	require.ErrorIs(t, st.DepositTreasury(1), ErrTreasuryOverflow)
}

func TestAccountCredit(t *testing.T) {
	st := newTestState(t)

	a, err := st.Account("alice")
	require.NoError(t, err)
	require.EqualValues(t, 0, a.Balance)
	require.EqualValues(t, 0, a.Nonce)

	require.NoError(t, st.Credit("alice", 40))
	require.NoError(t, st.Credit("alice", 2))
	a, err = st.Account("alice")
	require.NoError(t, err)
	require.EqualValues(t, 42, a.Balance)
}

func TestRollbackRestoresHeader(t *testing.T) {
	st := newTestState(t)
	require.NoError(t, st.AddMember(&types.Member{Address: "alice", Power: 1}))
	_, err := st.Commit()
	require.NoError(t, err)

	require.NoError(t, st.AddMember(&types.Member{Address: "bob", Power: 1}))
	require.EqualValues(t, 2, st.Header().MemberCount)
	st.Rollback()

	require.EqualValues(t, 1, st.Header().MemberCount)
	m, err := st.Member("bob")
	require.NoError(t, err)
	require.Nil(t, m)
	m, err = st.Member("alice")
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestCommitPersists(t *testing.T) {
	dir := t.TempDir()
	db, err := NewStateDB(dir, cmtlog.NewNopLogger())
	require.NoError(t, err)
	st := db.State()
	require.NoError(t, st.AddMember(&types.Member{Address: "alice", Power: 5}))
	require.NoError(t, st.DepositTreasury(77))
	h1, err := st.Commit()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db2, err := NewStateDB(dir, cmtlog.NewNopLogger())
	require.NoError(t, err)
	defer db2.Close()
	st2 := db2.State()
	require.EqualValues(t, 1, st2.Header().MemberCount)
	require.EqualValues(t, 77, st2.Treasury())
	require.Equal(t, h1, st2.Hash())
	m, err := st2.Member("alice")
	require.NoError(t, err)
	require.EqualValues(t, 5, m.Power)
}

func TestPrefixEndBytes(t *testing.T) {
	require.Equal(t, []byte("n"), PrefixEndBytes([]byte("m")))
	require.Equal(t, []byte{0x01}, PrefixEndBytes([]byte{0x00, 0xff}))
	require.Nil(t, PrefixEndBytes([]byte{0xff, 0xff}))
	require.Nil(t, PrefixEndBytes(nil))
}
