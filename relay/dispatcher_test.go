package relay

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *Store) {
	t.Helper()
	store, err := NewStore(cmtlog.NewNopLogger(), filepath.Join(t.TempDir(), "relay.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewDispatcher(cmtlog.NewNopLogger(), store), store
}

func TestProcessProjectsAndDelivers(t *testing.T) {
	d, store := newTestDispatcher(t)

	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.Store(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	_, err := store.addListener(srv.URL)
	require.NoError(t, err)

	d.process(types.EncodeEventProposal(&types.EventProposal{
		Proposal:    1,
		Proposer:    "alice",
		Title:       "grants",
		Recipient:   "rcpt",
		Amount:      100,
		StartHeight: 10,
		EndHeight:   110,
	}))

	// projection row landed
	p, err := store.getProposalById(1)
	require.NoError(t, err)
	require.Equal(t, "alice", p.Proposer)
	require.EqualValues(t, 110, p.EndHeight)

	// webhook received the event
	body, ok := got.Load().([]byte)
	require.True(t, ok)
	var ev types.Event
	require.NoError(t, json.Unmarshal(body, &ev))
	require.Equal(t, types.EventProposalType, ev.Type)
	require.NotNil(t, types.DecodeEventProposal(ev))

	// delivery is settled
	pending, err := store.pendingDeliveries(10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestDeliverRetries(t *testing.T) {
	d, store := newTestDispatcher(t)

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	_, err := store.addListener(srv.URL)
	require.NoError(t, err)

	d.process(types.EncodeEventDeposit(&types.EventDeposit{
		Actor:    "alice",
		Amount:   10,
		Treasury: 10,
		Height:   5,
	}))

	require.EqualValues(t, 2, calls.Load())
	pending, err := store.pendingDeliveries(10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestSweepRedelivers(t *testing.T) {
	d, store := newTestDispatcher(t)

	// no listener server yet: delivery exhausts its attempts
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	_, err := store.addListener("http://127.0.0.1:1") // nothing listens here
	require.NoError(t, err)

	d.process(types.EncodeEventCancel(&types.EventCancel{Proposal: 1, Actor: "alice", Height: 9}))
	pending, err := store.pendingDeliveries(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// point the listener at a live server and sweep
	srv.Start()
	defer srv.Close()
	var l Listener
	require.NoError(t, store.db.First(&l).Error)
	l.Url = srv.URL
	require.NoError(t, store.db.Save(&l).Error)

	d.sweep()
	pending, err = store.pendingDeliveries(10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestProjectionLifecycle(t *testing.T) {
	d, store := newTestDispatcher(t)

	d.process(types.EncodeEventMember(&types.EventMember{
		Address: "alice", Power: 3, Members: 1, Added: true, Height: 1,
	}))
	m, err := store.getMemberByAddress("alice")
	require.NoError(t, err)
	require.True(t, m.Active)
	require.EqualValues(t, 3, m.Power)

	d.process(types.EncodeEventProposal(&types.EventProposal{
		Proposal: 1, Proposer: "alice", Title: "t", Recipient: "rcpt",
		Amount: 100, StartHeight: 10, EndHeight: 110,
	}))
	d.process(types.EncodeEventVote(&types.EventVote{
		Proposal: 1, Voter: "alice", Support: true, Power: 3,
		YesVotes: 3, NoVotes: 0, Height: 20,
	}))
	p, err := store.getProposalById(1)
	require.NoError(t, err)
	require.EqualValues(t, 3, p.YesVotes)
	votes, total, err := store.getVotesByProposal(1, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.True(t, votes[0].Support)

	d.process(types.EncodeEventExecute(&types.EventExecute{
		Proposal: 1, Recipient: "rcpt", Amount: 100, Treasury: 400, Height: 110,
	}))
	p, err = store.getProposalById(1)
	require.NoError(t, err)
	require.EqualValues(t, uint64(types.ProposalStatusExecuted), p.Status)
	flows, total, err := store.getTreasuryFlows(0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.EqualValues(t, 400, flows[0].Balance)

	d.process(types.EncodeEventMember(&types.EventMember{
		Address: "alice", Members: 0, Added: false, Height: 120,
	}))
	m, err = store.getMemberByAddress("alice")
	require.NoError(t, err)
	require.False(t, m.Active)
}

func TestEventHeight(t *testing.T) {
	ev := types.EncodeEventVote(&types.EventVote{Proposal: 1, Voter: "a", Height: 42})
	require.EqualValues(t, 42, eventHeight(ev))

	// proposal events carry only a start height
	pev := types.EncodeEventProposal(&types.EventProposal{Proposal: 1, StartHeight: 7})
	require.EqualValues(t, 7, eventHeight(pev))

	require.EqualValues(t, 0, eventHeight(types.Event{Type: "x"}))
}
