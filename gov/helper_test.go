package gov

import (
	"fmt"
	"testing"
	"time"

	"github.com/calehh/funddao/state"
	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	events []types.Event
}

func (r *recordSink) Publish(ev types.Event) {
	r.events = append(r.events, ev)
}

func (r *recordSink) ofType(typ string) []types.Event {
	var out []types.Event
	for _, ev := range r.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func memberAddrs(n int) []types.GenesisMember {
	members := make([]types.GenesisMember, 0, n)
	for i := 0; i < n; i++ {
		members = append(members, types.GenesisMember{
			Address: fmt.Sprintf("member-%d", i),
			Power:   1,
		})
	}
	return members
}

func newTestEngine(t *testing.T, members []types.GenesisMember, treasury uint64) (*Engine, *recordSink) {
	t.Helper()
	db, err := state.NewStateDB(t.TempDir(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sink := &recordSink{}
	engine := NewEngine(db, sink, cmtlog.NewNopLogger())
	genDoc := &types.GenesisDoc{
		GenesisTime:     time.Now(),
		ChainID:         "funddao-test",
		Admin:           "admin",
		VotingPeriod:    100,
		Members:         members,
		TreasuryBalance: treasury,
	}
	require.NoError(t, engine.Bootstrap(genDoc))
	return engine, sink
}
