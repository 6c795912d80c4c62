package gov

import (
	"testing"
	"time"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/state"
	"github.com/calehh/funddao/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"
)

const submitChainID = "funddao-submit-test"

func newSubmitEngine(t *testing.T, members []types.GenesisMember) *Engine {
	t.Helper()
	db, err := state.NewStateDB(t.TempDir(), cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	engine := NewEngine(db, nil, cmtlog.NewNopLogger())
	require.NoError(t, engine.Bootstrap(&types.GenesisDoc{
		GenesisTime:     time.Now(),
		ChainID:         submitChainID,
		Admin:           "admin",
		VotingPeriod:    100,
		Members:         members,
		TreasuryBalance: 1000,
	}))
	return engine
}

func signedAction(t *testing.T, priv ed25519.PrivKey, typ action.ActionType, nonce uint64, act any) *action.Action {
	t.Helper()
	a := &action.Action{
		Version: action.ActionVersion1,
		Type:    typ,
		Nonce:   nonce,
		Caller:  priv.PubKey().Bytes(),
		Act:     act,
	}
	dat, err := a.SigData([]byte(submitChainID))
	require.NoError(t, err)
	sig, err := priv.Sign(dat)
	require.NoError(t, err)
	a.Sig = sig
	return a
}

func TestSubmitAction(t *testing.T) {
	priv := ed25519.GenPrivKey()
	addr := priv.PubKey().Address().String()
	engine := newSubmitEngine(t, []types.GenesisMember{{Address: addr, Power: 1}})

	a := signedAction(t, priv, action.ActionTypeProposal, 0, &action.ProposalAct{
		Title:     "grants",
		Recipient: "rcpt",
		Amount:    100,
	})
	require.NoError(t, engine.SubmitAction(a, 10))

	p, err := engine.GetProposal(1)
	require.NoError(t, err)
	require.Equal(t, addr, p.Proposer)

	nonce, err := engine.AccountNonce(addr)
	require.NoError(t, err)
	require.EqualValues(t, 1, nonce)
}

func TestSubmitActionBadSignature(t *testing.T) {
	priv := ed25519.GenPrivKey()
	addr := priv.PubKey().Address().String()
	engine := newSubmitEngine(t, []types.GenesisMember{{Address: addr, Power: 1}})

	a := signedAction(t, priv, action.ActionTypeProposal, 0, &action.ProposalAct{
		Title: "grants", Recipient: "rcpt", Amount: 100,
	})
	a.Nonce = 1 // breaks the signature before the nonce check runs
	require.ErrorIs(t, engine.SubmitAction(a, 10), action.ErrSigInvalid)

	other := ed25519.GenPrivKey()
	b := signedAction(t, other, action.ActionTypeProposal, 0, &action.ProposalAct{
		Title: "grants", Recipient: "rcpt", Amount: 100,
	})
	b.Caller = priv.PubKey().Bytes()
	require.ErrorIs(t, engine.SubmitAction(b, 10), action.ErrSigInvalid)
}

func TestSubmitActionNonce(t *testing.T) {
	priv := ed25519.GenPrivKey()
	addr := priv.PubKey().Address().String()
	engine := newSubmitEngine(t, []types.GenesisMember{{Address: addr, Power: 1}})

	stale := signedAction(t, priv, action.ActionTypeDeposit, 3, &action.DepositAct{Amount: 10})
	require.ErrorIs(t, engine.SubmitAction(stale, 10), action.ErrNonceInvalid)

	first := signedAction(t, priv, action.ActionTypeDeposit, 0, &action.DepositAct{Amount: 10})
	require.NoError(t, engine.SubmitAction(first, 10))

	// replaying the consumed nonce fails
	require.ErrorIs(t, engine.SubmitAction(first, 11), action.ErrNonceInvalid)

	second := signedAction(t, priv, action.ActionTypeDeposit, 1, &action.DepositAct{Amount: 10})
	require.NoError(t, engine.SubmitAction(second, 11))
	require.EqualValues(t, 1020, engine.Treasury())
}

func TestSubmitActionFailureKeepsNonce(t *testing.T) {
	priv := ed25519.GenPrivKey()
	addr := priv.PubKey().Address().String()
	engine := newSubmitEngine(t, []types.GenesisMember{{Address: addr, Power: 1}})

	// a rejected operation must not consume the nonce slot
	bad := signedAction(t, priv, action.ActionTypeProposal, 0, &action.ProposalAct{
		Title: "grants", Recipient: "rcpt", Amount: 0,
	})
	require.ErrorIs(t, engine.SubmitAction(bad, 10), ErrInvalidAmount)

	nonce, err := engine.AccountNonce(addr)
	require.NoError(t, err)
	require.EqualValues(t, 0, nonce)

	good := signedAction(t, priv, action.ActionTypeProposal, 0, &action.ProposalAct{
		Title: "grants", Recipient: "rcpt", Amount: 100,
	})
	require.NoError(t, engine.SubmitAction(good, 10))
}
