package action

import (
	"testing"

	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/stretchr/testify/require"
)

const chainID = "funddao-test"

func signedEnvelope(t *testing.T, priv ed25519.PrivKey, typ ActionType, act any) *Action {
	t.Helper()
	a := &Action{
		Version: ActionVersion1,
		Type:    typ,
		Nonce:   4,
		Caller:  priv.PubKey().Bytes(),
		Act:     act,
	}
	dat, err := a.SigData([]byte(chainID))
	require.NoError(t, err)
	sig, err := priv.Sign(dat)
	require.NoError(t, err)
	a.Sig = sig
	return a
}

func TestVerify(t *testing.T) {
	priv := ed25519.GenPrivKey()
	a := signedEnvelope(t, priv, ActionTypeVote, &VoteAct{Proposal: 1, Support: true})
	require.NoError(t, a.Verify(chainID))
	require.Equal(t, priv.PubKey().Address().String(), a.CallerAddress())
}

func TestVerifyRejectsTampering(t *testing.T) {
	priv := ed25519.GenPrivKey()

	a := signedEnvelope(t, priv, ActionTypeVote, &VoteAct{Proposal: 1, Support: true})
	a.Act.(*VoteAct).Support = false
	require.ErrorIs(t, a.Verify(chainID), ErrSigInvalid)

	b := signedEnvelope(t, priv, ActionTypeVote, &VoteAct{Proposal: 1, Support: true})
	b.Nonce = 5
	require.ErrorIs(t, b.Verify(chainID), ErrSigInvalid)

	// a signature is pinned to one chain
	c := signedEnvelope(t, priv, ActionTypeVote, &VoteAct{Proposal: 1, Support: true})
	require.ErrorIs(t, c.Verify("other-chain"), ErrSigInvalid)
}

func TestVerifyRejectsBadEnvelope(t *testing.T) {
	priv := ed25519.GenPrivKey()

	a := signedEnvelope(t, priv, ActionTypeVote, &VoteAct{Proposal: 1, Support: true})
	a.Version = ActionVersion0
	require.ErrorIs(t, a.Verify(chainID), ErrUnsupportedVersion)

	b := signedEnvelope(t, priv, ActionTypeVote, &VoteAct{Proposal: 1, Support: true})
	b.Caller = b.Caller[:16]
	require.ErrorIs(t, b.Verify(chainID), ErrInvalidAction)
}

func TestUnmarshalActionRoundTrip(t *testing.T) {
	priv := ed25519.GenPrivKey()
	a := signedEnvelope(t, priv, ActionTypeProposal, &ProposalAct{
		Title:       "grants",
		Description: "fund the grants program",
		Recipient:   "rcpt",
		Amount:      500,
	})
	dat, err := MarshalAction(a)
	require.NoError(t, err)

	got, err := UnmarshalAction(dat)
	require.NoError(t, err)
	require.Equal(t, ActionTypeProposal, got.Type)
	require.NoError(t, got.Verify(chainID))

	act, ok := got.Act.(*ProposalAct)
	require.True(t, ok)
	require.Equal(t, "grants", act.Title)
	require.EqualValues(t, 500, act.Amount)
}

func TestUnmarshalActionUnknownType(t *testing.T) {
	_, err := UnmarshalAction([]byte(`{"version":1,"type":99}`))
	require.ErrorIs(t, err, ErrUnsupportedActionType)
	_, err = UnmarshalAction([]byte(`not json`))
	require.ErrorIs(t, err, ErrUnsupportedActionType)
}
