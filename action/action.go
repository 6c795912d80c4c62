package action

import (
	"encoding/json"

	"github.com/cometbft/cometbft/crypto/ed25519"
)

// Action is the signed envelope every mutating request travels in. The
// signature covers the JSON encoding with Sig replaced by the chain id,
// so envelopes cannot be replayed across instances; the nonce pins them
// to one slot in the caller's sequence.
type Action struct {
	Version uint8      `json:"version"`
	Type    ActionType `json:"type"`
	Nonce   uint64     `json:"nonce"`
	Caller  []byte     `json:"caller"`
	Act     any        `json:"act"`
	Sig     []byte     `json:"sig"`
}

type actionTmpl[Act any] struct {
	Version uint8      `json:"version"`
	Type    ActionType `json:"type"`
	Nonce   uint64     `json:"nonce"`
	Caller  []byte     `json:"caller"`
	Act     Act        `json:"act"`
	Sig     []byte     `json:"sig"`
}

func (a *Action) SigData(ext []byte) (dat []byte, err error) {
	na := *a
	na.Sig = ext
	dat, err = json.Marshal(na)
	return
}

// CallerAddress derives the caller identity from the envelope pubkey.
func (a *Action) CallerAddress() string {
	return ed25519.PubKey(a.Caller).Address().String()
}

// Verify checks the envelope signature against the embedded pubkey.
func (a *Action) Verify(chainID string) error {
	if a.Version != ActionVersion1 {
		return ErrUnsupportedVersion
	}
	if len(a.Caller) != ed25519.PubKeySize {
		return ErrInvalidAction
	}
	dat, err := a.SigData([]byte(chainID))
	if err != nil {
		return err
	}
	pk := ed25519.PubKey(a.Caller)
	if !pk.VerifySignature(dat, a.Sig) {
		return ErrSigInvalid
	}
	return nil
}

func parseActionType(dat []byte) ActionType {
	var act struct {
		Type ActionType `json:"type"`
	}
	err := json.Unmarshal(dat, &act)
	if err != nil {
		return ActionTypeUnknown
	}
	return act.Type
}

func unmarshalAction[Act any](dat []byte) (a *Action, err error) {
	var tmpl actionTmpl[Act]
	err = json.Unmarshal(dat, &tmpl)
	if err != nil {
		return
	}
	a = new(Action)
	a.Version = tmpl.Version
	a.Type = tmpl.Type
	a.Nonce = tmpl.Nonce
	a.Caller = tmpl.Caller
	a.Act = &tmpl.Act
	a.Sig = tmpl.Sig
	return
}

func UnmarshalAction(dat []byte) (a *Action, err error) {
	tp := parseActionType(dat)
	switch tp {
	case ActionTypeProposal:
		return unmarshalAction[ProposalAct](dat)
	case ActionTypeVote:
		return unmarshalAction[VoteAct](dat)
	case ActionTypeExecute:
		return unmarshalAction[ExecuteAct](dat)
	case ActionTypeCancel:
		return unmarshalAction[CancelAct](dat)
	case ActionTypeDeposit:
		return unmarshalAction[DepositAct](dat)
	case ActionTypeAddMember:
		return unmarshalAction[AddMemberAct](dat)
	case ActionTypeRemoveMember:
		return unmarshalAction[RemoveMemberAct](dat)
	case ActionTypePowerUpdate:
		return unmarshalAction[PowerUpdateAct](dat)
	case ActionTypeWithdraw:
		return unmarshalAction[WithdrawAct](dat)
	default:
		err = ErrUnsupportedActionType
	}
	return
}

func MarshalAction(a *Action) (dat []byte, err error) {
	return json.Marshal(a)
}
