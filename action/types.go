package action

import (
	"errors"
)

type ActionType uint8

const (
	ActionTypeUnknown      ActionType = 0
	ActionTypeProposal     ActionType = 1
	ActionTypeVote         ActionType = 2
	ActionTypeExecute      ActionType = 3
	ActionTypeCancel       ActionType = 4
	ActionTypeDeposit      ActionType = 5
	ActionTypeAddMember    ActionType = 6
	ActionTypeRemoveMember ActionType = 7
	ActionTypePowerUpdate  ActionType = 8
	ActionTypeWithdraw     ActionType = 9
)

const (
	ActionVersion0 uint8 = 0
	ActionVersion1 uint8 = 1
)

var (
	ErrInvalidAction         = errors.New("invalid action")
	ErrUnsupportedActionType = errors.New("unsupported action type")
	ErrUnmatchedActionType   = errors.New("unmatched action type")
	ErrUnsupportedVersion    = errors.New("unsupported action version")
	ErrSigInvalid            = errors.New("signature invalid")
	ErrNonceInvalid          = errors.New("nonce invalid")
)

type ProposalAct struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Recipient   string `json:"recipient"`
	Amount      uint64 `json:"amount"`
}

type VoteAct struct {
	Proposal uint64 `json:"proposal"`
	Support  bool   `json:"support"`
}

type ExecuteAct struct {
	Proposal uint64 `json:"proposal"`
}

type CancelAct struct {
	Proposal uint64 `json:"proposal"`
}

type DepositAct struct {
	Amount uint64 `json:"amount"`
}

type AddMemberAct struct {
	Address string `json:"address"`
	Power   uint64 `json:"power"`
	Name    string `json:"name"`
}

type RemoveMemberAct struct {
	Address string `json:"address"`
}

type PowerUpdateAct struct {
	Address string `json:"address"`
	Power   uint64 `json:"power"`
}

type WithdrawAct struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}
