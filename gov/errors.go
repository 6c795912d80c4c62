package gov

import "errors"

// Categorical failures. Every mutating operation either fully applies or
// fails with exactly one of these, leaving state untouched. None are
// retried by the engine; callers decide.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotAMember        = errors.New("not a member")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrVotingEnded       = errors.New("voting ended")
	ErrVotingNotEnded    = errors.New("voting not ended")
	ErrProposalNotPassed = errors.New("proposal not passed")
	ErrAlreadyExecuted   = errors.New("already executed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")

	ErrAlreadyCancelled = errors.New("already cancelled")
	ErrMemberExists     = errors.New("member already exists")
)
