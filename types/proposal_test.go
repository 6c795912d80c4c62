package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProposalIsActive(t *testing.T) {
	p := &Proposal{StartHeight: 10, EndHeight: 110}
	require.False(t, p.IsActive(9))
	require.True(t, p.IsActive(10))
	require.True(t, p.IsActive(109))
	require.False(t, p.IsActive(110))

	p.Cancelled = true
	require.False(t, p.IsActive(50))
	p.Cancelled = false
	p.Executed = true
	require.False(t, p.IsActive(50))
}

func TestProposalStatusAt(t *testing.T) {
	p := &Proposal{StartHeight: 10, EndHeight: 110}
	require.Equal(t, ProposalStatusActive, p.StatusAt(50, false))
	require.Equal(t, ProposalStatusFailed, p.StatusAt(110, false))
	require.Equal(t, ProposalStatusAwaitingExecution, p.StatusAt(110, true))

	p.Executed = true
	require.Equal(t, ProposalStatusExecuted, p.StatusAt(110, true))

	// cancellation wins over everything
	p.Cancelled = true
	require.Equal(t, ProposalStatusCancelled, p.StatusAt(110, true))
}
