package gov

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuorumThreshold(t *testing.T) {
	require.EqualValues(t, 0, QuorumThreshold(0))
	require.EqualValues(t, 0, QuorumThreshold(4))
	require.EqualValues(t, 1, QuorumThreshold(5))
	require.EqualValues(t, 2, QuorumThreshold(10))
	require.EqualValues(t, 2, QuorumThreshold(14))
	require.EqualValues(t, 3, QuorumThreshold(15))
	require.EqualValues(t, 20, QuorumThreshold(100))
}

func TestQuorumMet(t *testing.T) {
	require.False(t, QuorumMet(1, 0, 10))
	require.True(t, QuorumMet(1, 1, 10))
	require.True(t, QuorumMet(2, 0, 10))
	// small memberships floor to a zero threshold
	require.True(t, QuorumMet(0, 0, 4))
}

func TestApprovalMet(t *testing.T) {
	// no ballots can never approve
	require.False(t, ApprovalMet(0, 0))

	// exactly 51% passes
	require.True(t, ApprovalMet(51, 49))
	// 50.9% floors to 50 and fails
	require.False(t, ApprovalMet(509, 491))
	require.False(t, ApprovalMet(50, 50))
	require.True(t, ApprovalMet(1, 0))
	require.False(t, ApprovalMet(1, 1))
}

func TestPassed(t *testing.T) {
	// approval ok but quorum short: 10 members need 2 cast power
	require.False(t, Passed(1, 0, 10))
	require.True(t, Passed(2, 0, 10))
	// quorum ok but approval short
	require.False(t, Passed(1, 1, 10))
	require.False(t, Passed(0, 2, 10))
}
