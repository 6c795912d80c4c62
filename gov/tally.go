package gov

// Pass/fail arithmetic. Both ratios use integer floor division, so a
// tally computing to 50.9% approval reads as 50 and fails while exactly
// 51.0% passes.
const (
	QuorumPercent   = 20
	ApprovalPercent = 51
)

// QuorumThreshold is the minimum total cast power, derived from the
// member count at evaluation time rather than at proposal creation.
func QuorumThreshold(memberCount uint64) uint64 {
	return memberCount * QuorumPercent / 100
}

func QuorumMet(yesVotes, noVotes, memberCount uint64) bool {
	return yesVotes+noVotes >= QuorumThreshold(memberCount)
}

func ApprovalMet(yesVotes, noVotes uint64) bool {
	total := yesVotes + noVotes
	if total == 0 {
		return false
	}
	return yesVotes*100/total >= ApprovalPercent
}

func Passed(yesVotes, noVotes, memberCount uint64) bool {
	return QuorumMet(yesVotes, noVotes, memberCount) && ApprovalMet(yesVotes, noVotes)
}
