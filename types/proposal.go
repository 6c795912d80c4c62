package types

type Proposal struct {
	ID          uint64 `json:"id"`
	Proposer    string `json:"proposer"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Recipient   string `json:"recipient"`
	Amount      uint64 `json:"amount"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`
	Executed    bool   `json:"executed"`
	Cancelled   bool   `json:"cancelled"`
}

type Vote struct {
	Proposal uint64 `json:"proposal"`
	Voter    string `json:"voter"`
	Support  bool   `json:"support"`
	Power    uint64 `json:"power"`
	Height   uint64 `json:"height"`
}

type ProposalStatus uint64

const (
	ProposalStatusActive            ProposalStatus = 1
	ProposalStatusAwaitingExecution ProposalStatus = 2
	ProposalStatusExecuted          ProposalStatus = 3
	ProposalStatusFailed            ProposalStatus = 4
	ProposalStatusCancelled         ProposalStatus = 5
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusActive:
		return "active"
	case ProposalStatusAwaitingExecution:
		return "awaiting_execution"
	case ProposalStatusExecuted:
		return "executed"
	case ProposalStatusFailed:
		return "failed"
	case ProposalStatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// IsActive reports whether the voting window is open at height. Executed
// and cancelled proposals are never active.
func (p *Proposal) IsActive(height uint64) bool {
	if p.Executed || p.Cancelled {
		return false
	}
	return height >= p.StartHeight && height < p.EndHeight
}

// StatusAt derives the lifecycle state at height. Whether the tally
// passed is decided by the caller since quorum depends on the current
// member count, not on anything stored in the proposal.
func (p *Proposal) StatusAt(height uint64, passed bool) ProposalStatus {
	switch {
	case p.Cancelled:
		return ProposalStatusCancelled
	case p.Executed:
		return ProposalStatusExecuted
	case height < p.EndHeight:
		return ProposalStatusActive
	case passed:
		return ProposalStatusAwaitingExecution
	default:
		return ProposalStatusFailed
	}
}
