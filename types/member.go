package types

// DefaultPower is the voting power assigned to a member when none is given.
const DefaultPower = 1

type Member struct {
	Address      string `json:"address"`
	Power        uint64 `json:"power"`
	JoinedHeight uint64 `json:"joined_height"`
}

// Account carries the spendable balance and the action nonce for an
// address. Recipients of disbursements get an account even when they
// are not members.
type Account struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}
