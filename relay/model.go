package relay

// sqlite models

type Cursor struct {
	Id  uint64 `gorm:"primaryKey" json:"id"`
	Seq uint64 `json:"seq"`
}

type Listener struct {
	Id        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Url       string `json:"url"`
	CreatedAt int64  `json:"created_at"`
}

type EventRecord struct {
	Id        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string `json:"type"`
	Payload   string `json:"payload"`
	Height    uint64 `json:"height"`
	CreatedAt int64  `json:"created_at"`
}

type Delivery struct {
	Id        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Event     uint64 `json:"event"`
	Listener  uint64 `json:"listener"`
	Attempts  uint64 `json:"attempts"`
	Done      bool   `json:"done"`
	LastError string `json:"last_error"`
	UpdatedAt int64  `json:"updated_at"`
}

type Proposal struct {
	Id           uint64 `gorm:"primaryKey" json:"id"`
	Proposer     string `json:"proposer"`
	Title        string `json:"title"`
	Recipient    string `json:"recipient"`
	Amount       uint64 `json:"amount"`
	StartHeight  uint64 `json:"start_height"`
	EndHeight    uint64 `json:"end_height"`
	YesVotes     uint64 `json:"yes_votes"`
	NoVotes      uint64 `json:"no_votes"`
	Status       uint64 `json:"status"`
	SettleHeight uint64 `json:"settle_height"`
	CreateUnix   int64  `json:"create_timestamp"`
}

type Member struct {
	Id           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Address      string `json:"address"`
	Power        uint64 `json:"power"`
	Active       bool   `json:"active"`
	JoinedHeight uint64 `json:"joined_height"`
}

type ProposalVote struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Proposal uint64 `json:"proposal"`
	Voter    string `json:"voter"`
	Support  bool   `json:"support"`
	Power    uint64 `json:"power"`
	Height   uint64 `json:"height"`
}

type TreasuryFlow struct {
	Id      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind    string `json:"kind"`
	Actor   string `json:"actor"`
	Amount  uint64 `json:"amount"`
	Balance uint64 `json:"balance"`
	Height  uint64 `json:"height"`
}
