package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const ModuleName = "funddao"

// DefaultVotingPeriod is the fixed voting window in heights. At the
// default ten minute cadence this is roughly one week.
const DefaultVotingPeriod = 1008

// DefaultBlockInterval is the wall-clock length of one height unit.
const DefaultBlockInterval = 10 * time.Minute

type GenesisMember struct {
	Address string `json:"address"`
	Power   uint64 `json:"power"`
	Name    string `json:"name"`
}

// GenesisDoc defines the initial conditions for a funddao instance: the
// administrator, the founding membership, and the treasury seed.
type GenesisDoc struct {
	GenesisTime     time.Time       `json:"genesis_time"`
	ChainID         string          `json:"chain_id"`
	Admin           string          `json:"admin"`
	BlockInterval   time.Duration   `json:"block_interval"`
	VotingPeriod    uint64          `json:"voting_period"`
	Members         []GenesisMember `json:"members"`
	TreasuryBalance uint64          `json:"treasury_balance"`
	AppState        json.RawMessage `json:"app_state,omitempty"`
}

// HeightAt maps wall-clock time to the height supplied to every engine
// operation. Heights start at 0 at genesis and only ever grow.
func (genDoc *GenesisDoc) HeightAt(t time.Time) uint64 {
	if !t.After(genDoc.GenesisTime) {
		return 0
	}
	return uint64(t.Sub(genDoc.GenesisTime) / genDoc.BlockInterval)
}

// SaveAs is a utility method for saving GenesisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := json.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, genDocBytes, 0o600)
}

func LoadGenesisDoc(file string) (*GenesisDoc, error) {
	dat, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	genDoc := new(GenesisDoc)
	if err := json.Unmarshal(dat, genDoc); err != nil {
		return nil, err
	}
	if err := genDoc.ValidateAndComplete(); err != nil {
		return nil, err
	}
	return genDoc, nil
}

func (genDoc *GenesisDoc) ValidateAndComplete() error {
	if genDoc.ChainID == "" {
		return errors.New("genesis doc must include non-empty chain_id")
	}

	if genDoc.Admin == "" {
		return errors.New("genesis doc must include non-empty admin")
	}

	for i, m := range genDoc.Members {
		if m.Address == "" {
			return fmt.Errorf("genesis member %v has empty address", i)
		}
	}

	if genDoc.BlockInterval == 0 {
		genDoc.BlockInterval = DefaultBlockInterval
	}

	if genDoc.VotingPeriod == 0 {
		genDoc.VotingPeriod = DefaultVotingPeriod
	}

	if genDoc.GenesisTime.IsZero() {
		genDoc.GenesisTime = time.Now().Round(0).UTC()
	}

	return nil
}

func ExportGenesisFile(genesis *GenesisDoc, genFile string) error {
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	return genesis.SaveAs(genFile)
}
