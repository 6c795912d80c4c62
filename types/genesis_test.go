package types

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHeightAt(t *testing.T) {
	gen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	genDoc := &GenesisDoc{
		GenesisTime:   gen,
		BlockInterval: 10 * time.Minute,
	}

	require.EqualValues(t, 0, genDoc.HeightAt(gen))
	require.EqualValues(t, 0, genDoc.HeightAt(gen.Add(-time.Hour)))
	require.EqualValues(t, 0, genDoc.HeightAt(gen.Add(9*time.Minute)))
	require.EqualValues(t, 1, genDoc.HeightAt(gen.Add(10*time.Minute)))
	require.EqualValues(t, 6, genDoc.HeightAt(gen.Add(time.Hour)))
	require.EqualValues(t, 1008, genDoc.HeightAt(gen.Add(7*24*time.Hour)))
}

func TestValidateAndComplete(t *testing.T) {
	genDoc := &GenesisDoc{ChainID: "c", Admin: "admin"}
	require.NoError(t, genDoc.ValidateAndComplete())
	require.EqualValues(t, DefaultVotingPeriod, genDoc.VotingPeriod)
	require.Equal(t, DefaultBlockInterval, genDoc.BlockInterval)
	require.False(t, genDoc.GenesisTime.IsZero())

	require.Error(t, (&GenesisDoc{Admin: "admin"}).ValidateAndComplete())
	require.Error(t, (&GenesisDoc{ChainID: "c"}).ValidateAndComplete())
	require.Error(t, (&GenesisDoc{
		ChainID: "c", Admin: "admin",
		Members: []GenesisMember{{Address: ""}},
	}).ValidateAndComplete())
}

func TestGenesisRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "genesis.json")
	genDoc := &GenesisDoc{
		ChainID:         "funddao-test",
		Admin:           "admin",
		VotingPeriod:    100,
		TreasuryBalance: 500,
		Members: []GenesisMember{
			{Address: "alice", Power: 3, Name: "Alice"},
			{Address: "bob", Power: 1},
		},
	}
	require.NoError(t, ExportGenesisFile(genDoc, file))

	got, err := LoadGenesisDoc(file)
	require.NoError(t, err)
	require.Equal(t, "funddao-test", got.ChainID)
	require.EqualValues(t, 500, got.TreasuryBalance)
	require.Len(t, got.Members, 2)
	require.EqualValues(t, 3, got.Members[0].Power)
}
