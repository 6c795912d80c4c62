package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	app_config "github.com/calehh/funddao/config"
	"github.com/calehh/funddao/crypto"
	"github.com/calehh/funddao/types"
	"github.com/spf13/cobra"
)

type initArguments struct {
	Home      string
	ChainID   string
	Admin     string
	Treasury  uint64
	Overwrite bool
}

var initArgs initArguments

type printInfo struct {
	ChainID    string          `json:"chain_id" yaml:"chain_id"`
	Admin      string          `json:"admin" yaml:"admin"`
	Home       string          `json:"home" yaml:"home"`
	AppMessage json.RawMessage `json:"app_message" yaml:"app_message"`
}

func displayInfo(info printInfo) error {
	out, err := json.MarshalIndent(info, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stderr, "%s\n", out)
	return err
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize key, genesis, and configuration files",
	Long:  `Initialize the home directory with a signing key, a genesis file and config.toml.`,
	Args:  cobra.ExactArgs(0),
	RunE:  initRun,
}

func init() {
	initCmd.Flags().StringVarP(&initArgs.Home, "homedir", "d", "", "home directory")
	initCmd.Flags().StringVar(&initArgs.ChainID, "chain-id", "", "genesis chain-id, if left blank will be randomly created")
	initCmd.Flags().StringVar(&initArgs.Admin, "admin", "", "administrator address, defaults to the generated key")
	initCmd.Flags().Uint64Var(&initArgs.Treasury, "treasury", 0, "initial treasury balance")
	initCmd.Flags().BoolVarP(&initArgs.Overwrite, "overwrite", "o", false, "overwrite the genesis.json file")
}

func initRun(cmd *cobra.Command, args []string) error {
	cfg := app_config.DefaultConfig(initArgs.Home)
	if err := cfg.EnsureRoot(); err != nil {
		return err
	}

	chainID := initArgs.ChainID
	if chainID == "" {
		chainID = fmt.Sprintf("funddao-%v", rand.Uint64())
	}

	pv, err := crypto.GenFilePV(cfg.KeyFilePath())
	if err != nil {
		return fmt.Errorf("generate key err:%v", err)
	}
	admin := initArgs.Admin
	if admin == "" {
		admin = pv.Address()
	}

	genFile := cfg.GenesisFile()
	if !initArgs.Overwrite {
		if _, err := os.Stat(genFile); err == nil {
			return fmt.Errorf("genesis file %v exists, use -o to overwrite", genFile)
		}
	}
	genDoc := &types.GenesisDoc{
		GenesisTime:     time.Now(),
		ChainID:         chainID,
		Admin:           admin,
		TreasuryBalance: initArgs.Treasury,
		Members: []types.GenesisMember{
			{Address: admin, Power: types.DefaultPower},
		},
	}
	if err := types.ExportGenesisFile(genDoc, genFile); err != nil {
		return fmt.Errorf("failed to export genesis file %v", err)
	}
	app_config.WriteConfigFile(cfg.ConfigFilePath(), cfg)
	return displayInfo(printInfo{
		ChainID:    chainID,
		Admin:      admin,
		Home:       cfg.Home,
		AppMessage: genDoc.AppState,
	})
}
