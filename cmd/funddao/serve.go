package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	app_config "github.com/calehh/funddao/config"
	"github.com/calehh/funddao/gov"
	"github.com/calehh/funddao/relay"
	"github.com/calehh/funddao/state"
	"github.com/calehh/funddao/types"
	cmtconfig "github.com/cometbft/cometbft/config"
	cmtflags "github.com/cometbft/cometbft/libs/cli/flags"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/spf13/cobra"
)

var homeDir string

var rootCmd = &cobra.Command{
	Use:   "funddao",
	Short: "FundDAO is a membership-gated governance and treasury service",
	Long: `FundDAO runs proposal voting and treasury disbursement for a
fixed membership, serving signed actions and queries over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&homeDir, "homedir", "d", "", "home directory")
}

func run(cmd *cobra.Command, args []string) {
	if homeDir == "" {
		homeDir = os.ExpandEnv(app_config.DefaultHomeEnv)
	}

	cfg, err := app_config.Load(homeDir)
	if err != nil {
		log.Fatalf("Reading config: %v", err)
	}

	logger := cmtlog.NewTMLogger(cmtlog.NewSyncWriter(os.Stdout))
	logger, err = cmtflags.ParseLogLevel(cfg.LogLevel, logger, cmtconfig.DefaultLogLevel)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}

	genDoc, err := types.LoadGenesisDoc(cfg.GenesisFile())
	if err != nil {
		log.Fatalf("load genesis err:%v", err)
	}

	db, err := state.NewStateDB(cfg.DataDirPath(), logger)
	if err != nil {
		log.Fatalf("open state db err:%v", err)
	}

	store, err := relay.NewStore(logger, cfg.RelayDBPath())
	if err != nil {
		log.Fatalf("open relay db err:%v", err)
	}

	dispatcher := relay.NewDispatcher(logger, store)
	engine := gov.NewEngine(db, dispatcher, logger)
	if err := engine.Bootstrap(genDoc); err != nil {
		log.Fatalf("bootstrap err:%v", err)
	}

	heightFn := func() uint64 {
		return genDoc.HeightAt(time.Now())
	}

	ctx, cancel := context.WithCancel(context.Background())
	go dispatcher.Start(ctx)

	service := relay.NewService(cfg.ListenAddr, engine, store, heightFn)
	go service.Start()
	logger.Info("funddao service started", "listen", cfg.ListenAddr, "chainId", genDoc.ChainID)

	defer func() {
		log.Println("shut down...")
		cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := db.Close(); err != nil {
				log.Printf("close state db err:%v", err)
			}
			if err := store.Close(); err != nil {
				log.Printf("close relay db err:%v", err)
			}
		}()
		timer := time.NewTimer(time.Second * 10)
		select {
		case <-timer.C:
			os.Exit(1)
		case <-done:
			return
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
