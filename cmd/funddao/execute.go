package main

import (
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/spf13/cobra"
)

type executeArguments struct {
	Url      string
	Nonce    uint64
	Skey     string
	Proposal uint64
	NoSend   bool
}

var executeArgs executeArguments

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a passed proposal",
	Long:  ``,
	Run:   executeRun,
}

func init() {
	urlFlag(executeCmd, &executeArgs.Url)
	keyFlag(executeCmd, &executeArgs.Skey)
	nonceFlag(executeCmd, &executeArgs.Nonce)
	executeCmd.Flags().Uint64VarP(&executeArgs.Proposal, "proposal", "p", 0, "proposal id")
	executeCmd.Flags().BoolVarP(&executeArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func executeRun(cmd *cobra.Command, args []string) {
	act := &action.ExecuteAct{Proposal: executeArgs.Proposal}
	err := signAndSend(executeArgs.Url, executeArgs.Skey, action.ActionTypeExecute, act, executeArgs.Nonce, executeArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}
