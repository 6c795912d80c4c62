package main

import (
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/spf13/cobra"
)

type cancelArguments struct {
	Url      string
	Nonce    uint64
	Skey     string
	Proposal uint64
	NoSend   bool
}

var cancelArgs cancelArguments

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a proposal",
	Long:  ``,
	Run:   cancelRun,
}

func init() {
	urlFlag(cancelCmd, &cancelArgs.Url)
	keyFlag(cancelCmd, &cancelArgs.Skey)
	nonceFlag(cancelCmd, &cancelArgs.Nonce)
	cancelCmd.Flags().Uint64VarP(&cancelArgs.Proposal, "proposal", "p", 0, "proposal id")
	cancelCmd.Flags().BoolVarP(&cancelArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func cancelRun(cmd *cobra.Command, args []string) {
	act := &action.CancelAct{Proposal: cancelArgs.Proposal}
	err := signAndSend(cancelArgs.Url, cancelArgs.Skey, action.ActionTypeCancel, act, cancelArgs.Nonce, cancelArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}
