package main

import (
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/spf13/cobra"
)

type depositArguments struct {
	Url    string
	Nonce  uint64
	Skey   string
	Amount uint64
	NoSend bool
}

var depositArgs depositArguments

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Deposit funds into the treasury",
	Long:  ``,
	Run:   depositRun,
}

func init() {
	urlFlag(depositCmd, &depositArgs.Url)
	keyFlag(depositCmd, &depositArgs.Skey)
	nonceFlag(depositCmd, &depositArgs.Nonce)
	depositCmd.Flags().Uint64VarP(&depositArgs.Amount, "amount", "m", 0, "deposit amount")
	depositCmd.Flags().BoolVarP(&depositArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func depositRun(cmd *cobra.Command, args []string) {
	act := &action.DepositAct{Amount: depositArgs.Amount}
	err := signAndSend(depositArgs.Url, depositArgs.Skey, action.ActionTypeDeposit, act, depositArgs.Nonce, depositArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}
