package main

import (
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/spf13/cobra"
)

type withdrawArguments struct {
	Url       string
	Nonce     uint64
	Skey      string
	Recipient string
	Amount    uint64
	NoSend    bool
}

var withdrawArgs withdrawArguments

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw treasury funds without a proposal (admin only)",
	Long:  ``,
	Run:   withdrawRun,
}

func init() {
	urlFlag(withdrawCmd, &withdrawArgs.Url)
	keyFlag(withdrawCmd, &withdrawArgs.Skey)
	nonceFlag(withdrawCmd, &withdrawArgs.Nonce)
	withdrawCmd.Flags().StringVarP(&withdrawArgs.Recipient, "recipient", "r", "", "recipient address")
	withdrawCmd.Flags().Uint64VarP(&withdrawArgs.Amount, "amount", "m", 0, "withdraw amount")
	withdrawCmd.Flags().BoolVarP(&withdrawArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func withdrawRun(cmd *cobra.Command, args []string) {
	act := &action.WithdrawAct{
		Recipient: withdrawArgs.Recipient,
		Amount:    withdrawArgs.Amount,
	}
	err := signAndSend(withdrawArgs.Url, withdrawArgs.Skey, action.ActionTypeWithdraw, act, withdrawArgs.Nonce, withdrawArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}
