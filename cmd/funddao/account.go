package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type accountArguments struct {
	Url     string
	Address string
}

var accountArgs accountArguments

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show an account's balance, nonce and membership",
	Long:  ``,
	Run:   accountRun,
}

func init() {
	urlFlag(accountCmd, &accountArgs.Url)
	accountCmd.Flags().StringVarP(&accountArgs.Address, "address", "a", "", "account address")
}

func accountRun(cmd *cobra.Command, args []string) {
	if accountArgs.Address == "" {
		fmt.Println("address is required")
		return
	}
	acct, err := queryAccount(accountArgs.Url, accountArgs.Address)
	if err != nil {
		fmt.Printf("query account err:%v\n", err)
		return
	}
	dat, _ := json.MarshalIndent(acct, "", " ")
	fmt.Printf("%v\n", string(dat))
}
