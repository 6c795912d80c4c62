package main

import "github.com/spf13/cobra"

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVarP(url, "url", "u", "http://127.0.0.1:8571", "funddao service url")
}

func keyFlag(cmd *cobra.Command, key *string) {
	cmd.Flags().StringVarP(key, "skeyPath", "s", "./config/member_key.json", "private key path")
}

func nonceFlag(cmd *cobra.Command, nonce *uint64) {
	cmd.Flags().Uint64VarP(nonce, "nonce", "n", 0, "account nonce, 0 queries the service")
}
