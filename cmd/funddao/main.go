package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(newProposalCmd)
	rootCmd.AddCommand(proposalsCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(votesCmd)
	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(addMemberCmd)
	rootCmd.AddCommand(removeMemberCmd)
	rootCmd.AddCommand(setPowerCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(listenerCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
