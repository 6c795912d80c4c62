package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GitCommit is set at link time.
var GitCommit string

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the funddao version",
	Aliases: []string{"V"},
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if len(GitCommit) >= 8 {
			v += "-" + GitCommit[:8]
		}
		fmt.Println(v)
	},
}
