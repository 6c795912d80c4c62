package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type statusArguments struct {
	Url string
}

var statusArgs statusArguments

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service status",
	Long:  ``,
	Run:   statusRun,
}

func init() {
	urlFlag(statusCmd, &statusArgs.Url)
}

func statusRun(cmd *cobra.Command, args []string) {
	status, err := queryStatus(statusArgs.Url)
	if err != nil {
		fmt.Printf("get status err:%v\n", err)
		return
	}
	dat, _ := json.MarshalIndent(status, "", " ")
	fmt.Printf("%v\n", string(dat))
}
