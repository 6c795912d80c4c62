package main

import (
	"fmt"

	"github.com/calehh/funddao/relay"
	"github.com/spf13/cobra"
)

type listenerArguments struct {
	Url      string
	Webhook  string
	RemoveId uint64
}

var listenerArgs listenerArguments

var listenerCmd = &cobra.Command{
	Use:   "listener",
	Short: "Register or remove an event webhook listener",
	Long:  ``,
	Run:   listenerRun,
}

func init() {
	urlFlag(listenerCmd, &listenerArgs.Url)
	listenerCmd.Flags().StringVarP(&listenerArgs.Webhook, "webhook", "w", "", "webhook url to register")
	listenerCmd.Flags().Uint64VarP(&listenerArgs.RemoveId, "remove", "r", 0, "listener id to remove")
}

func listenerRun(cmd *cobra.Command, args []string) {
	if listenerArgs.RemoveId != 0 {
		req := relay.RemoveListenerReq{Id: listenerArgs.RemoveId}
		if err := postJSON(listenerArgs.Url, "/removeListener", req, nil); err != nil {
			fmt.Printf("remove listener err:%v\n", err)
			return
		}
		fmt.Println("listener removed")
		return
	}
	if listenerArgs.Webhook == "" {
		fmt.Println("webhook is required")
		return
	}
	var res relay.RegisterListenerResponse
	req := relay.RegisterListenerReq{Url: listenerArgs.Webhook}
	if err := postJSON(listenerArgs.Url, "/registerListener", req, &res); err != nil {
		fmt.Printf("register listener err:%v\n", err)
		return
	}
	fmt.Printf("listener id:%v\n", res.Id)
}
