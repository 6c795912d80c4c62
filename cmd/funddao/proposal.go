package main

import (
	"encoding/json"
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/relay"
	"github.com/spf13/cobra"
)

type newProposalArguments struct {
	Url         string
	Nonce       uint64
	Skey        string
	Title       string
	Description string
	Recipient   string
	Amount      uint64
	NoSend      bool
}

var newProposalArgs newProposalArguments

var newProposalCmd = &cobra.Command{
	Use:   "newproposal",
	Short: "Submit a funding proposal",
	Long:  ``,
	Run:   newProposalRun,
}

func init() {
	urlFlag(newProposalCmd, &newProposalArgs.Url)
	keyFlag(newProposalCmd, &newProposalArgs.Skey)
	nonceFlag(newProposalCmd, &newProposalArgs.Nonce)
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Title, "title", "t", "", "proposal title")
	newProposalCmd.Flags().StringVar(&newProposalArgs.Description, "desc", "", "proposal description")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Recipient, "recipient", "r", "", "recipient address")
	newProposalCmd.Flags().Uint64VarP(&newProposalArgs.Amount, "amount", "m", 0, "requested amount")
	newProposalCmd.Flags().BoolVarP(&newProposalArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func newProposalRun(cmd *cobra.Command, args []string) {
	act := &action.ProposalAct{
		Title:       newProposalArgs.Title,
		Description: newProposalArgs.Description,
		Recipient:   newProposalArgs.Recipient,
		Amount:      newProposalArgs.Amount,
	}
	err := signAndSend(newProposalArgs.Url, newProposalArgs.Skey, action.ActionTypeProposal, act, newProposalArgs.Nonce, newProposalArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}

type proposalsArguments struct {
	Url      string
	Id       uint64
	Proposer string
	Page     int
	PageSize int
}

var proposalsArgs proposalsArguments

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List proposals",
	Long:  ``,
	Run:   proposalsRun,
}

func init() {
	urlFlag(proposalsCmd, &proposalsArgs.Url)
	proposalsCmd.Flags().Uint64VarP(&proposalsArgs.Id, "id", "i", 0, "proposal id")
	proposalsCmd.Flags().StringVarP(&proposalsArgs.Proposer, "proposer", "p", "", "proposer address")
	proposalsCmd.Flags().IntVar(&proposalsArgs.Page, "page", 0, "page")
	proposalsCmd.Flags().IntVar(&proposalsArgs.PageSize, "pageSize", 20, "page size")
}

func proposalsRun(cmd *cobra.Command, args []string) {
	var res relay.GetProposalResponse
	req := relay.GetProposalsReq{
		ProposalId:      proposalsArgs.Id,
		ProposerAddress: proposalsArgs.Proposer,
		Page:            proposalsArgs.Page,
		PageSize:        proposalsArgs.PageSize,
	}
	if err := postJSON(proposalsArgs.Url, "/getProposals", req, &res); err != nil {
		fmt.Printf("get proposals err:%v\n", err)
		return
	}
	dat, _ := json.MarshalIndent(res, "", " ")
	fmt.Printf("%v\n", string(dat))
}
