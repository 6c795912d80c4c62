package main

import (
	"encoding/json"
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/relay"
	"github.com/spf13/cobra"
)

type voteArguments struct {
	Url      string
	Nonce    uint64
	Skey     string
	Proposal uint64
	Against  bool
	NoSend   bool
}

var voteArgs voteArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Vote on a proposal",
	Long:  ``,
	Run:   voteRun,
}

func init() {
	urlFlag(voteCmd, &voteArgs.Url)
	keyFlag(voteCmd, &voteArgs.Skey)
	nonceFlag(voteCmd, &voteArgs.Nonce)
	voteCmd.Flags().Uint64VarP(&voteArgs.Proposal, "proposal", "p", 0, "proposal id")
	voteCmd.Flags().BoolVarP(&voteArgs.Against, "against", "", false, "vote against instead of for")
	voteCmd.Flags().BoolVarP(&voteArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func voteRun(cmd *cobra.Command, args []string) {
	act := &action.VoteAct{
		Proposal: voteArgs.Proposal,
		Support:  !voteArgs.Against,
	}
	err := signAndSend(voteArgs.Url, voteArgs.Skey, action.ActionTypeVote, act, voteArgs.Nonce, voteArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}

type votesArguments struct {
	Url      string
	Proposal uint64
	Voter    string
	Page     int
	PageSize int
}

var votesArgs votesArguments

var votesCmd = &cobra.Command{
	Use:   "votes",
	Short: "List votes on a proposal",
	Long:  ``,
	Run:   votesRun,
}

func init() {
	urlFlag(votesCmd, &votesArgs.Url)
	votesCmd.Flags().Uint64VarP(&votesArgs.Proposal, "proposal", "p", 0, "proposal id")
	votesCmd.Flags().StringVar(&votesArgs.Voter, "voter", "", "voter address")
	votesCmd.Flags().IntVar(&votesArgs.Page, "page", 0, "page")
	votesCmd.Flags().IntVar(&votesArgs.PageSize, "pageSize", 20, "page size")
}

func votesRun(cmd *cobra.Command, args []string) {
	var res relay.GetVotesResponse
	req := relay.GetVotesReq{
		ProposalId: votesArgs.Proposal,
		Voter:      votesArgs.Voter,
		Page:       votesArgs.Page,
		PageSize:   votesArgs.PageSize,
	}
	if err := postJSON(votesArgs.Url, "/getVotes", req, &res); err != nil {
		fmt.Printf("get votes err:%v\n", err)
		return
	}
	dat, _ := json.MarshalIndent(res, "", " ")
	fmt.Printf("%v\n", string(dat))
}
