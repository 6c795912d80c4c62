package main

import (
	"encoding/json"
	"fmt"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/relay"
	"github.com/spf13/cobra"
)

type addMemberArguments struct {
	Url     string
	Nonce   uint64
	Skey    string
	Address string
	Power   uint64
	Name    string
	NoSend  bool
}

var addMemberArgs addMemberArguments

var addMemberCmd = &cobra.Command{
	Use:   "addmember",
	Short: "Admit a member (admin only)",
	Long:  ``,
	Run:   addMemberRun,
}

func init() {
	urlFlag(addMemberCmd, &addMemberArgs.Url)
	keyFlag(addMemberCmd, &addMemberArgs.Skey)
	nonceFlag(addMemberCmd, &addMemberArgs.Nonce)
	addMemberCmd.Flags().StringVarP(&addMemberArgs.Address, "address", "a", "", "member address")
	addMemberCmd.Flags().Uint64VarP(&addMemberArgs.Power, "power", "p", 0, "voting power, 0 means default")
	addMemberCmd.Flags().StringVar(&addMemberArgs.Name, "name", "", "member name")
	addMemberCmd.Flags().BoolVarP(&addMemberArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func addMemberRun(cmd *cobra.Command, args []string) {
	act := &action.AddMemberAct{
		Address: addMemberArgs.Address,
		Power:   addMemberArgs.Power,
		Name:    addMemberArgs.Name,
	}
	err := signAndSend(addMemberArgs.Url, addMemberArgs.Skey, action.ActionTypeAddMember, act, addMemberArgs.Nonce, addMemberArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}

type removeMemberArguments struct {
	Url     string
	Nonce   uint64
	Skey    string
	Address string
	NoSend  bool
}

var removeMemberArgs removeMemberArguments

var removeMemberCmd = &cobra.Command{
	Use:   "removemember",
	Short: "Remove a member (admin only)",
	Long:  ``,
	Run:   removeMemberRun,
}

func init() {
	urlFlag(removeMemberCmd, &removeMemberArgs.Url)
	keyFlag(removeMemberCmd, &removeMemberArgs.Skey)
	nonceFlag(removeMemberCmd, &removeMemberArgs.Nonce)
	removeMemberCmd.Flags().StringVarP(&removeMemberArgs.Address, "address", "a", "", "member address")
	removeMemberCmd.Flags().BoolVarP(&removeMemberArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func removeMemberRun(cmd *cobra.Command, args []string) {
	act := &action.RemoveMemberAct{Address: removeMemberArgs.Address}
	err := signAndSend(removeMemberArgs.Url, removeMemberArgs.Skey, action.ActionTypeRemoveMember, act, removeMemberArgs.Nonce, removeMemberArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}

type setPowerArguments struct {
	Url     string
	Nonce   uint64
	Skey    string
	Address string
	Power   uint64
	NoSend  bool
}

var setPowerArgs setPowerArguments

var setPowerCmd = &cobra.Command{
	Use:   "setpower",
	Short: "Update a member's voting power (admin only)",
	Long:  ``,
	Run:   setPowerRun,
}

func init() {
	urlFlag(setPowerCmd, &setPowerArgs.Url)
	keyFlag(setPowerCmd, &setPowerArgs.Skey)
	nonceFlag(setPowerCmd, &setPowerArgs.Nonce)
	setPowerCmd.Flags().StringVarP(&setPowerArgs.Address, "address", "a", "", "member address")
	setPowerCmd.Flags().Uint64VarP(&setPowerArgs.Power, "power", "p", 0, "voting power")
	setPowerCmd.Flags().BoolVarP(&setPowerArgs.NoSend, "nosend", "", false, "not send action but print signature")
}

func setPowerRun(cmd *cobra.Command, args []string) {
	act := &action.PowerUpdateAct{
		Address: setPowerArgs.Address,
		Power:   setPowerArgs.Power,
	}
	err := signAndSend(setPowerArgs.Url, setPowerArgs.Skey, action.ActionTypePowerUpdate, act, setPowerArgs.Nonce, setPowerArgs.NoSend)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
}

type membersArguments struct {
	Url        string
	ActiveOnly bool
}

var membersArgs membersArguments

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List members",
	Long:  ``,
	Run:   membersRun,
}

func init() {
	urlFlag(membersCmd, &membersArgs.Url)
	membersCmd.Flags().BoolVar(&membersArgs.ActiveOnly, "active", false, "only active members")
}

func membersRun(cmd *cobra.Command, args []string) {
	var res relay.GetMembersResponse
	req := relay.GetMembersReq{ActiveOnly: membersArgs.ActiveOnly}
	if err := postJSON(membersArgs.Url, "/getMembers", req, &res); err != nil {
		fmt.Printf("get members err:%v\n", err)
		return
	}
	dat, _ := json.MarshalIndent(res, "", " ")
	fmt.Printf("%v\n", string(dat))
}
