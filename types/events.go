package types

import (
	"fmt"
	"strconv"
)

const (
	EventProposalType    = "proposal"
	EventVoteType        = "vote"
	EventExecuteType     = "execute"
	EventCancelType      = "cancel"
	EventDepositType     = "deposit"
	EventWithdrawType    = "withdraw"
	EventMemberType      = "member"
	EventPowerUpdateType = "power_update"
)

type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

type EventProposal struct {
	Proposal    uint64 `json:"proposal"`
	Proposer    string `json:"proposer"`
	Title       string `json:"title"`
	Recipient   string `json:"recipient"`
	Amount      uint64 `json:"amount"`
	StartHeight uint64 `json:"startHeight"`
	EndHeight   uint64 `json:"endHeight"`
}

func EncodeEventProposal(event *EventProposal) Event {
	return Event{
		Type: EventProposalType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal)},
			{Key: "proposer", Value: event.Proposer},
			{Key: "title", Value: event.Title},
			{Key: "recipient", Value: event.Recipient},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount)},
			{Key: "startHeight", Value: fmt.Sprintf("%v", event.StartHeight)},
			{Key: "endHeight", Value: fmt.Sprintf("%v", event.EndHeight)},
		},
	}
}

func DecodeEventProposal(originEvent Event) *EventProposal {
	event := &EventProposal{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "proposer":
			event.Proposer = v.Value
		case "title":
			event.Title = v.Value
		case "recipient":
			event.Recipient = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "startHeight":
			start, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.StartHeight = start
		case "endHeight":
			end, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.EndHeight = end
		}
	}
	return event
}

type EventVote struct {
	Proposal uint64 `json:"proposal"`
	Voter    string `json:"voter"`
	Support  bool   `json:"support"`
	Power    uint64 `json:"power"`
	YesVotes uint64 `json:"yesVotes"`
	NoVotes  uint64 `json:"noVotes"`
	Height   uint64 `json:"height"`
}

func EncodeEventVote(event *EventVote) Event {
	return Event{
		Type: EventVoteType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal)},
			{Key: "voter", Value: event.Voter},
			{Key: "support", Value: fmt.Sprintf("%v", event.Support)},
			{Key: "power", Value: fmt.Sprintf("%v", event.Power)},
			{Key: "yesVotes", Value: fmt.Sprintf("%v", event.YesVotes)},
			{Key: "noVotes", Value: fmt.Sprintf("%v", event.NoVotes)},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventVote(originEvent Event) *EventVote {
	event := &EventVote{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "voter":
			event.Voter = v.Value
		case "support":
			support, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Support = support
		case "power":
			power, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Power = power
		case "yesVotes":
			yes, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.YesVotes = yes
		case "noVotes":
			no, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.NoVotes = no
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}

type EventExecute struct {
	Proposal  uint64 `json:"proposal"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Treasury  uint64 `json:"treasury"`
	Height    uint64 `json:"height"`
}

func EncodeEventExecute(event *EventExecute) Event {
	return Event{
		Type: EventExecuteType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal)},
			{Key: "recipient", Value: event.Recipient},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount)},
			{Key: "treasury", Value: fmt.Sprintf("%v", event.Treasury)},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventExecute(originEvent Event) *EventExecute {
	event := &EventExecute{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "recipient":
			event.Recipient = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "treasury":
			treasury, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Treasury = treasury
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}

type EventCancel struct {
	Proposal uint64 `json:"proposal"`
	Actor    string `json:"actor"`
	Height   uint64 `json:"height"`
}

func EncodeEventCancel(event *EventCancel) Event {
	return Event{
		Type: EventCancelType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: fmt.Sprintf("%v", event.Proposal)},
			{Key: "actor", Value: event.Actor},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventCancel(originEvent Event) *EventCancel {
	event := &EventCancel{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			proposal, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Proposal = proposal
		case "actor":
			event.Actor = v.Value
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}

type EventDeposit struct {
	Actor    string `json:"actor"`
	Amount   uint64 `json:"amount"`
	Treasury uint64 `json:"treasury"`
	Height   uint64 `json:"height"`
}

func EncodeEventDeposit(event *EventDeposit) Event {
	return Event{
		Type: EventDepositType,
		Attributes: []EventAttribute{
			{Key: "actor", Value: event.Actor},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount)},
			{Key: "treasury", Value: fmt.Sprintf("%v", event.Treasury)},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventDeposit(originEvent Event) *EventDeposit {
	event := &EventDeposit{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "actor":
			event.Actor = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "treasury":
			treasury, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Treasury = treasury
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}

type EventWithdraw struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Treasury  uint64 `json:"treasury"`
	Height    uint64 `json:"height"`
}

func EncodeEventWithdraw(event *EventWithdraw) Event {
	return Event{
		Type: EventWithdrawType,
		Attributes: []EventAttribute{
			{Key: "recipient", Value: event.Recipient},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount)},
			{Key: "treasury", Value: fmt.Sprintf("%v", event.Treasury)},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventWithdraw(originEvent Event) *EventWithdraw {
	event := &EventWithdraw{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "recipient":
			event.Recipient = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "treasury":
			treasury, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Treasury = treasury
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}

// EventMember covers both admission and removal; Added tells them apart.
type EventMember struct {
	Address string `json:"address"`
	Power   uint64 `json:"power"`
	Members uint64 `json:"members"`
	Added   bool   `json:"added"`
	Height  uint64 `json:"height"`
}

func EncodeEventMember(event *EventMember) Event {
	return Event{
		Type: EventMemberType,
		Attributes: []EventAttribute{
			{Key: "address", Value: event.Address},
			{Key: "power", Value: fmt.Sprintf("%v", event.Power)},
			{Key: "members", Value: fmt.Sprintf("%v", event.Members)},
			{Key: "added", Value: fmt.Sprintf("%v", event.Added)},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventMember(originEvent Event) *EventMember {
	event := &EventMember{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "address":
			event.Address = v.Value
		case "power":
			power, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Power = power
		case "members":
			members, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Members = members
		case "added":
			added, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Added = added
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}

type EventPowerUpdate struct {
	Address string `json:"address"`
	Power   uint64 `json:"power"`
	Height  uint64 `json:"height"`
}

func EncodeEventPowerUpdate(event *EventPowerUpdate) Event {
	return Event{
		Type: EventPowerUpdateType,
		Attributes: []EventAttribute{
			{Key: "address", Value: event.Address},
			{Key: "power", Value: fmt.Sprintf("%v", event.Power)},
			{Key: "height", Value: fmt.Sprintf("%v", event.Height)},
		},
	}
}

func DecodeEventPowerUpdate(originEvent Event) *EventPowerUpdate {
	event := &EventPowerUpdate{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "address":
			event.Address = v.Value
		case "power":
			power, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Power = power
		case "height":
			height, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Height = height
		}
	}
	return event
}
