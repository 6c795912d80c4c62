package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

const (
	eventBuffer     = 1024
	deliveryLimit   = 5
	sweepInterval   = time.Minute
	sweepBatch      = 100
	deliveryTimeout = 10 * time.Second
)

// Dispatcher consumes engine events, keeps the sqlite projections
// current and pushes each event to every registered listener. Publish
// never blocks the engine; a full buffer drops the projection update
// but the state store stays authoritative.
type Dispatcher struct {
	logger   cmtlog.Logger
	store    *Store
	events   chan types.Event
	handlers map[string]eventHandler
	cli      *http.Client
}

type eventHandler func(ev types.Event)

func NewDispatcher(logger cmtlog.Logger, store *Store) *Dispatcher {
	d := &Dispatcher{
		logger: logger.With("module", "dispatcher"),
		store:  store,
		events: make(chan types.Event, eventBuffer),
		cli:    &http.Client{Timeout: deliveryTimeout},
	}
	d.handlers = map[string]eventHandler{
		types.EventProposalType:    d.handleEventProposal,
		types.EventVoteType:        d.handleEventVote,
		types.EventExecuteType:     d.handleEventExecute,
		types.EventCancelType:      d.handleEventCancel,
		types.EventDepositType:     d.handleEventDeposit,
		types.EventWithdrawType:    d.handleEventWithdraw,
		types.EventMemberType:      d.handleEventMember,
		types.EventPowerUpdateType: d.handleEventPowerUpdate,
	}
	return d
}

// Publish implements gov.EventSink.
func (d *Dispatcher) Publish(ev types.Event) {
	select {
	case d.events <- ev:
	default:
		d.logger.Error("event buffer full, drop", "type", ev.Type)
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.events:
			d.process(ev)
		case <-ticker.C:
			d.sweep()
		}
	}
}

func (d *Dispatcher) process(ev types.Event) {
	if h, ok := d.handlers[ev.Type]; ok {
		h(ev)
	}
	id, err := d.store.saveEvent(ev, eventHeight(ev))
	if err != nil {
		d.logger.Error("save event fail", "err", err)
		return
	}
	ls, err := d.store.listeners()
	if err != nil {
		d.logger.Error("get listeners fail", "err", err)
		return
	}
	for _, l := range ls {
		delivery, err := d.store.createDelivery(id, l.Id)
		if err != nil {
			d.logger.Error("create delivery fail", "err", err)
			continue
		}
		d.deliver(&delivery, l.Url, ev)
	}
}

func (d *Dispatcher) deliver(delivery *Delivery, url string, ev types.Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		d.logger.Error("marshal event fail", "err", err)
		return
	}
	err = retry.Retry(func(attempt uint) error {
		delivery.Attempts = uint64(attempt)
		return d.post(url, body)
	}, strategy.Limit(deliveryLimit), strategy.Backoff(backoff.Fibonacci(500*time.Millisecond)))
	if err != nil {
		delivery.LastError = err.Error()
		d.logger.Error("deliver fail", "url", url, "event", delivery.Event, "err", err)
	} else {
		delivery.Done = true
		delivery.LastError = ""
	}
	if err := d.store.saveDelivery(delivery); err != nil {
		d.logger.Error("save delivery fail", "err", err)
	}
}

func (d *Dispatcher) post(url string, body []byte) error {
	resp, err := d.cli.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("listener status %d", resp.StatusCode)
	}
	return nil
}

// sweep retries deliveries that exhausted their inline attempts, so a
// listener that was down still gets the event once it comes back.
func (d *Dispatcher) sweep() {
	ds, err := d.store.pendingDeliveries(sweepBatch)
	if err != nil {
		d.logger.Error("load pending deliveries fail", "err", err)
		return
	}
	for i := range ds {
		delivery := ds[i]
		rec, err := d.store.eventById(delivery.Event)
		if err != nil {
			d.logger.Error("load event fail", "event", delivery.Event, "err", err)
			continue
		}
		var l Listener
		if err := d.store.db.First(&l, delivery.Listener).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// listener unregistered, nothing left to do
				delivery.Done = true
				d.store.saveDelivery(&delivery)
			}
			continue
		}
		var attrs []types.EventAttribute
		if err := json.Unmarshal([]byte(rec.Payload), &attrs); err != nil {
			d.logger.Error("decode event payload fail", "event", rec.Id, "err", err)
			continue
		}
		d.deliver(&delivery, l.Url, types.Event{Type: rec.Type, Attributes: attrs})
	}
}

func eventHeight(ev types.Event) uint64 {
	for _, key := range []string{"height", "startHeight"} {
		if v, ok := ev.Attr(key); ok {
			if h, err := strconv.ParseUint(v, 10, 64); err == nil {
				return h
			}
		}
	}
	return 0
}

func (d *Dispatcher) handleEventProposal(event types.Event) {
	ev := types.DecodeEventProposal(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	proposal := Proposal{
		Id:          ev.Proposal,
		Proposer:    ev.Proposer,
		Title:       ev.Title,
		Recipient:   ev.Recipient,
		Amount:      ev.Amount,
		StartHeight: ev.StartHeight,
		EndHeight:   ev.EndHeight,
		Status:      uint64(types.ProposalStatusActive),
		CreateUnix:  time.Now().Unix(),
	}
	if err := d.store.db.Save(&proposal).Error; err != nil {
		d.logger.Error("save proposal fail", "err", err)
	}
}

func (d *Dispatcher) handleEventVote(event types.Event) {
	ev := types.DecodeEventVote(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	vote := ProposalVote{
		Proposal: ev.Proposal,
		Voter:    ev.Voter,
		Support:  ev.Support,
		Power:    ev.Power,
		Height:   ev.Height,
	}
	if err := d.store.db.Create(&vote).Error; err != nil {
		d.logger.Error("save vote fail", "err", err)
	}
	proposal, err := d.store.getProposalById(ev.Proposal)
	if err != nil {
		d.logger.Error("get proposal fail", "err", err)
		return
	}
	proposal.YesVotes = ev.YesVotes
	proposal.NoVotes = ev.NoVotes
	if err := d.store.db.Save(&proposal).Error; err != nil {
		d.logger.Error("save proposal fail", "err", err)
	}
}

func (d *Dispatcher) handleEventExecute(event types.Event) {
	ev := types.DecodeEventExecute(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	proposal, err := d.store.getProposalById(ev.Proposal)
	if err != nil {
		d.logger.Error("get proposal fail", "err", err)
		return
	}
	proposal.Status = uint64(types.ProposalStatusExecuted)
	proposal.SettleHeight = ev.Height
	if err := d.store.db.Save(&proposal).Error; err != nil {
		d.logger.Error("save proposal fail", "err", err)
	}
	flow := TreasuryFlow{
		Kind:    types.EventExecuteType,
		Actor:   ev.Recipient,
		Amount:  ev.Amount,
		Balance: ev.Treasury,
		Height:  ev.Height,
	}
	if err := d.store.db.Create(&flow).Error; err != nil {
		d.logger.Error("save treasury flow fail", "err", err)
	}
}

func (d *Dispatcher) handleEventCancel(event types.Event) {
	ev := types.DecodeEventCancel(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	proposal, err := d.store.getProposalById(ev.Proposal)
	if err != nil {
		d.logger.Error("get proposal fail", "err", err)
		return
	}
	proposal.Status = uint64(types.ProposalStatusCancelled)
	proposal.SettleHeight = ev.Height
	if err := d.store.db.Save(&proposal).Error; err != nil {
		d.logger.Error("save proposal fail", "err", err)
	}
}

func (d *Dispatcher) handleEventDeposit(event types.Event) {
	ev := types.DecodeEventDeposit(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	flow := TreasuryFlow{
		Kind:    types.EventDepositType,
		Actor:   ev.Actor,
		Amount:  ev.Amount,
		Balance: ev.Treasury,
		Height:  ev.Height,
	}
	if err := d.store.db.Create(&flow).Error; err != nil {
		d.logger.Error("save treasury flow fail", "err", err)
	}
}

func (d *Dispatcher) handleEventWithdraw(event types.Event) {
	ev := types.DecodeEventWithdraw(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	flow := TreasuryFlow{
		Kind:    types.EventWithdrawType,
		Actor:   ev.Recipient,
		Amount:  ev.Amount,
		Balance: ev.Treasury,
		Height:  ev.Height,
	}
	if err := d.store.db.Create(&flow).Error; err != nil {
		d.logger.Error("save treasury flow fail", "err", err)
	}
}

func (d *Dispatcher) handleEventMember(event types.Event) {
	ev := types.DecodeEventMember(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	m, err := d.store.getMemberByAddress(ev.Address)
	if err != nil && err != gorm.ErrRecordNotFound {
		d.logger.Error("get member fail", "err", err)
		return
	}
	if m == nil {
		m = &Member{Address: ev.Address}
	}
	m.Active = ev.Added
	if ev.Added {
		m.Power = ev.Power
		m.JoinedHeight = ev.Height
	}
	if err := d.store.db.Save(m).Error; err != nil {
		d.logger.Error("save member fail", "err", err)
	}
}

func (d *Dispatcher) handleEventPowerUpdate(event types.Event) {
	ev := types.DecodeEventPowerUpdate(event)
	if ev == nil {
		d.logger.Error("decode event fail", "event", event)
		return
	}
	m, err := d.store.getMemberByAddress(ev.Address)
	if err != nil {
		d.logger.Error("get member fail", "err", err)
		return
	}
	m.Power = ev.Power
	if err := d.store.db.Save(m).Error; err != nil {
		d.logger.Error("save member fail", "err", err)
	}
}
