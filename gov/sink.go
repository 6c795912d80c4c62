package gov

import "github.com/calehh/funddao/types"

// EventSink receives a notification after every successful mutating
// operation. Publish must never block and must swallow its own
// failures; the engine does not look at the outcome.
type EventSink interface {
	Publish(ev types.Event)
}

type NopSink struct{}

func (NopSink) Publish(types.Event) {}
