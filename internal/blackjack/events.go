package blackjack

import "time"

// EventType represents a round event type with type safety
type EventType string

const (
	EventTypeRoundStart     EventType = "round_start"
	EventTypeCardDealt      EventType = "card_dealt"
	EventTypeTurnStart      EventType = "turn_start"
	EventTypeHint           EventType = "hint"
	EventTypeTurnEnd        EventType = "turn_end"
	EventTypeDealerResolved EventType = "dealer_resolved"
	EventTypeRoundEnd       EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything published by a round while it runs
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once setup has dealt every opening hand
type RoundStartEvent struct {
	Players int
	FaceUp  []Rank // indexed by participant, dealer first
	At      time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.At }

// CardDealtEvent is published for every card leaving the shoe
type CardDealtEvent struct {
	Participant int
	Card        Rank
	FaceUp      bool
	Value       Valuation
	Generation  int
	At          time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.At }

// TurnStartEvent is published when a player becomes active
type TurnStartEvent struct {
	Player int
	At     time.Time
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }
func (e TurnStartEvent) Timestamp() time.Time { return e.At }

// HintEvent is published when a player asks for a bust estimate
type HintEvent struct {
	Player     int
	BustChance float64
	At         time.Time
}

func (e HintEvent) EventType() EventType { return EventTypeHint }
func (e HintEvent) Timestamp() time.Time { return e.At }

// TurnEndEvent is published when a player stays or busts
type TurnEndEvent struct {
	Player int
	Value  Valuation
	Busted bool
	At     time.Time
}

func (e TurnEndEvent) EventType() EventType { return EventTypeTurnEnd }
func (e TurnEndEvent) Timestamp() time.Time { return e.At }

// DealerResolvedEvent is published once the dealer has stopped drawing
type DealerResolvedEvent struct {
	Hand  []Rank
	Value Valuation
	At    time.Time
}

func (e DealerResolvedEvent) EventType() EventType { return EventTypeDealerResolved }
func (e DealerResolvedEvent) Timestamp() time.Time { return e.At }

// RoundEndEvent carries the final result of the round
type RoundEndEvent struct {
	Result *Result
	At     time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.At }

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a plain function to EventSubscriber
type SubscriberFunc func(event Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously in publish order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. SubscriberFunc values are not comparable
// and cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(SubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
