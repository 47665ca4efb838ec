// Package events implements owner-scoped change notifications for receipt
// collections. History and stats views subscribe to their owner's stream
// and refresh on every mutation instead of polling.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of receipt mutation
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one mutation of an owner's receipt collection
type Event struct {
	Action    Action    `json:"action"`
	ReceiptID uuid.UUID `json:"receipt_id"`
	ReceiptNo string    `json:"receipt_no,omitempty"`
	At        time.Time `json:"at"`
}

// subscriberBuffer is the channel capacity per subscriber. Publish never
// blocks; events beyond the buffer are dropped for that subscriber.
const subscriberBuffer = 16

type subscriber struct {
	id uint64
	ch chan Event
}

// Broker fans mutation events out to per-owner subscribers
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]subscriber
}

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string][]subscriber),
	}
}

// Subscribe registers a listener for an owner's receipt changes. The
// returned cancel func must be called when the listener goes away.
func (b *Broker) Subscribe(owner string) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscriber{
		id: b.nextID,
		ch: make(chan Event, subscriberBuffer),
	}
	b.subs[owner] = append(b.subs[owner], sub)

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[owner]
		for i, s := range subs {
			if s.id == sub.id {
				b.subs[owner] = append(subs[:i], subs[i+1:]...)
				close(s.ch)
				break
			}
		}
		if len(b.subs[owner]) == 0 {
			delete(b.subs, owner)
		}
	}

	return sub.ch, cancel
}

// Publish delivers an event to every subscriber of the owner's collection.
// Delivery is best-effort: a subscriber with a full buffer misses the event.
func (b *Broker) Publish(owner string, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subs[owner] {
		select {
		case s.ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for an owner
func (b *Broker) SubscriberCount(owner string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[owner])
}
