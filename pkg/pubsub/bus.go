// Package pubsub implements the in-process event bus that feeds live subscriptions.
//
// A [Bus] maps topic keys to the set of live [Subscription] values. [Bus.Publish] fans an
// event out synchronously to every subscription registered at that moment: subscriptions
// created before the call see the event, subscriptions created after it do not.
//
// Publishing never blocks. Each subscription owns a bounded buffer and an event that does not
// fit is dropped for that subscription only, counted, and logged. Consumers that must not miss
// events should size the buffer with [WithBufferSize] and drain [Subscription.Events] promptly.
//
// A subscription ends when it is closed explicitly, when the context given to
// [Bus.Subscribe] is done, or when the bus is closed. Ending deregisters it from the bus and
// closes its event channel.
package pubsub

import (
	"context"
	"sync"

	"github.com/surrealdb/surrealblog/internal/rand"
	"github.com/surrealdb/surrealblog/pkg/logger"
	"github.com/surrealdb/surrealblog/pkg/models"
)

// DefaultBufferSize is the per-subscription buffer used unless WithBufferSize says otherwise.
const DefaultBufferSize = 100

// Event is a change delivered to subscribers.
type Event struct {
	Topic    string          `json:"topic" cbor:"topic"`
	Mutation models.Mutation `json:"mutation" cbor:"mutation"`
	Data     any             `json:"data" cbor:"data"`
}

type Option func(*Bus)

// WithBufferSize sets the number of undelivered events each subscription may hold.
func WithBufferSize(size int) Option {
	return func(b *Bus) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// WithLogger sets the logger used for subscription lifecycle and drop reports.
func WithLogger(l logger.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// Bus is a topic keyed publish/subscribe register. The zero value is not usable; use NewBus.
type Bus struct {
	// subs maps topic key -> subscription id -> subscription
	subs   map[string]map[string]*Subscription
	subsMu sync.RWMutex
	closed bool

	bufferSize int
	logger     logger.Logger
}

func NewBus(opts ...Option) *Bus {
	b := &Bus{
		subs:       make(map[string]map[string]*Subscription),
		bufferSize: DefaultBufferSize,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a new subscription on topic. It is ended when ctx is done.
// Subscribing to a closed bus returns a subscription that is already closed.
func (b *Bus) Subscribe(ctx context.Context, topic Topic) *Subscription {
	s := &Subscription{
		id:     rand.NewID(),
		topic:  topic.Key(),
		bus:    b,
		events: make(chan Event, b.bufferSize),
		done:   make(chan struct{}),
	}

	b.subsMu.Lock()
	if b.closed {
		b.subsMu.Unlock()
		s.finish()
		return s
	}
	byID, ok := b.subs[s.topic]
	if !ok {
		byID = make(map[string]*Subscription)
		b.subs[s.topic] = byID
	}
	byID[s.id] = s
	b.subsMu.Unlock()

	b.logger.Debug("Subscription registered", "topic", s.topic, "subscription", s.id)

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Close()
			case <-s.done:
			}
		}()
	}

	return s
}

// Publish delivers an event to every current subscriber of topic and returns how many
// subscriptions accepted it.
func (b *Bus) Publish(topic Topic, mutation models.Mutation, data any) int {
	ev := Event{Topic: topic.Key(), Mutation: mutation, Data: data}

	b.subsMu.RLock()
	defer b.subsMu.RUnlock()

	delivered := 0
	for _, s := range b.subs[ev.Topic] {
		select {
		case s.events <- ev:
			delivered++
		default:
			s.dropped.Add(1)
			b.logger.Warn("Dropped event, subscription buffer is full",
				"topic", ev.Topic,
				"subscription", s.id,
				"mutation", string(mutation))
		}
	}

	return delivered
}

// Subscribers returns the number of live subscriptions on topic.
func (b *Bus) Subscribers(topic Topic) int {
	b.subsMu.RLock()
	defer b.subsMu.RUnlock()
	return len(b.subs[topic.Key()])
}

// Close ends every subscription. Later subscriptions are born closed and publishes are dropped.
func (b *Bus) Close() {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()

	b.closed = true
	for key, byID := range b.subs {
		for _, s := range byID {
			s.finish()
		}
		delete(b.subs, key)
	}
	b.logger.Debug("Bus closed")
}

// remove deregisters s and reports whether it was registered.
func (b *Bus) remove(s *Subscription) bool {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()

	byID, ok := b.subs[s.topic]
	if !ok {
		return false
	}
	if _, ok := byID[s.id]; !ok {
		return false
	}

	delete(byID, s.id)
	if len(byID) == 0 {
		delete(b.subs, s.topic)
	}
	s.finish()
	return true
}
