package pubsub

import (
	"sync"
	"sync/atomic"
)

// Subscription is a live, non-restartable sequence of events on one topic.
type Subscription struct {
	id    string
	topic string
	bus   *Bus

	events  chan Event
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// ID returns the random identifier of the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the key of the subscribed topic.
func (s *Subscription) Topic() string {
	return s.topic
}

// Events returns the channel events are delivered on. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Dropped returns how many events did not fit in the buffer.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close deregisters the subscription and closes its channels. It is safe to call more than once.
func (s *Subscription) Close() {
	if s.bus.remove(s) {
		s.bus.logger.Debug("Subscription closed", "topic", s.topic, "subscription", s.id)
		return
	}
	s.finish()
}

func (s *Subscription) finish() {
	s.once.Do(func() {
		close(s.events)
		close(s.done)
	})
}
