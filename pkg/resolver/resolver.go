// Package resolver is the query, mutation and subscription engine of surrealblog.
//
// A [Resolver] is the context object handed to every resolver function by the execution
// layer. It owns nothing global: the [store.Store] holding the collections and the
// [pubsub.Bus] delivering live events are injected, so any number of isolated resolvers
// can run side by side.
//
// # Consistency
//
// All access goes through one read/write lock. Queries and relation resolvers share the
// read lock. Each mutation holds the write lock for its whole validate, mutate and publish
// sequence, so no other call observes a half-applied mutation, and every check runs
// against the state before the mutation. When a check fails the store is untouched.
//
// Subscriptions are registered under the lock as well: a subscriber sees every event
// published by mutations that complete after it subscribed, and none from earlier ones.
//
// # Errors
//
// Failures wrap one of [ErrValidation], [ErrNotFound], [ErrPolicy] or [ErrIntegrity].
// The execution layer is expected to turn them into user facing messages; the message of
// each [Error] is already suitable for that.
package resolver

import (
	"sync"
	"time"

	"github.com/surrealdb/surrealblog/pkg/logger"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
	"github.com/surrealdb/surrealblog/pkg/store"
)

// DefaultCountInterval is the tick period of count subscriptions.
const DefaultCountInterval = time.Second

type Option func(*Resolver)

// WithLogger sets the logger used to trace mutations.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver resolves every query, mutation and subscription against one store and bus.
type Resolver struct {
	store  *store.Store
	bus    *pubsub.Bus
	logger logger.Logger

	mu sync.RWMutex
}

// New returns a resolver over s publishing to bus.
func New(s *store.Store, bus *pubsub.Bus, opts ...Option) *Resolver {
	r := &Resolver{
		store:  s,
		bus:    bus,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bus returns the event bus subscriptions are served from.
func (r *Resolver) Bus() *pubsub.Bus {
	return r.bus
}

// Snapshot returns a consistent copy of the store.
func (r *Resolver) Snapshot() store.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Snapshot()
}
