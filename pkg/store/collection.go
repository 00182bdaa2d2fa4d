package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no entity has the requested id.
var ErrNotFound = errors.New("entity not found")

// Entity is implemented by every value kept in a Collection.
type Entity[T any] interface {
	GetID() string
	Clone() T
}

// Collection is an ordered list of entities keyed by id.
//
// Lookups are linear scans: collections are small and insertion order must be preserved.
// Collection is not safe for concurrent use; the caller serializes access.
// Every value returned is a copy, so the stored entities can only change through Update.
type Collection[T Entity[T]] struct {
	name  string
	items []T
}

// NewCollection returns an empty collection. name is used in error messages.
func NewCollection[T Entity[T]](name string) *Collection[T] {
	return &Collection[T]{name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Insert appends entity. The caller guarantees that its id is not in use.
func (c *Collection[T]) Insert(entity T) {
	c.items = append(c.items, entity.Clone())
}

// FindByID returns the entity with the given id.
func (c *Collection[T]) FindByID(id string) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i].Clone(), true
	}

	var zero T
	return zero, false
}

// FindWhere returns every entity matching pred, in insertion order.
// The result is never nil.
func (c *Collection[T]) FindWhere(pred func(T) bool) []T {
	res := make([]T, 0)
	for _, item := range c.items {
		if pred(item) {
			res = append(res, item.Clone())
		}
	}
	return res
}

// Exists reports whether any entity matches pred.
func (c *Collection[T]) Exists(pred func(T) bool) bool {
	for _, item := range c.items {
		if pred(item) {
			return true
		}
	}
	return false
}

// All returns every entity in insertion order.
func (c *Collection[T]) All() []T {
	return c.FindWhere(func(T) bool { return true })
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Update applies fn to the stored entity with the given id and returns the updated copy.
// fn must not change the id.
func (c *Collection[T]) Update(id string, fn func(*T)) (T, error) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, c.notFound(id)
	}

	fn(&c.items[i])
	return c.items[i].Clone(), nil
}

// RemoveByID removes the entity with the given id and returns it.
func (c *Collection[T]) RemoveByID(id string) (T, error) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, c.notFound(id)
	}

	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return removed, nil
}

// RemoveWhere removes every entity matching pred and returns them in insertion order.
func (c *Collection[T]) RemoveWhere(pred func(T) bool) []T {
	removed := make([]T, 0)
	kept := c.items[:0]
	for _, item := range c.items {
		if pred(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}

	// Drop references held by the tail of the backing array.
	var zero T
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	return removed
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) notFound(id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, c.name, id)
}
