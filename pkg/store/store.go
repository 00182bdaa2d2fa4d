// Package store holds the in-memory collections behind surrealblog.
//
// A [Store] owns three [Collection] values, one per entity kind, and exposes only mutation
// primitives: insert, find, update in place and remove. Business rules such as email
// uniqueness, reference checks and cascading deletes live in
// [github.com/surrealdb/surrealblog/pkg/resolver], which is also responsible for serializing
// access. Stores are plain values, so tests can create as many isolated instances as they need.
package store

import (
	"github.com/surrealdb/surrealblog/pkg/models"
)

// Store owns the user, post and comment collections.
type Store struct {
	Users    *Collection[models.User]
	Posts    *Collection[models.Post]
	Comments *Collection[models.Comment]
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Users:    NewCollection[models.User]("user"),
		Posts:    NewCollection[models.Post]("post"),
		Comments: NewCollection[models.Comment]("comment"),
	}
}

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Users    []models.User    `json:"users" cbor:"users" yaml:"users"`
	Posts    []models.Post    `json:"posts" cbor:"posts" yaml:"posts"`
	Comments []models.Comment `json:"comments" cbor:"comments" yaml:"comments"`
}

// Snapshot copies the current contents of the store.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Users:    s.Users.All(),
		Posts:    s.Posts.All(),
		Comments: s.Comments.All(),
	}
}
