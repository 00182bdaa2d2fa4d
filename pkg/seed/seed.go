// Package seed loads initial users, posts and comments into a store.
//
// Seed files are YAML documents with three optional lists:
//
//	users:
//	  - id: "1"
//	    name: Jesse
//	    email: jesse@example.com
//	    age: 38
//	posts:
//	  - id: "1"
//	    title: My first post
//	    body: ...
//	    published: true
//	    author: "1"
//	comments:
//	  - id: "1"
//	    text: nice post!
//	    author: "1"
//	    post: "1"
//
// A document is validated as a whole against the store it is loaded into, so a
// failing document never leaves a partially seeded store behind.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/store"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid seed document")

// Document is the content of a seed file.
type Document struct {
	Users    []models.User    `yaml:"users"`
	Posts    []models.Post    `yaml:"posts"`
	Comments []models.Comment `yaml:"comments"`
}

// Parse decodes a YAML seed document. Unknown keys are rejected.
func Parse(data []byte) (Document, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("failed to parse seed document: %w", err)
	}
	return doc, nil
}

// ReadFile parses the seed document at path.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Validate checks doc on its own, as if it were loaded into an empty store.
func Validate(doc Document) error {
	return validate(store.Snapshot{}, doc)
}

// Load validates doc against the current content of s and inserts it.
// Either everything is inserted or, on error, nothing is.
func Load(s *store.Store, doc Document) error {
	if err := validate(s.Snapshot(), doc); err != nil {
		return err
	}

	for _, u := range doc.Users {
		s.Users.Insert(u)
	}
	for _, p := range doc.Posts {
		s.Posts.Insert(p)
	}
	for _, c := range doc.Comments {
		s.Comments.Insert(c)
	}
	return nil
}

func validate(existing store.Snapshot, doc Document) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	users := make(map[string]struct{})
	emails := make(map[string]string)
	for _, u := range existing.Users {
		users[u.ID] = struct{}{}
		emails[u.Email] = u.ID
	}
	for i, u := range doc.Users {
		switch {
		case u.ID == "":
			fail("users[%d]: id is required", i)
			continue
		case u.Name == "":
			fail("user %q: name is required", u.ID)
		case u.Email == "":
			fail("user %q: email is required", u.ID)
		}
		if _, dup := users[u.ID]; dup {
			fail("user %q: duplicate id", u.ID)
		}
		if owner, dup := emails[u.Email]; dup && u.Email != "" {
			fail("user %q: email %q already used by user %q", u.ID, u.Email, owner)
		}
		users[u.ID] = struct{}{}
		if u.Email != "" {
			emails[u.Email] = u.ID
		}
	}

	posts := make(map[string]struct{})
	for _, p := range existing.Posts {
		posts[p.ID] = struct{}{}
	}
	for i, p := range doc.Posts {
		if p.ID == "" {
			fail("posts[%d]: id is required", i)
			continue
		}
		if p.Title == "" {
			fail("post %q: title is required", p.ID)
		}
		if p.Body == "" {
			fail("post %q: body is required", p.ID)
		}
		if _, dup := posts[p.ID]; dup {
			fail("post %q: duplicate id", p.ID)
		}
		if _, ok := users[p.AuthorID]; !ok {
			fail("post %q: author %q does not exist", p.ID, p.AuthorID)
		}
		posts[p.ID] = struct{}{}
	}

	comments := make(map[string]struct{})
	for _, c := range existing.Comments {
		comments[c.ID] = struct{}{}
	}
	for i, c := range doc.Comments {
		if c.ID == "" {
			fail("comments[%d]: id is required", i)
			continue
		}
		if c.Text == "" {
			fail("comment %q: text is required", c.ID)
		}
		if _, dup := comments[c.ID]; dup {
			fail("comment %q: duplicate id", c.ID)
		}
		if _, ok := users[c.AuthorID]; !ok {
			fail("comment %q: author %q does not exist", c.ID, c.AuthorID)
		}
		if _, ok := posts[c.PostID]; !ok {
			fail("comment %q: post %q does not exist", c.ID, c.PostID)
		}
		comments[c.ID] = struct{}{}
	}

	return errors.Join(errs...)
}
