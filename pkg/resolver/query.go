package resolver

import (
	"context"
	"strings"

	"github.com/surrealdb/surrealblog/pkg/models"
)

// Users returns the users whose name contains query, ignoring case.
// A nil or empty query returns every user.
func (r *Resolver) Users(_ context.Context, query *string) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if query == nil || *query == "" {
		return r.store.Users.All()
	}

	q := strings.ToLower(*query)
	return r.store.Users.FindWhere(func(u models.User) bool {
		return strings.Contains(strings.ToLower(u.Name), q)
	})
}

// Posts returns the posts whose title or body contains query, ignoring case.
// A nil or empty query returns every post.
func (r *Resolver) Posts(_ context.Context, query *string) []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if query == nil || *query == "" {
		return r.store.Posts.All()
	}

	q := strings.ToLower(*query)
	return r.store.Posts.FindWhere(func(p models.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Body), q)
	})
}

// Comments returns every comment.
func (r *Resolver) Comments(_ context.Context) []models.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.Comments.All()
}

// Me returns a fixed placeholder user. It does not read the store.
func (r *Resolver) Me(_ context.Context) models.User {
	age := 38
	return models.User{
		ID:    "123098",
		Name:  "Jesse",
		Email: "Jesse@example.com",
		Age:   &age,
	}
}

// Post returns a fixed placeholder post. It does not read the store.
func (r *Resolver) Post(_ context.Context) models.Post {
	return models.Post{
		ID:        "123098",
		Title:     "New Post",
		Body:      "This is a post body",
		Published: false,
	}
}

// UserByID returns the user with the given id.
func (r *Resolver) UserByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store.Users.FindByID(id)
	if !ok {
		return models.User{}, errUserNotFound
	}
	return u, nil
}

// PostByID returns the post with the given id.
func (r *Resolver) PostByID(_ context.Context, id string) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store.Posts.FindByID(id)
	if !ok {
		return models.Post{}, errPostNotFound
	}
	return p, nil
}

// CommentByID returns the comment with the given id.
func (r *Resolver) CommentByID(_ context.Context, id string) (models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store.Comments.FindByID(id)
	if !ok {
		return models.Comment{}, errCommentNotFound
	}
	return c, nil
}
