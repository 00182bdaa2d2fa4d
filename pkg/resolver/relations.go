package resolver

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealblog/pkg/models"
)

// Relation resolvers derive related entities from the current collections on every call.
// They never write.

// PostAuthor returns the author of post.
func (r *Resolver) PostAuthor(_ context.Context, post models.Post) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.user(post.AuthorID, "post", post.ID)
}

// PostComments returns the comments on post.
func (r *Resolver) PostComments(_ context.Context, post models.Post) []models.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.Comments.FindWhere(func(c models.Comment) bool {
		return c.PostID == post.ID
	})
}

// CommentAuthor returns the author of comment.
func (r *Resolver) CommentAuthor(_ context.Context, comment models.Comment) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.user(comment.AuthorID, "comment", comment.ID)
}

// CommentPost returns the post comment belongs to.
func (r *Resolver) CommentPost(_ context.Context, comment models.Comment) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.store.Posts.FindByID(comment.PostID)
	if !ok {
		return models.Post{}, integrityError(
			fmt.Sprintf("comment %q references missing post %q", comment.ID, comment.PostID))
	}
	return post, nil
}

// UserPosts returns the posts written by user.
func (r *Resolver) UserPosts(_ context.Context, user models.User) []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.Posts.FindWhere(func(p models.Post) bool {
		return p.AuthorID == user.ID
	})
}

// UserComments returns the comments written by user.
func (r *Resolver) UserComments(_ context.Context, user models.User) []models.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.Comments.FindWhere(func(c models.Comment) bool {
		return c.AuthorID == user.ID
	})
}

// user must be called with the lock held.
func (r *Resolver) user(id, ownerKind, ownerID string) (models.User, error) {
	u, ok := r.store.Users.FindByID(id)
	if !ok {
		return models.User{}, integrityError(
			fmt.Sprintf("%s %q references missing user %q", ownerKind, ownerID, id))
	}
	return u, nil
}
