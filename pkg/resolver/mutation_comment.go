package resolver

import (
	"context"

	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
)

// CreateComment adds a comment by an existing user on an existing, published post.
func (r *Resolver) CreateComment(_ context.Context, in models.CreateCommentInput) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.userExists(in.Author) {
		return models.Comment{}, errUserNotFound
	}
	post, ok := r.store.Posts.FindByID(in.Post)
	if !ok {
		return models.Comment{}, errPostNotFound
	}
	if !post.Published {
		return models.Comment{}, errPostUnpublished
	}
	if in.Text == "" {
		return models.Comment{}, requiredError("Text")
	}

	comment := models.Comment{
		ID:       models.NewID(),
		Text:     in.Text,
		AuthorID: in.Author,
		PostID:   in.Post,
	}
	r.store.Comments.Insert(comment)

	r.bus.Publish(pubsub.CommentTopic{PostID: comment.PostID}, models.MutationCreated, comment)

	r.logger.Debug("Comment created", "id", comment.ID, "post", comment.PostID)
	return comment, nil
}

// UpdateComment assigns the fields present in in to the comment with the given id.
// Moving a comment does not check that the target post is published.
// The UPDATED event goes to the topic of the post the comment belongs to after the update.
func (r *Resolver) UpdateComment(_ context.Context, id string, in models.UpdateCommentInput) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.Comments.FindByID(id); !ok {
		return models.Comment{}, errCommentNotFound
	}
	if author, ok := in.Author.Get(); ok && !r.userExists(author) {
		return models.Comment{}, errAuthorNotFound
	}
	if postID, ok := in.Post.Get(); ok {
		if _, exists := r.store.Posts.FindByID(postID); !exists {
			return models.Comment{}, errPostNotFound
		}
	}
	if text, ok := in.Text.Get(); ok && text == "" {
		return models.Comment{}, requiredError("Text")
	}

	comment, err := r.store.Comments.Update(id, func(c *models.Comment) {
		if text, ok := in.Text.Get(); ok {
			c.Text = text
		}
		if author, ok := in.Author.Get(); ok {
			c.AuthorID = author
		}
		if postID, ok := in.Post.Get(); ok {
			c.PostID = postID
		}
	})
	if err != nil {
		return models.Comment{}, errCommentNotFound
	}

	r.bus.Publish(pubsub.CommentTopic{PostID: comment.PostID}, models.MutationUpdated, comment)

	r.logger.Debug("Comment updated", "id", id, "post", comment.PostID)
	return comment, nil
}

// DeleteComment removes the comment with the given id.
func (r *Resolver) DeleteComment(_ context.Context, id string) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, err := r.store.Comments.RemoveByID(id)
	if err != nil {
		return models.Comment{}, errCommentNotFound
	}

	r.bus.Publish(pubsub.CommentTopic{PostID: comment.PostID}, models.MutationDeleted, comment)

	r.logger.Debug("Comment deleted", "id", id, "post", comment.PostID)
	return comment, nil
}
