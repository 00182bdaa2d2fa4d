package resolver

import (
	"context"

	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
)

// CreatePost adds a post written by an existing user.
// Subscribers of the post topic are told only when the post is published.
func (r *Resolver) CreatePost(_ context.Context, in models.CreatePostInput) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.userExists(in.Author) {
		return models.Post{}, errUserNotFound
	}
	if in.Title == "" {
		return models.Post{}, requiredError("Title")
	}
	if in.Body == "" {
		return models.Post{}, requiredError("Body")
	}

	post := models.Post{
		ID:        models.NewID(),
		Title:     in.Title,
		Body:      in.Body,
		Published: in.Published,
		AuthorID:  in.Author,
	}
	r.store.Posts.Insert(post)

	if post.Published {
		r.bus.Publish(pubsub.PostTopic{}, models.MutationCreated, post)
	}

	r.logger.Debug("Post created", "id", post.ID, "published", post.Published)
	return post, nil
}

// UpdatePost assigns the fields present in in to the post with the given id.
//
// The post topic only ever shows published posts, so the event depends on the
// published flag before and after the update:
//
//   - set and true -> false: DELETED with the post as it was before the update
//   - set and false -> true: CREATED with the updated post
//   - otherwise, if the post is published: UPDATED with the updated post
//   - otherwise nothing
func (r *Resolver) UpdatePost(_ context.Context, id string, in models.UpdatePostInput) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	original, ok := r.store.Posts.FindByID(id)
	if !ok {
		return models.Post{}, errPostNotFound
	}
	if author, ok := in.Author.Get(); ok && !r.userExists(author) {
		return models.Post{}, errAuthorNotFound
	}
	if title, ok := in.Title.Get(); ok && title == "" {
		return models.Post{}, requiredError("Title")
	}
	if body, ok := in.Body.Get(); ok && body == "" {
		return models.Post{}, requiredError("Body")
	}

	post, err := r.store.Posts.Update(id, func(p *models.Post) {
		if title, ok := in.Title.Get(); ok {
			p.Title = title
		}
		if body, ok := in.Body.Get(); ok {
			p.Body = body
		}
		if published, ok := in.Published.Get(); ok {
			p.Published = published
		}
		if author, ok := in.Author.Get(); ok {
			p.AuthorID = author
		}
	})
	if err != nil {
		return models.Post{}, errPostNotFound
	}

	switch {
	case in.Published.IsSet() && original.Published && !post.Published:
		r.bus.Publish(pubsub.PostTopic{}, models.MutationDeleted, original)
	case in.Published.IsSet() && !original.Published && post.Published:
		r.bus.Publish(pubsub.PostTopic{}, models.MutationCreated, post)
	case post.Published:
		r.bus.Publish(pubsub.PostTopic{}, models.MutationUpdated, post)
	}

	r.logger.Debug("Post updated", "id", id, "published", post.Published)
	return post, nil
}

// DeletePost removes the post with the given id and every comment on it.
func (r *Resolver) DeletePost(_ context.Context, id string) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, err := r.store.Posts.RemoveByID(id)
	if err != nil {
		return models.Post{}, errPostNotFound
	}

	comments := r.store.Comments.RemoveWhere(func(c models.Comment) bool {
		return c.PostID == id
	})

	if post.Published {
		r.bus.Publish(pubsub.PostTopic{}, models.MutationDeleted, post)
	}

	r.logger.Debug("Post deleted", "id", id, "comments", len(comments))
	return post, nil
}

func (r *Resolver) userExists(id string) bool {
	_, ok := r.store.Users.FindByID(id)
	return ok
}
