package resolver

import (
	"context"
	"time"

	"github.com/surrealdb/surrealblog/internal/rand"
	"github.com/surrealdb/surrealblog/pkg/models"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
)

// SubscribePost streams changes to published posts.
func (r *Resolver) SubscribePost(ctx context.Context) *pubsub.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.bus.Subscribe(ctx, pubsub.PostTopic{})
}

// SubscribeComment streams changes to the comments of one post.
// The post must exist and be published when the subscription starts.
func (r *Resolver) SubscribeComment(ctx context.Context, postID string) (*pubsub.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.store.Posts.FindByID(postID)
	if !ok || !post.Published {
		return nil, errPostNotFound
	}
	return r.bus.Subscribe(ctx, pubsub.CommentTopic{PostID: postID}), nil
}

// SubscribeCount streams a counter that starts at 1 and grows by one every interval.
// Each subscription owns its counter. A non-positive interval means DefaultCountInterval.
func (r *Resolver) SubscribeCount(ctx context.Context, interval time.Duration) *pubsub.Subscription {
	if interval <= 0 {
		interval = DefaultCountInterval
	}

	topic := pubsub.CountTopic{SubscriptionID: rand.NewID()}
	sub := r.bus.Subscribe(ctx, topic)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		count := 0
		for {
			select {
			case <-sub.Done():
				return
			case <-ticker.C:
				count++
				r.bus.Publish(topic, models.MutationUpdated, count)
			}
		}
	}()

	return sub
}
