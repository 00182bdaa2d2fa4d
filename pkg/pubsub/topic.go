package pubsub

// Topic identifies a subscribable channel. Implementations are comparable value types
// so topics can be built ad hoc and compared in tests.
type Topic interface {
	Key() string
}

// PostTopic carries changes to published posts.
type PostTopic struct{}

func (PostTopic) Key() string {
	return "post"
}

// CommentTopic carries changes to the comments of one post.
type CommentTopic struct {
	PostID string
}

func (t CommentTopic) Key() string {
	return "comment:" + t.PostID
}

// CountTopic carries the ticks of a single counter subscription.
type CountTopic struct {
	SubscriptionID string
}

func (t CountTopic) Key() string {
	return "count:" + t.SubscriptionID
}
