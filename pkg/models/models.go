package models

// Mutation tells subscribers what happened to the entity carried by an event.
type Mutation string

const (
	MutationCreated Mutation = "CREATED"
	MutationUpdated Mutation = "UPDATED"
	MutationDeleted Mutation = "DELETED"
)

// User represents an account. Email is unique across all users.
type User struct {
	ID    string `json:"id" cbor:"id" yaml:"id"`
	Name  string `json:"name" cbor:"name" yaml:"name"`
	Email string `json:"email" cbor:"email" yaml:"email"`
	Age   *int   `json:"age,omitempty" cbor:"age,omitempty" yaml:"age,omitempty"`
}

// Clone returns a copy of the user that shares no memory with u.
func (u User) Clone() User {
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	return u
}

// GetID returns the user identifier.
func (u User) GetID() string {
	return u.ID
}

// Post represents an article. AuthorID references a User.
type Post struct {
	ID        string `json:"id" cbor:"id" yaml:"id"`
	Title     string `json:"title" cbor:"title" yaml:"title"`
	Body      string `json:"body" cbor:"body" yaml:"body"`
	Published bool   `json:"published" cbor:"published" yaml:"published"`
	AuthorID  string `json:"author" cbor:"author" yaml:"author"`
}

// Clone returns a copy of the post.
func (p Post) Clone() Post {
	return p
}

// GetID returns the post identifier.
func (p Post) GetID() string {
	return p.ID
}

// Comment represents a remark on a post. AuthorID references a User and PostID a Post.
type Comment struct {
	ID       string `json:"id" cbor:"id" yaml:"id"`
	Text     string `json:"text" cbor:"text" yaml:"text"`
	AuthorID string `json:"author" cbor:"author" yaml:"author"`
	PostID   string `json:"post" cbor:"post" yaml:"post"`
}

// Clone returns a copy of the comment.
func (c Comment) Clone() Comment {
	return c
}

// GetID returns the comment identifier.
func (c Comment) GetID() string {
	return c.ID
}
