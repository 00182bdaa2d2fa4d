package models

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
)

// CreateUserInput holds the fields of a new user.
type CreateUserInput struct {
	Name  string `json:"name" cbor:"name"`
	Email string `json:"email" cbor:"email"`
	Age   *int   `json:"age,omitempty" cbor:"age,omitempty"`
}

// UpdateUserInput holds the user fields to change. Absent fields are left untouched.
// Age may be present and nil, which clears the stored age.
type UpdateUserInput struct {
	Name  Optional[string] `json:"name" cbor:"name"`
	Email Optional[string] `json:"email" cbor:"email"`
	Age   Optional[*int]   `json:"age" cbor:"age"`
}

// MarshalJSON encodes only the present fields, so decoding the result yields the same input.
func (in UpdateUserInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.fields())
}

func (in UpdateUserInput) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(in.fields())
}

func (in UpdateUserInput) fields() map[string]any {
	m := make(map[string]any, 3)
	putField(m, "name", in.Name)
	putField(m, "email", in.Email)
	putField(m, "age", in.Age)
	return m
}

// CreatePostInput holds the fields of a new post. Author is the id of an existing user.
type CreatePostInput struct {
	Title     string `json:"title" cbor:"title"`
	Body      string `json:"body" cbor:"body"`
	Published bool   `json:"published" cbor:"published"`
	Author    string `json:"author" cbor:"author"`
}

// UpdatePostInput holds the post fields to change.
type UpdatePostInput struct {
	Title     Optional[string] `json:"title" cbor:"title"`
	Body      Optional[string] `json:"body" cbor:"body"`
	Published Optional[bool]   `json:"published" cbor:"published"`
	Author    Optional[string] `json:"author" cbor:"author"`
}

func (in UpdatePostInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.fields())
}

func (in UpdatePostInput) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(in.fields())
}

func (in UpdatePostInput) fields() map[string]any {
	m := make(map[string]any, 4)
	putField(m, "title", in.Title)
	putField(m, "body", in.Body)
	putField(m, "published", in.Published)
	putField(m, "author", in.Author)
	return m
}

// CreateCommentInput holds the fields of a new comment.
type CreateCommentInput struct {
	Text   string `json:"text" cbor:"text"`
	Author string `json:"author" cbor:"author"`
	Post   string `json:"post" cbor:"post"`
}

// UpdateCommentInput holds the comment fields to change.
type UpdateCommentInput struct {
	Text   Optional[string] `json:"text" cbor:"text"`
	Author Optional[string] `json:"author" cbor:"author"`
	Post   Optional[string] `json:"post" cbor:"post"`
}

func (in UpdateCommentInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.fields())
}

func (in UpdateCommentInput) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(in.fields())
}

func (in UpdateCommentInput) fields() map[string]any {
	m := make(map[string]any, 3)
	putField(m, "text", in.Text)
	putField(m, "author", in.Author)
	putField(m, "post", in.Post)
	return m
}
