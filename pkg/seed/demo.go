package seed

import (
	"github.com/surrealdb/surrealblog/pkg/models"
)

// Demo returns the sample blog: three users, three posts and four comments.
func Demo() Document {
	age := 38

	return Document{
		Users: []models.User{
			{ID: "1", Name: "Jesse", Email: "jesse@example.com", Age: &age},
			{ID: "2", Name: "Dylan", Email: "dylan@example.com"},
			{ID: "3", Name: "Mike", Email: "mike@example.com"},
		},
		Posts: []models.Post{
			{
				ID:        "1",
				Title:     "My first post",
				Body:      "This is my first example posts to use for testing!",
				Published: true,
				AuthorID:  "1",
			},
			{
				ID:        "2",
				Title:     "My second post",
				Body:      "Another example of posting.",
				Published: false,
				AuthorID:  "1",
			},
			{
				ID:        "3",
				Title:     "My last post",
				Body:      "The last time a post will be tested (for now).",
				Published: true,
				AuthorID:  "2",
			},
		},
		Comments: []models.Comment{
			{ID: "1", Text: "nice post!", AuthorID: "3", PostID: "1"},
			{ID: "2", Text: "I didn't like this post", AuthorID: "2", PostID: "2"},
			{ID: "3", Text: "I agree!", AuthorID: "1", PostID: "3"},
			{ID: "4", Text: "I strongly disagree", AuthorID: "2", PostID: "2"},
		},
	}
}
