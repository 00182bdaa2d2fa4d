package app

import (
	"github.com/surrealdb/surrealblog/pkg/seed"
)

// Summary counts the entities of a seed document.
type Summary struct {
	Users    int
	Posts    int
	Comments int
}

// Check parses and validates the seed document at path without starting anything.
func Check(path string) (Summary, error) {
	doc, err := seed.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	if err := seed.Validate(doc); err != nil {
		return Summary{}, err
	}
	return Summary{
		Users:    len(doc.Users),
		Posts:    len(doc.Posts),
		Comments: len(doc.Comments),
	}, nil
}
