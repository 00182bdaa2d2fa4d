package models

import (
	"github.com/gofrs/uuid"
)

// NewID returns a random version 4 UUID in its canonical string form.
// Entity identifiers are opaque; callers must not parse them.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}
