package resolver

import (
	"errors"
)

// Error kinds. Every error returned by a resolver wraps exactly one of them,
// so callers classify failures with errors.Is.
var (
	// ErrValidation reports input that breaks a uniqueness or required-field rule.
	ErrValidation = errors.New("validation error")
	// ErrNotFound reports a referenced user, post or comment that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPolicy reports an operation that is not allowed in the current state.
	ErrPolicy = errors.New("policy violation")
	// ErrIntegrity reports a dangling reference found on read. It means the store
	// invariants were broken and should never happen.
	ErrIntegrity = errors.New("integrity violation")
)

// Error is a classified resolver failure. Message is meant for end users.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func policyError(msg string) error {
	return &Error{Kind: ErrPolicy, Message: msg}
}

func integrityError(msg string) error {
	return &Error{Kind: ErrIntegrity, Message: msg}
}

var (
	errEmailTaken      = validationError("Email taken")
	errUserNotFound    = notFoundError("User not found")
	errAuthorNotFound  = notFoundError("Author not found")
	errPostNotFound    = notFoundError("Post not found")
	errCommentNotFound = notFoundError("Comment not found")
	errPostUnpublished = policyError("Post is not published")
)

func requiredError(field string) error {
	return validationError(field + " is required")
}
