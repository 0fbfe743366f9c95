package interfaces

import "errors"

// Store-level sentinel errors. Every Repository implementation wraps
// these so the use case layer can branch without knowing the backend.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ErrRevisionMismatch signals a failed compare-and-swap: the case
	// changed between load and update.
	ErrRevisionMismatch = errors.New("revision mismatch")
)
