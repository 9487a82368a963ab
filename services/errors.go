package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to controllers.
var (
	// ErrNotFound means an event or match id did not resolve. No state is
	// changed when it is returned.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParticipant means the responding user is not one of a
	// match's two participants.
	ErrInvalidParticipant = errors.New("user is not part of this match")

	// ErrCandidateTaken is returned by the match store when the conditional
	// claim on a candidate event fails because a concurrent submission
	// matched it first. The matcher treats it as "candidate unavailable",
	// never as a failure of the submission.
	ErrCandidateTaken = errors.New("candidate event already matched")

	// ErrStaleMatch is returned by the conditional match writes when the
	// guarded attribute changed, or the match disappeared, between the
	// caller's read and the write. Callers re-read the match to tell a
	// concurrent edit from a deletion, then retry or give up.
	ErrStaleMatch = errors.New("match changed since read")
)

// ValidationError reports a missing or invalid request field. It is always
// raised before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid field %q", e.Field)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps a store-layer failure with the identity of the
// operation that triggered it. The core never retries; retries are a
// caller concern.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
