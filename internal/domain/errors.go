package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrProviderUnreachable indicates the metadata provider could not be reached
	ErrProviderUnreachable = errors.New("movie provider is unreachable")

	// ErrUnauthorized indicates the bearer token was rejected
	ErrUnauthorized = errors.New("access token is invalid")

	// ErrProviderFailed indicates the provider answered with a non-success status
	ErrProviderFailed = errors.New("movie provider request failed")

	// ErrInvalidRating indicates a rating outside 0..10
	ErrInvalidRating = errors.New("rating must be between 0 and 10")

	// ErrInvalidTimeWindow indicates an unknown trending window
	ErrInvalidTimeWindow = errors.New("invalid trending time window")
)

// MutationOp names an optimistic mutation
type MutationOp string

const (
	OpAddFavourite    MutationOp = "add favourite"
	OpRemoveFavourite MutationOp = "remove favourite"
	OpSetRating       MutationOp = "set rating"
	OpRemoveRating    MutationOp = "remove rating"
)

// MutationError is returned after a failed mutation has been rolled back
type MutationError struct {
	Op      MutationOp
	MovieID int
	Err     error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s for movie %d: %v", e.Op, e.MovieID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// BulkError reports an aborted clear-all. Removals that completed before the
// first failure are not undone.
type BulkError struct {
	Op        MutationOp
	Total     int
	Succeeded int
	Err       error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("%s aborted after %d of %d removals: %v", e.Op, e.Succeeded, e.Total, e.Err)
}

func (e *BulkError) Unwrap() error { return e.Err }
