package pstr

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthExceeded is returned when content longer than MaxLength is interned.
	ErrLengthExceeded = errors.New("pstr: length exceeded")

	// ErrAllocationFailure is returned when a new block cannot be obtained.
	// The store stays usable for content that is already interned or fits in
	// the active block, but retrying a miss without freeing memory elsewhere
	// will fail again.
	ErrAllocationFailure = errors.New("pstr: allocation failure")
)

// LengthExceededError reports the rejected length.
//
// It matches ErrLengthExceeded via errors.Is.
type LengthExceededError struct {
	Length int
	Max    int
}

func (e *LengthExceededError) Error() string {
	return fmt.Sprintf("pstr: length %d exceeds maximum of %d bytes", e.Length, e.Max)
}

func (e *LengthExceededError) Unwrap() error { return ErrLengthExceeded }
