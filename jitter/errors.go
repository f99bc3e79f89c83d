package jitter

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit is returned (wrapped in a DomainError) by bounded draws
// with a limit of zero or less.
var ErrInvalidLimit = errors.New("limit must be positive")

// DomainError describes a bounded draw called with an invalid limit.
type DomainError struct {
	Limit int64
}

func (de *DomainError) Error() string {
	return fmt.Sprintf("jitter: invalid limit %d: %s", de.Limit, ErrInvalidLimit)
}

func (de *DomainError) Unwrap() error {
	return ErrInvalidLimit
}
