package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds surfaced to callers
var (
	ErrInvalidParams = errors.New("invalid parameters")
	ErrUpstream      = errors.New("upstream error")
	ErrCache         = errors.New("cache unavailable")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParams
}

// UpstreamError is a failed call to one of the card, deck or recommendation APIs.
// Subject is the caller-supplied identifier (card name, deck id, query).
type UpstreamError struct {
	Op      string
	Subject string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s %q: HTTP %d: %v", e.Op, e.Subject, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s %q: HTTP %d", e.Op, e.Subject, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s %q: %v", e.Op, e.Subject, e.Err)
	default:
		return fmt.Sprintf("%s %q failed", e.Op, e.Subject)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
