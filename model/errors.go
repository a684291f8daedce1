package model

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks invalid CLI input. Configuration errors surface
// immediately and abort before any provider call.
var ErrConfiguration = errors.New("configuration error")

// ConfigError wraps a validation failure so callers can match it with
// errors.Is(err, ErrConfiguration).
func ConfigError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// ListingError reports a failed resource enumeration. It is fatal for the
// provider/kind combination it names and for nothing else.
type ListingError struct {
	Provider string
	Kind     ResourceKind
	Err      error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing %s %s resources: %v", e.Provider, e.Kind, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }
