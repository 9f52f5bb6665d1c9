package identity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound reports that no record matched the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrUnavailable reports that the store could not be reached. Handlers
	// map it to a server-side failure, never to a field error.
	ErrUnavailable = errors.New("identity store unavailable")
)

// ConflictError reports a uniqueness violation on a single field,
// whether caught by the pre-check or by the store's constraint.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

// ValidationError aggregates every field-level failure for one request.
// Fields maps field name to a human-readable reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
