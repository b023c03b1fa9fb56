package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGenerationFailed means the model client did not return usable text
	// (network failure, upstream error, timeout, empty response). The user
	// message is already recorded when this is returned.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrStorageUnavailable means the store could not perform an append or
	// read. Appends are all-or-nothing, so nothing was partially applied.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMessageBlocked means the intake policy rejected the message before
	// any mutation.
	ErrMessageBlocked = errors.New("message blocked by policy")
)

// FieldError describes a single validation violation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// InvalidInputError is returned when request validation fails. It is always
// detected before any store mutation.
type InvalidInputError struct {
	Fields []FieldError
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
