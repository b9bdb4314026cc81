package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSongNotFound is returned when an identifier does not resolve to a song.
// Malformed identifiers map to the same error before any store access.
var ErrSongNotFound = errors.New("song not found")

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field validation details for a rejected request
type ValidationError struct {
	Details []FieldError `json:"details"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Details))
	for i, d := range e.Details {
		fields[i] = d.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
