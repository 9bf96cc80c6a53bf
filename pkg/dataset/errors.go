package dataset

import (
	"fmt"
	"net/http"
)

// ValidationError is returned when a mutation request is missing a required
// field or carries a malformed one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Hint returns a suggestion for fixing the request.
func (e *ValidationError) Hint() string {
	if e.Field != "" {
		return fmt.Sprintf("Field %q %s.", e.Field, e.Message)
	}
	return "Check your request body format and required fields."
}

// SeedError is returned when a seed document breaks a relational invariant.
type SeedError struct {
	Collection string
	Index      int
	Message    string
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed %s[%d]: %s", e.Collection, e.Index, e.Message)
}
