package validation

import (
	"fmt"
)

// Locations of a field error.
const (
	LocationBody    = "body"
	LocationPath    = "path"
	LocationQuery   = "query"
	LocationHeader  = "header"
	LocationRequest = "request"
)

// Machine-readable error codes.
const (
	ErrCodeSchema    = "schema"
	ErrCodeParameter = "parameter"
	ErrCodeBody      = "body"
	ErrCodeRequest   = "request"
	ErrCodeReadBody  = "read_error"
)

// FieldError describes one validation failure.
type FieldError struct {
	Field    string `json:"field,omitempty"`
	Location string `json:"location"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
	}
	return e.Message
}

// Result collects the failures of one request.
type Result struct {
	Valid  bool          `json:"valid"`
	Errors []*FieldError `json:"errors,omitempty"`
}

// AddError records err and marks the result invalid.
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// First returns the first error, or nil when the result is valid.
func (r *Result) First() *FieldError {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}
