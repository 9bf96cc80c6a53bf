// Package httputil holds the JSON response and request-body helpers shared by
// the HTTP handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// DefaultMaxBodyBytes caps request bodies when no explicit limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// MaxBodyBytesLimit is the largest body limit a server may be configured with.
// Request validation buffers up to this many bytes.
const MaxBodyBytesLimit int64 = 10 << 20

// ErrorBody is the payload written for every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

// MessageBody is the payload written by mutation endpoints on success.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds its limit.
var ErrBodyTooLarge = errors.New("request body too large")

// ErrEmptyBody is returned by DecodeJSON when the request carries no body.
var ErrEmptyBody = errors.New("request body is empty")

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteOK writes a 200 response.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteMessage writes {"message": msg} with status 200.
func WriteMessage(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, MessageBody{Message: msg})
}

// WriteError writes an ErrorBody with the given status.
func WriteError(w http.ResponseWriter, status int, body ErrorBody) {
	WriteJSON(w, status, body)
}

// WriteBadRequest writes a 400 with the given message.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrorBody{Error: message})
}

// WriteNotFound writes a 404 with the given message.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, ErrorBody{Error: message})
}

// WriteMethodNotAllowed writes a 405 listing allowed in the Allow header.
func WriteMethodNotAllowed(w http.ResponseWriter, allowed []string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	WriteError(w, http.StatusMethodNotAllowed, ErrorBody{Error: "method not allowed"})
}

// WriteInternalError writes a 500 with the given message.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrorBody{Error: message})
}

// DecodeJSON decodes the request body into v, reading at most maxBytes.
// A non-positive maxBytes means DefaultMaxBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return ErrBodyTooLarge
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	}
	return err
}

// WriteDecodeError maps a DecodeJSON error onto a response. Oversized bodies
// get 413, everything else is reported with badRequestMessage as a 400.
func WriteDecodeError(w http.ResponseWriter, err error, badRequestMessage string) {
	if errors.Is(err, ErrBodyTooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, ErrorBody{Error: ErrBodyTooLarge.Error()})
		return
	}
	WriteBadRequest(w, badRequestMessage)
}
