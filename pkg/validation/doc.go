// Package validation checks incoming requests against the server's own
// OpenAPI document using kin-openapi's openapi3filter.
//
// Validation is opt-in. When enabled it runs in front of the handlers and
// rejects requests whose query parameters or JSON bodies do not match the
// documented contract with a 400 in the API's usual {error, field} shape.
// Requests for paths the document does not describe pass through untouched.
package validation
