package validation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/cagmock/cagmock/pkg/httputil"
)

// ErrNoDocument is returned by NewRequestValidator for a nil document.
var ErrNoDocument = errors.New("openapi document is required")

// RequestValidator validates requests against an OpenAPI document.
type RequestValidator struct {
	doc    *openapi3.T
	router routers.Router
}

// NewRequestValidator validates doc and builds a router over its paths.
func NewRequestValidator(doc *openapi3.T) (*RequestValidator, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	// gorillamux pins routes to the hosts listed in servers; the advertised
	// URL rarely matches the address a request actually arrives on.
	routed := *doc
	routed.Servers = nil
	router, err := gorillamux.NewRouter(&routed)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	return &RequestValidator{doc: doc, router: router}, nil
}

// Covers reports whether the document describes r's path and method.
func (v *RequestValidator) Covers(r *http.Request) bool {
	_, _, err := v.router.FindRoute(r)
	return err == nil
}

// ValidateRequest checks r. A request the document does not describe is
// reported valid. The body, if read, is restored for the next handler.
// Bodies larger than httputil.MaxBodyBytesLimit are passed through unvalidated
// and untruncated so the handler can reject them as too large.
func (v *RequestValidator) ValidateRequest(r *http.Request) *Result {
	result := &Result{Valid: true}

	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return result
	}

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, httputil.MaxBodyBytesLimit+1))
		if err != nil {
			result.AddError(&FieldError{
				Location: LocationBody,
				Code:     ErrCodeReadBody,
				Message:  fmt.Sprintf("failed to read request body: %s", err.Error()),
			})
			return result
		}
		if int64(len(body)) > httputil.MaxBodyBytesLimit {
			r.Body = readCloser{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
			return result
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		defer func() { r.Body = io.NopCloser(bytes.NewReader(body)) }()
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		collect(err, result)
	}
	return result
}

type readCloser struct {
	io.Reader
	io.Closer
}

// collect converts kin-openapi errors into field errors.
func collect(err error, result *Result) {
	if multi, ok := err.(openapi3.MultiError); ok {
		for _, e := range multi {
			collect(e, result)
		}
		return
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		fe := &FieldError{Location: LocationRequest, Code: ErrCodeRequest, Message: reqErr.Error()}
		switch {
		case reqErr.Parameter != nil:
			fe.Field = reqErr.Parameter.Name
			fe.Location = reqErr.Parameter.In
			fe.Code = ErrCodeParameter
		case reqErr.RequestBody != nil:
			fe.Location = LocationBody
			fe.Code = ErrCodeBody
		}
		if reqErr.Err != nil {
			fe.Message = reqErr.Err.Error()
			var schemaErr *openapi3.SchemaError
			if errors.As(reqErr.Err, &schemaErr) {
				if field := fieldPath(schemaErr.JSONPointer()); field != "" && fe.Location == LocationBody {
					fe.Field = field
				}
				fe.Message = schemaErr.Reason
				fe.Code = ErrCodeSchema
			}
		}
		result.AddError(fe)
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		result.AddError(&FieldError{
			Field:    fieldPath(schemaErr.JSONPointer()),
			Location: LocationBody,
			Code:     ErrCodeSchema,
			Message:  schemaErr.Reason,
		})
		return
	}

	result.AddError(&FieldError{Location: LocationRequest, Code: ErrCodeRequest, Message: err.Error()})
}

// fieldPath renders a JSON pointer as a dotted path, e.g. cagIds[0].
func fieldPath(parts []string) string {
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if isNumeric(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
