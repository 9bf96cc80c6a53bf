package validation

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cagmock/cagmock/pkg/httputil"
)

const testDocument = `
openapi: 3.0.3
info:
  title: test
  version: 1.0.0
servers:
  - url: http://localhost:8080
paths:
  /api/clients/contractList:
    get:
      parameters:
        - name: clientId
          in: query
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
  /api/cag/updateStatus:
    put:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [ouCagIds, status]
              properties:
                ouCagIds:
                  type: array
                  items:
                    type: string
                status:
                  type: string
      responses:
        "200":
          description: ok
`

func newTestValidator(t *testing.T) *RequestValidator {
	t.Helper()
	doc, err := openapi3.NewLoader().LoadFromData([]byte(testDocument))
	require.NoError(t, err)
	v, err := NewRequestValidator(doc)
	require.NoError(t, err)
	return v
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestNewRequestValidator_NilDocument(t *testing.T) {
	_, err := NewRequestValidator(nil)
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestNewRequestValidator_InvalidDocument(t *testing.T) {
	_, err := NewRequestValidator(&openapi3.T{OpenAPI: "3.0.3"})
	require.Error(t, err)
}

func TestValidateRequest_QueryParameter(t *testing.T) {
	v := newTestValidator(t)

	ok := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "http://example.test:9999/api/clients/contractList?clientId=abc", nil))
	assert.True(t, ok.Valid)

	missing := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "/api/clients/contractList", nil))
	require.False(t, missing.Valid)
	first := missing.First()
	assert.Equal(t, "clientId", first.Field)
	assert.Equal(t, LocationQuery, first.Location)
	assert.Equal(t, ErrCodeParameter, first.Code)
}

func TestValidateRequest_Body(t *testing.T) {
	v := newTestValidator(t)

	ok := v.ValidateRequest(jsonRequest(http.MethodPut, "/api/cag/updateStatus", `{"ouCagIds":["OUCAG001"],"status":"INACTIVE"}`))
	assert.True(t, ok.Valid, "%v", ok.Errors)

	bad := v.ValidateRequest(jsonRequest(http.MethodPut, "/api/cag/updateStatus", `{"ouCagIds":"OUCAG001","status":"INACTIVE"}`))
	require.False(t, bad.Valid)
	assert.Equal(t, LocationBody, bad.First().Location)
	assert.Equal(t, "ouCagIds", bad.First().Field)
}

func TestValidateRequest_UndocumentedPathPasses(t *testing.T) {
	v := newTestValidator(t)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	assert.False(t, v.Covers(r))
	assert.True(t, v.ValidateRequest(r).Valid)
}

func TestValidateRequest_RestoresBody(t *testing.T) {
	v := newTestValidator(t)
	body := `{"ouCagIds":["OUCAG001"],"status":"INACTIVE"}`
	r := jsonRequest(http.MethodPut, "/api/cag/updateStatus", body)

	require.True(t, v.ValidateRequest(r).Valid)
	got, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestValidateRequest_OversizedBodyPassesThrough(t *testing.T) {
	v := newTestValidator(t)
	body := strings.Repeat("x", int(httputil.MaxBodyBytesLimit)+10)
	r := jsonRequest(http.MethodPut, "/api/cag/updateStatus", body)

	assert.True(t, v.ValidateRequest(r).Valid)
	got, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Len(t, got, len(body))
}

func TestMiddleware(t *testing.T) {
	v := newTestValidator(t)
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})
	mw := NewMiddleware(next, v, nil)

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/clients/contractList", nil))
	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body httputil.ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "clientId", body.Field)
	assert.NotEmpty(t, body.Error)

	rr = httptest.NewRecorder()
	mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/clients/contractList?clientId=x", nil))
	assert.True(t, reached)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestMiddleware_NilValidator(t *testing.T) {
	mw := NewMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}), nil, nil)

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/clients/contractList", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "", fieldPath(nil))
	assert.Equal(t, "ouCagIds", fieldPath([]string{"ouCagIds"}))
	assert.Equal(t, "cagIds[0]", fieldPath([]string{"cagIds", "0"}))
	assert.Equal(t, "a.b[2].c", fieldPath([]string{"", "a", "b", "2", "c"}))
}
