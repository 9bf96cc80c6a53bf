package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cagmock/cagmock/pkg/config"
	"github.com/cagmock/cagmock/pkg/dataset"
)

const (
	clientAramex   = "04a3832e-0b8a-40bc-8626-392cf860835d"
	contractCON003 = "571027ad-84fe-40bc-b555-8c3dac5d56ec"
	unitOU001      = "f1a2b3c4-d5e6-7890-abcd-ef1234567890"
	unitOU006      = "e559a889-ddb2-4004-9c30-3be455cdbdd1"
)

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	store *dataset.Store
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	store, err := dataset.NewStore(dataset.DefaultSeed(), dataset.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	cfg := config.Default()
	for _, m := range mutate {
		m(cfg)
	}
	srv, err := NewServer(store, cfg)
	require.NoError(t, err)
	return &testServer{Server: srv, store: store}
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, target, nil)
	case string:
		req = httptest.NewRequest(method, target, bytes.NewBufferString(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
