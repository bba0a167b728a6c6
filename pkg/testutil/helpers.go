package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// RecordedRequest is what a Backend saw for one call
type RecordedRequest struct {
	Method        string
	SOAPAction    string
	ContentType   string
	Authorization string
	Body          string
}

// Backend is an httptest server standing in for a SOAP or REST backend.
// It answers every request with the configured status and body.
type Backend struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	last   RecordedRequest
	hits   atomic.Int32
}

// NewBackend starts a backend answering status/body. It is closed when the test ends.
func NewBackend(t *testing.T, status int, body string) *Backend {
	t.Helper()

	b := &Backend{status: status, body: body}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.hits.Add(1)
	data, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.last = RecordedRequest{
		Method:        r.Method,
		SOAPAction:    r.Header.Get("SOAPAction"),
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
		Body:          string(data),
	}
	status, body := b.status, b.body
	b.mu.Unlock()

	w.WriteHeader(status)
	io.WriteString(w, body)
}

// Hits returns the number of requests received
func (b *Backend) Hits() int {
	return int(b.hits.Load())
}

// Last returns the most recent request
func (b *Backend) Last() RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// ExecuteRequest executes an HTTP request against a handler
func ExecuteRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ParseJSONBody parses the response body into target
func ParseJSONBody(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), target), "failed to parse response body: %s", rr.Body.String())
}

// MustJSON marshals v or panics
func MustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
