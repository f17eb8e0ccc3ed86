package testutil

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ollamacheck/harness"
)

// FakeOllama is an httptest server that answers from canned responses and
// records generate request bodies.
type FakeOllama struct {
	*httptest.Server

	mu       sync.Mutex
	requests []map[string]any
}

// NewFakeOllama starts a server for the given responses. Unknown routes get
// 404 with an empty body. The server is closed when the test ends.
func NewFakeOllama(t testing.TB, responses ...harness.CannedResponse) *FakeOllama {
	t.Helper()

	routes := make(map[string]harness.CannedResponse, len(responses))
	for _, r := range responses {
		routes[r.Method+" "+r.Path] = r
	}

	fake := &FakeOllama{}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				fake.mu.Lock()
				fake.requests = append(fake.requests, body)
				fake.mu.Unlock()
			}
		}

		canned, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(canned.StatusCode)
		_, _ = w.Write([]byte(canned.Body))
	}))
	t.Cleanup(fake.Close)

	return fake
}

// Requests returns the decoded JSON bodies of POST requests received so far.
func (f *FakeOllama) Requests() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.requests...)
}

// ClosedEndpoint returns a base URL on which nothing is listening.
func ClosedEndpoint(t testing.TB) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	addr := listener.Addr().String()
	if err := listener.Close(); err != nil {
		t.Fatalf("failed to release port: %v", err)
	}
	return "http://" + addr
}

// DroppingEndpoint returns a base URL whose server accepts each connection,
// reads the request and hangs up without answering.
func DroppingEndpoint(t testing.TB) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 4096)
			_, _ = conn.Read(buf)
			_ = conn.Close()
		}
	}()

	return "http://" + listener.Addr().String()
}
