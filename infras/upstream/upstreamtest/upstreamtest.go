// Package upstreamtest runs an in-process fake of the hotel API for tests.
package upstreamtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"lodge/config"
	"lodge/infras/otel/mocks"
	"lodge/infras/upstream"

	"github.com/go-chi/chi/v5"
)

// Call records one request received by the fake.
type Call struct {
	Method string
	Path   string
	Query  string
	Token  string
	Body   []byte
}

type Server struct {
	Router chi.Router
	URL    string

	mu    sync.Mutex
	calls []Call
}

// New starts a fake upstream and returns it with a client pointed at it.
func New(t *testing.T) (*Server, upstream.Client) {
	t.Helper()

	s := &Server{Router: chi.NewRouter()}

	srv := httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(srv.Close)

	s.URL = srv.URL

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = srv.URL
	cfg.Upstream.ServiceToken = "service-token"

	return s, upstream.New(cfg, mocks.NewOtel())
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Token:  r.Header.Get("Authorization"),
	}

	if r.Body != nil {
		body, _ := io.ReadAll(r.Body)

		call.Body = body
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	s.Router.ServeHTTP(w, r)
}

// Calls returns a copy of every request seen so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Call(nil), s.calls...)
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0

	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}

	return n
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Reply returns a handler that always answers with status and v.
func Reply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, status, v)
	}
}
