package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	hackrx "github.com/lavesh00/HackRx-6"
	"github.com/lavesh00/HackRx-6/store"
)

type stubPipeline struct {
	answers []string
	err     error
}

func (s *stubPipeline) ProcessDocumentQueries(_ context.Context, documentURL string, questions []string) ([]string, error) {
	if documentURL == "" || len(questions) == 0 {
		return nil, fmt.Errorf("%w: bad request", hackrx.ErrInvalidRequest)
	}
	return s.answers, s.err
}

func (s *stubPipeline) ProcessDocument(context.Context, string) (string, error) { return "doc", nil }
func (s *stubPipeline) RemoveDocument(context.Context, string) error            { return nil }
func (s *stubPipeline) Stats(context.Context) (*store.DBStats, error) {
	return &store.DBStats{Documents: 2}, nil
}
func (s *stubPipeline) Close() error { return nil }

func TestHandleRun(t *testing.T) {
	h := newHandler(&stubPipeline{answers: []string{"Thirty days."}})

	body := `{"documents":"https://example.com/p.pdf","questions":["What is the grace period?"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hackrx/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.handleRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp runResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Answers) != 1 || resp.Answers[0] != "Thirty days." {
		t.Errorf("answers = %v, want [Thirty days.]", resp.Answers)
	}
}

func TestHandleRunBadJSON(t *testing.T) {
	h := newHandler(&stubPipeline{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hackrx/run", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.handleRun(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRunInvalidRequest(t *testing.T) {
	h := newHandler(&stubPipeline{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hackrx/run",
		strings.NewReader(`{"documents":"","questions":[]}`))
	rec := httptest.NewRecorder()
	h.handleRun(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := authMiddleware("secret", next)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hackrx/run", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/hackrx/run", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}

	// Health stays open.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d, want 200 without auth", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rateLimitMiddleware(4, next) // burst of 1

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("burst exceeded: status = %d, want 429", rec.Code)
	}

	// A different client has its own limiter.
	other := httptest.NewRequest(http.MethodGet, "/stats", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", rec.Code)
	}
}
