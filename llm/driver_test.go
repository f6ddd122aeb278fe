package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// fakeProvider scripts Generate/Embed outcomes for driver tests.
type fakeProvider struct {
	generateCalls int
	embedCalls    int
	generate      func(call int, req GenerateRequest) (*GenerateResponse, error)
	embed         func(call int, texts []string) ([][]float32, error)
}

func (f *fakeProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	f.generateCalls++
	return f.generate(f.generateCalls, req)
}

func (f *fakeProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.embedCalls++
	return f.embed(f.embedCalls, texts)
}

// newTestDriver returns a driver with instant sleeps and no rate limiting.
func newTestDriver(p Provider) *Driver {
	d := NewDriver(p, DriverConfig{RateLimit: 1000})
	d.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	d.limiter.sleep = d.sleep
	return d
}

func TestDriverRetriesTransientErrors(t *testing.T) {
	fake := &fakeProvider{
		generate: func(call int, req GenerateRequest) (*GenerateResponse, error) {
			if call < 3 {
				return nil, &APIError{Status: http.StatusServiceUnavailable, Body: "overloaded"}
			}
			return &GenerateResponse{Content: "the answer", TotalTokens: 10}, nil
		},
	}
	d := newTestDriver(fake)

	resp, err := d.Generate(context.Background(), GenerateRequest{Prompt: "q"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if resp.Content != "the answer" {
		t.Errorf("Content = %q, want %q", resp.Content, "the answer")
	}
	if fake.generateCalls != 3 {
		t.Errorf("generateCalls = %d, want 3", fake.generateCalls)
	}
}

func TestDriverGivesUpAfterMaxAttempts(t *testing.T) {
	fake := &fakeProvider{
		generate: func(call int, req GenerateRequest) (*GenerateResponse, error) {
			return nil, &APIError{Status: http.StatusTooManyRequests, Body: "rate limited"}
		},
	}
	d := newTestDriver(fake)

	_, err := d.Generate(context.Background(), GenerateRequest{Prompt: "q"})
	if err == nil {
		t.Fatal("Generate() error = nil, want failure")
	}
	if fake.generateCalls != 4 {
		t.Errorf("generateCalls = %d, want 4 attempts", fake.generateCalls)
	}
}

func TestDriverDoesNotRetryPermanentErrors(t *testing.T) {
	permanent := &APIError{Status: http.StatusBadRequest, Body: "bad request"}
	fake := &fakeProvider{
		generate: func(call int, req GenerateRequest) (*GenerateResponse, error) {
			return nil, permanent
		},
	}
	d := newTestDriver(fake)

	_, err := d.Generate(context.Background(), GenerateRequest{Prompt: "q"})
	if !errors.Is(err, permanent) {
		t.Fatalf("Generate() error = %v, want the permanent error", err)
	}
	if fake.generateCalls != 1 {
		t.Errorf("generateCalls = %d, want 1", fake.generateCalls)
	}
}

func TestDriverSafetyRetryOnce(t *testing.T) {
	fake := &fakeProvider{
		generate: func(call int, req GenerateRequest) (*GenerateResponse, error) {
			if call == 1 {
				return &GenerateResponse{FinishReason: "SAFETY"}, nil
			}
			// The mitigation retry must carry a reframed prompt.
			if req.Prompt == "original question" {
				return nil, fmt.Errorf("prompt was not softened")
			}
			return &GenerateResponse{Content: "safe answer", TotalTokens: 5}, nil
		},
	}
	d := newTestDriver(fake)

	resp, err := d.Generate(context.Background(), GenerateRequest{Prompt: "original question"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if resp.Content != "safe answer" {
		t.Errorf("Content = %q, want %q", resp.Content, "safe answer")
	}
	if fake.generateCalls != 2 {
		t.Errorf("generateCalls = %d, want 2", fake.generateCalls)
	}
}

func TestDriverBlockedTwiceReturnsErrBlocked(t *testing.T) {
	fake := &fakeProvider{
		generate: func(call int, req GenerateRequest) (*GenerateResponse, error) {
			return &GenerateResponse{FinishReason: "SAFETY"}, nil
		},
	}
	d := newTestDriver(fake)

	_, err := d.Generate(context.Background(), GenerateRequest{Prompt: "q"})
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("Generate() error = %v, want ErrBlocked", err)
	}
	if fake.generateCalls != 2 {
		t.Errorf("generateCalls = %d, want 2", fake.generateCalls)
	}
}

func TestDriverQuotaExhausted(t *testing.T) {
	fake := &fakeProvider{
		generate: func(call int, req GenerateRequest) (*GenerateResponse, error) {
			return &GenerateResponse{Content: "ok", TotalTokens: 96}, nil
		},
	}
	d := newTestDriver(fake)
	d.budget = newTokenBudget(100)

	// First request lands under the 95% cutoff and succeeds.
	if _, err := d.Generate(context.Background(), GenerateRequest{Prompt: "q"}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// 96 of 100 tokens used: the next request must be refused.
	_, err := d.Generate(context.Background(), GenerateRequest{Prompt: "q"})
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("Generate() error = %v, want ErrQuotaExhausted", err)
	}
	if fake.generateCalls != 1 {
		t.Errorf("generateCalls = %d, want 1", fake.generateCalls)
	}
}

func TestDriverEmbedRecordsUsage(t *testing.T) {
	fake := &fakeProvider{
		embed: func(call int, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i := range out {
				out[i] = []float32{1, 0}
			}
			return out, nil
		},
	}
	d := newTestDriver(fake)

	embeddings, err := d.Embed(context.Background(), []string{"aaaa", "bbbb"})
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	if len(embeddings) != 2 {
		t.Fatalf("got %d embeddings, want 2", len(embeddings))
	}
	if got, want := d.TokensUsed(), estimateTokens(8); got != want {
		t.Errorf("TokensUsed() = %d, want %d", got, want)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		chars int
		want  int
	}{
		{0, 0},
		{35, 12},  // ceil(1.2*35/3.5) = 12
		{100, 35}, // ceil(1.2*100/3.5) = ceil(34.28) = 35
	}
	for _, tt := range tests {
		if got := estimateTokens(tt.chars); got != tt.want {
			t.Errorf("estimateTokens(%d) = %d, want %d", tt.chars, got, tt.want)
		}
	}
}

func TestSlidingWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	var slept []time.Duration

	w := newSlidingWindow(2, 60*time.Second)
	w.now = func() time.Time { return now }
	w.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := w.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	if len(slept) != 0 {
		t.Fatalf("first two requests slept %v, want none", slept)
	}

	// Third request must wait for the first slot to leave the window.
	if err := w.Wait(ctx); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if len(slept) == 0 {
		t.Fatal("third request did not wait")
	}
	if slept[0] != 60*time.Second {
		t.Errorf("waited %v, want full window of 60s", slept[0])
	}
}

func TestTokenBudgetDailyReset(t *testing.T) {
	now := time.Date(2025, 8, 1, 23, 0, 0, 0, time.UTC)
	b := newTokenBudget(100)
	b.now = func() time.Time { return now }

	b.Record(96)
	if err := b.Check(); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("Check() = %v, want ErrQuotaExhausted", err)
	}

	now = now.Add(2 * time.Hour) // crosses UTC midnight
	if err := b.Check(); err != nil {
		t.Fatalf("Check() after rollover = %v, want nil", err)
	}
	if b.Used() != 0 {
		t.Errorf("Used() = %d after rollover, want 0", b.Used())
	}
}
