package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// DriverConfig controls the policy the Driver enforces around a Provider.
type DriverConfig struct {
	RateLimit      int           // requests per sliding window
	RateWindow     time.Duration // sliding window size
	MaxDailyTokens int           // estimated tokens per UTC day
	MaxAttempts    int           // total request attempts
	MinBackoff     time.Duration
	MaxBackoff     time.Duration
}

// DefaultDriverConfig returns the production policy: 15 requests per 60s,
// one million tokens per day, 4 attempts with 2-15s exponential backoff.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		RateLimit:      15,
		RateWindow:     60 * time.Second,
		MaxDailyTokens: 1_000_000,
		MaxAttempts:    4,
		MinBackoff:     2 * time.Second,
		MaxBackoff:     15 * time.Second,
	}
}

// Driver wraps a Provider with rate limiting, a daily token budget, retry
// with exponential backoff, and safety-block mitigation. All generation and
// embedding traffic should flow through a Driver so the policy is applied
// exactly once.
type Driver struct {
	provider Provider
	limiter  *slidingWindow
	budget   *tokenBudget
	cfg      DriverConfig
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewDriver wraps provider with the given policy. Zero-value config fields
// fall back to DefaultDriverConfig.
func NewDriver(provider Provider, cfg DriverConfig) *Driver {
	def := DefaultDriverConfig()
	if cfg.RateLimit == 0 {
		cfg.RateLimit = def.RateLimit
	}
	if cfg.RateWindow == 0 {
		cfg.RateWindow = def.RateWindow
	}
	if cfg.MaxDailyTokens == 0 {
		cfg.MaxDailyTokens = def.MaxDailyTokens
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.MinBackoff == 0 {
		cfg.MinBackoff = def.MinBackoff
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	return &Driver{
		provider: provider,
		limiter:  newSlidingWindow(cfg.RateLimit, cfg.RateWindow),
		budget:   newTokenBudget(cfg.MaxDailyTokens),
		cfg:      cfg,
		sleep:    sleepCtx,
	}
}

// TokensUsed returns today's estimated token usage.
func (d *Driver) TokensUsed() int {
	return d.budget.Used()
}

// Generate runs a generation request under the Driver's policy. A response
// blocked by the safety filter gets exactly one mitigation retry with a
// softened prompt; a second block returns ErrBlocked.
func (d *Driver) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := d.budget.Check(); err != nil {
		return nil, err
	}

	safetyRetried := false
	var lastErr error

	for attempt := 0; attempt < d.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := d.backoff(attempt)
			slog.Warn("llm: retrying generation", "attempt", attempt, "delay", delay, "error", lastErr)
			if err := d.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := d.provider.Generate(ctx, req)
		if err != nil {
			if !IsRetryable(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if resp.Blocked() {
			if safetyRetried {
				return nil, ErrBlocked
			}
			safetyRetried = true
			req.Prompt = softenPrompt(req.Prompt)
			slog.Warn("llm: response blocked, retrying with softened prompt")
			// The mitigation retry does not consume a backoff attempt.
			attempt--
			continue
		}

		d.budget.Record(usedTokens(req.Prompt, resp))
		return resp, nil
	}

	return nil, fmt.Errorf("llm: max attempts exceeded: %w", lastErr)
}

// Embed runs an embedding request under the Driver's policy.
func (d *Driver) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := d.budget.Check(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < d.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := d.backoff(attempt)
			slog.Warn("llm: retrying embedding", "attempt", attempt, "delay", delay, "error", lastErr)
			if err := d.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		embeddings, err := d.provider.Embed(ctx, texts)
		if err != nil {
			if !IsRetryable(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		total := 0
		for _, t := range texts {
			total += len(t)
		}
		d.budget.Record(estimateTokens(total))
		return embeddings, nil
	}

	return nil, fmt.Errorf("llm: max attempts exceeded: %w", lastErr)
}

// backoff returns the delay before the given retry attempt, doubling from
// MinBackoff and capped at MaxBackoff.
func (d *Driver) backoff(attempt int) time.Duration {
	delay := d.cfg.MinBackoff << (attempt - 1)
	if delay > d.cfg.MaxBackoff || delay <= 0 {
		delay = d.cfg.MaxBackoff
	}
	return delay
}

// usedTokens prefers the provider's reported usage and falls back to the
// character-based estimate.
func usedTokens(prompt string, resp *GenerateResponse) int {
	if resp.TotalTokens > 0 {
		return resp.TotalTokens
	}
	return estimateTokens(len(prompt) + len(resp.Content))
}

// estimateTokens approximates token usage from a character count, padding by
// 20% over the usual 3.5 chars-per-token heuristic to stay conservative.
func estimateTokens(chars int) int {
	return int(math.Ceil(1.2 * float64(chars) / 3.5))
}

// softenPrompt reframes a prompt that tripped the safety filter as a neutral
// document-comprehension task.
func softenPrompt(prompt string) string {
	var b strings.Builder
	b.WriteString("This is a factual question about the contents of an insurance policy document. ")
	b.WriteString("Answer using only the document text provided.\n\n")
	b.WriteString(prompt)
	return b.String()
}
