// Package llm provides chat-generation and embedding providers plus the
// Driver that enforces rate limits, token budgets, and retry policy on top
// of them.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Errors surfaced by providers and the Driver.
var (
	// ErrBlocked is returned when the model refuses to answer because of a
	// safety filter, after the mitigation retry has also been blocked.
	ErrBlocked = errors.New("llm: response blocked by safety filter")

	// ErrQuotaExhausted is returned when the daily token budget is spent.
	ErrQuotaExhausted = errors.New("llm: daily token quota exhausted")
)

// Provider is the interface for LLM interactions.
type Provider interface {
	// Generate sends a single-turn generation request.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Embed generates embeddings for a batch of texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerateRequest is a single-turn generation request.
type GenerateRequest struct {
	Model  string           `json:"model"`
	System string           `json:"system,omitempty"`
	Prompt string           `json:"prompt"`
	Config GenerationConfig `json:"config"`
}

// GenerationConfig controls decoding. Zero values mean provider defaults.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"top_p,omitempty"`
	TopK            int     `json:"top_k,omitempty"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
}

// GenerateResponse is the response from a generation request.
type GenerateResponse struct {
	Content          string `json:"content"`
	Model            string `json:"model"`
	FinishReason     string `json:"finish_reason"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
}

// Blocked reports whether the response was cut off by a safety filter.
func (r *GenerateResponse) Blocked() bool {
	switch r.FinishReason {
	case "SAFETY", "safety", "content_filter":
		return true
	}
	return false
}

// Config configures an LLM provider endpoint.
type Config struct {
	Provider string `json:"provider"` // gemini, openai, custom
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
	APIKey   string `json:"api_key"`
}

// NewProvider creates an LLM provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg), nil
	case "openai":
		return NewOpenAI(cfg), nil
	case "custom":
		return NewOpenAICompat(cfg), nil
	case "":
		return nil, fmt.Errorf("llm provider not specified")
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
