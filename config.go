package hackrx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the QA pipeline.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.hackrx/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath is not
	// explicitly set. Options: "home" (default) uses ~/.hackrx/, "local"
	// uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// LLM providers
	Chat      LLMConfig `json:"chat" yaml:"chat"`
	Embedding LLMConfig `json:"embedding" yaml:"embedding"`

	// Chunking
	ChunkSize    int `json:"chunk_size" yaml:"chunk_size"`       // target characters per chunk
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"` // characters of overlap

	// Embedding
	EmbeddingDim       int `json:"embedding_dim" yaml:"embedding_dim"` // must match model
	EmbeddingBatchSize int `json:"embedding_batch_size" yaml:"embedding_batch_size"`

	// Retrieval
	MaxQueryVariations int `json:"max_query_variations" yaml:"max_query_variations"`
	MaxContextChunks   int `json:"max_context_chunks" yaml:"max_context_chunks"`

	// LLM budgets
	LLMRateLimit   int `json:"llm_rate_limit" yaml:"llm_rate_limit"`     // requests per sliding 60s window
	MaxDailyTokens int `json:"max_daily_tokens" yaml:"max_daily_tokens"` // estimated tokens per day

	// Orchestration
	ConcurrentQuestions int `json:"concurrent_questions" yaml:"concurrent_questions"`

	// Caching
	Cache       CacheConfig   `json:"cache" yaml:"cache"`
	DocCacheTTL time.Duration `json:"doc_cache_ttl" yaml:"doc_cache_ttl"`
	QACacheTTL  time.Duration `json:"qa_cache_ttl" yaml:"qa_cache_ttl"`
}

// LLMConfig configures a single LLM provider endpoint.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // gemini, openai, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// CacheConfig selects and configures the answer/document cache backend.
type CacheConfig struct {
	// Backend is "memory" (default), "redis", or "none".
	Backend  string `json:"backend" yaml:"backend"`
	RedisURL string `json:"redis_url" yaml:"redis_url"`
	// MaxEntries bounds the in-memory cache (ignored for redis).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// DefaultConfig returns a Config with the documented defaults.
// Database is stored in ~/.hackrx/hackrx.db by default.
func DefaultConfig() Config {
	return Config{
		DBName:     "hackrx",
		StorageDir: "home",
		Chat: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Embedding: LLMConfig{
			Provider: "gemini",
			Model:    "text-embedding-004",
		},
		ChunkSize:           1200,
		ChunkOverlap:        250,
		EmbeddingDim:        384,
		EmbeddingBatchSize:  32,
		MaxQueryVariations:  20,
		MaxContextChunks:    5,
		LLMRateLimit:        15,
		MaxDailyTokens:      1_000_000,
		ConcurrentQuestions: 3,
		Cache:               CacheConfig{Backend: "memory", MaxEntries: 4096},
		DocCacheTTL:         7200 * time.Second,
		QACacheTTL:          3600 * time.Second,
	}
}

// LoadConfig reads a YAML or JSON config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default: // .yaml, .yml
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "hackrx"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		return filepath.Join(home, ".hackrx", name+".db")
	}
}
