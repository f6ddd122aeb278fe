// Package cache provides the answer and document caches: an in-process LRU,
// a Redis backend for shared deployments, and a no-op fallback.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is a string key-value store with per-entry TTLs. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds a cache for the configured backend: "memory", "redis", or
// "none". maxTTL bounds how long any entry may live in the memory backend.
func Open(backend, redisURL string, maxEntries int, maxTTL time.Duration) (Cache, error) {
	switch backend {
	case "memory", "":
		return NewMemory(maxEntries, maxTTL), nil
	case "redis":
		return NewRedis(redisURL)
	case "none":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", backend)
	}
}

// DocKey derives the cache key for a processed document from its URL.
func DocKey(url string) string {
	return "doc:" + hash16(url)
}

// QAKey derives the cache key for an answered question, scoped to the
// document it was asked against.
func QAKey(docID, question string) string {
	return "qa:" + hash16(docID+"\n"+question)
}

func hash16(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

// Nop satisfies Cache without storing anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error)            { return "", false, nil }
func (Nop) Set(context.Context, string, string, time.Duration) error     { return nil }
func (Nop) Delete(context.Context, string) error                         { return nil }
func (Nop) Close() error                                                 { return nil }
