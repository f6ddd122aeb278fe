package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry struct {
	value   string
	expires time.Time
}

// Memory is an in-process LRU cache. The underlying expirable LRU enforces
// the cap and an upper-bound TTL; per-entry TTLs shorter than the bound are
// checked on read.
type Memory struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

func NewMemory(maxEntries int, maxTTL time.Duration) *Memory {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if maxTTL <= 0 {
		maxTTL = 2 * time.Hour
	}
	return &Memory{
		lru: expirable.NewLRU[string, entry](maxEntries, nil, maxTTL),
		now: time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return "", false, nil
	}
	if m.now().After(e.expires) {
		m.lru.Remove(key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.lru.Add(key, entry{value: value, expires: m.now().Add(ttl)})
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
