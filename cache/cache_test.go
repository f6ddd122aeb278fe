package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory(16, time.Hour)
	ctx := context.Background()

	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Errorf("Get() on empty cache reported a hit")
	}
	if err := m.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Errorf("Get() = %q, %v, %v, want v, true, nil", got, ok, err)
	}
}

func TestMemoryPerEntryTTL(t *testing.T) {
	m := NewMemory(16, time.Hour)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "k", "v", 30*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	now = now.Add(29 * time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Errorf("entry expired before its TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Errorf("entry survived past its TTL")
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory(16, time.Hour)
	ctx := context.Background()

	m.Set(ctx, "k", "v", time.Minute)
	m.Delete(ctx, "k")
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Errorf("Get() after Delete() reported a hit")
	}
}

func TestMemoryEvictsAtCapacity(t *testing.T) {
	m := NewMemory(2, time.Hour)
	ctx := context.Background()

	m.Set(ctx, "a", "1", time.Minute)
	m.Set(ctx, "b", "2", time.Minute)
	m.Set(ctx, "c", "3", time.Minute)

	hits := 0
	for _, k := range []string{"a", "b", "c"} {
		if _, ok, _ := m.Get(ctx, k); ok {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("cache holds %d entries, want 2 at capacity", hits)
	}
}

func TestRedisCache(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := NewRedis(fmt.Sprintf("redis://%s", s.Addr()))
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Errorf("Get() on empty redis reported a hit")
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Errorf("Get() = %q, %v, %v, want v, true, nil", got, ok, err)
	}

	s.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Errorf("entry survived TTL after FastForward")
	}

	c.Set(ctx, "k2", "v2", time.Minute)
	c.Delete(ctx, "k2")
	if _, ok, _ := c.Get(ctx, "k2"); ok {
		t.Errorf("Get() after Delete() reported a hit")
	}
}

func TestOpenBackends(t *testing.T) {
	if c, err := Open("memory", "", 16, time.Hour); err != nil || c == nil {
		t.Errorf("Open(memory) = %v, %v", c, err)
	}
	if c, err := Open("none", "", 0, 0); err != nil || c == nil {
		t.Errorf("Open(none) = %v, %v", c, err)
	}
	if _, err := Open("bogus", "", 0, 0); err == nil {
		t.Errorf("Open(bogus) error = nil, want error")
	}
}

func TestKeys(t *testing.T) {
	dk := DocKey("https://example.com/policy.pdf")
	if !strings.HasPrefix(dk, "doc:") || len(dk) != len("doc:")+16 {
		t.Errorf("DocKey() = %q, want doc: prefix and 16 hex chars", dk)
	}
	if dk != DocKey("https://example.com/policy.pdf") {
		t.Errorf("DocKey() is not deterministic")
	}

	qk := QAKey("abc123", "What is the grace period?")
	if !strings.HasPrefix(qk, "qa:") || len(qk) != len("qa:")+16 {
		t.Errorf("QAKey() = %q, want qa: prefix and 16 hex chars", qk)
	}
	if qk == QAKey("abc123", "What is the waiting period?") {
		t.Errorf("QAKey() collides across different questions")
	}
	if qk == QAKey("other", "What is the grace period?") {
		t.Errorf("QAKey() collides across different documents")
	}
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Errorf("Nop cache reported a hit")
	}
}
