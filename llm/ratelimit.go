package llm

import (
	"context"
	"sync"
	"time"
)

// slidingWindow admits at most limit requests per rolling window.
type slidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	times  []time.Time
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		limit:  limit,
		window: window,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until a request slot is available, then claims it.
func (w *slidingWindow) Wait(ctx context.Context) error {
	for {
		w.mu.Lock()
		now := w.now()
		cutoff := now.Add(-w.window)

		// Prune entries at or outside the window edge.
		i := 0
		for i < len(w.times) && !w.times[i].After(cutoff) {
			i++
		}
		w.times = w.times[i:]

		if len(w.times) < w.limit {
			w.times = append(w.times, now)
			w.mu.Unlock()
			return nil
		}

		wait := w.times[0].Add(w.window).Sub(now)
		w.mu.Unlock()

		if err := w.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// tokenBudget tracks estimated token usage against a daily cap. The budget
// refuses new work once usage reaches 95% of the cap, leaving headroom for
// in-flight requests.
type tokenBudget struct {
	mu   sync.Mutex
	max  int
	used int
	day  time.Time
	now  func() time.Time
}

func newTokenBudget(max int) *tokenBudget {
	return &tokenBudget{max: max, now: time.Now}
}

const budgetCutoff = 0.95

// Check returns ErrQuotaExhausted once usage reaches the cutoff fraction of
// the daily cap. The counter resets at UTC midnight.
func (b *tokenBudget) Check() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	if float64(b.used) >= budgetCutoff*float64(b.max) {
		return ErrQuotaExhausted
	}
	return nil
}

// Record adds n tokens to today's usage.
func (b *tokenBudget) Record(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	b.used += n
}

// Used returns today's usage.
func (b *tokenBudget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	return b.used
}

// rollover resets the counter when the UTC day changes. Caller holds the lock.
func (b *tokenBudget) rollover() {
	today := b.now().UTC().Truncate(24 * time.Hour)
	if !today.Equal(b.day) {
		b.day = today
		b.used = 0
	}
}
