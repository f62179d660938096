package usage

import (
	"sync"
	"time"

	"github.com/emptyteabot/mind-os/internal/domain"
)

const dateLayout = "2006-01-02"

// Gate decides whether a client may spend one more invocation today.
// A single mutex serializes load-check-increment-save so concurrent
// requests from the same client cannot observe a partial update.
type Gate struct {
	mu    sync.Mutex
	store *Store
	limit int
	now   func() time.Time
}

// NewGate creates a quota gate over the given store with a fixed daily limit.
func NewGate(store *Store, limit int) *Gate {
	return &Gate{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

// Limit returns the daily request limit for non-pro clients.
func (g *Gate) Limit() int {
	return g.limit
}

// CheckAndIncrement spends one request for the client if allowed.
// Pro clients are always allowed and report UnlimitedRemaining. A denied
// request does not increment the stored count. Records from prior days
// are dropped, never carried forward.
func (g *Gate) CheckAndIncrement(key string) (allowed bool, remaining int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := g.now().Format(dateLayout)
	records := g.pruneStale(g.store.Load(), today)

	rec, ok := records[key]
	if !ok {
		rec = domain.UsageRecord{Date: today}
	}

	if rec.Pro {
		rec.Count++
		records[key] = rec
		g.store.Save(records)
		return true, domain.UnlimitedRemaining
	}

	if rec.Count >= g.limit {
		return false, 0
	}

	rec.Count++
	records[key] = rec
	g.store.Save(records)
	return true, g.limit - rec.Count
}

// Remaining reports how many requests the client has left today without
// spending one. An absent or stale record means the full limit.
func (g *Gate) Remaining(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.store.Load()[key]
	if !ok {
		return g.limit
	}
	if rec.Pro {
		return domain.UnlimitedRemaining
	}
	if rec.IsStale(g.now().Format(dateLayout)) {
		return g.limit
	}
	if left := g.limit - rec.Count; left > 0 {
		return left
	}
	return 0
}

// IsPro reports whether the client has the privileged flag set.
func (g *Gate) IsPro(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.store.Load()[key]
	return ok && rec.Pro
}

func (g *Gate) pruneStale(records map[string]domain.UsageRecord, today string) map[string]domain.UsageRecord {
	fresh := make(map[string]domain.UsageRecord, len(records))
	for key, rec := range records {
		if !rec.IsStale(today) {
			fresh[key] = rec
		}
	}
	return fresh
}
