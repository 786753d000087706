package dedup

import (
	"sync"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

// Deduplicator remembers the identity keys it has seen. Claim is atomic per
// key, so concurrent producers never both treat a key as first seen.
type Deduplicator struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func New() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Claim reports whether the record is the first with its key. Records without
// a complete key are always claimed.
func (d *Deduplicator) Claim(r model.UsageRecord) bool {
	key, ok := r.DedupKey()
	if !ok {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Filter returns the first-seen records, preserving their relative order.
func (d *Deduplicator) Filter(records []model.UsageRecord) []model.UsageRecord {
	return lo.Filter(records, func(r model.UsageRecord, _ int) bool {
		return d.Claim(r)
	})
}

// Len returns the number of distinct keys seen
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
