package blocklist

import (
	"sort"
	"sync"
	"time"

	"github.com/vigil-labs/vigil/internal/verdict"
)

// Entry is one blocked identifier. Re-recording the same identifier
// refreshes Reason and BlockedAt instead of duplicating the entry.
type Entry struct {
	Identifier string            `json:"identifier"`
	Kind       verdict.InputKind `json:"kind"`
	Reason     verdict.Reason    `json:"reason"`
	BlockedAt  time.Time         `json:"blocked_at"`
}

// List is the shared registry of rejected identifiers. It is safe for
// concurrent use; callers hold no lock across any I/O. Entries are never
// evicted; unbounded growth is a documented limitation of the design.
type List struct {
	mu      sync.RWMutex
	entries map[string]Entry
	clock   func() time.Time
}

// New creates an empty block list.
func New() *List {
	return &List{
		entries: make(map[string]Entry),
		clock:   time.Now,
	}
}

// Record upserts an identifier. Last writer wins on reason and timestamp.
func (l *List) Record(identifier string, kind verdict.InputKind, reason verdict.Reason) {
	now := l.clock().UTC()

	l.mu.Lock()
	l.entries[identifier] = Entry{
		Identifier: identifier,
		Kind:       kind,
		Reason:     reason,
		BlockedAt:  now,
	}
	l.mu.Unlock()
}

// Len reports the number of blocked identifiers.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Snapshot returns a consistent point-in-time copy of all entries, ordered
// by block time then identifier. Each identifier appears exactly once.
func (l *List) Snapshot() []Entry {
	l.mu.RLock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].BlockedAt.Equal(out[j].BlockedAt) {
			return out[i].BlockedAt.Before(out[j].BlockedAt)
		}
		return out[i].Identifier < out[j].Identifier
	})
	return out
}
