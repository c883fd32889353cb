package blocklist

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vigil-labs/vigil/internal/verdict"
)

func TestList_RecordAndSnapshot(t *testing.T) {
	l := New()

	l.Record("a@b.com", verdict.InputEmail, verdict.ReasonKnownLeak)
	l.Record("5551234567", verdict.InputPhone, verdict.ReasonSpamNumber)

	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}

	snap := l.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected snapshot of 2, got %d", len(snap))
	}
	for _, e := range snap {
		if e.BlockedAt.IsZero() {
			t.Errorf("entry %s has zero timestamp", e.Identifier)
		}
	}
}

func TestList_RecordIsIdempotentUpsert(t *testing.T) {
	l := New()

	// Deterministic clock so the refresh is observable.
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }

	l.Record("a@b.com", verdict.InputEmail, verdict.ReasonBadFormat)

	now = now.Add(time.Minute)
	l.Record("a@b.com", verdict.InputEmail, verdict.ReasonKnownLeak)

	if l.Len() != 1 {
		t.Fatalf("re-recording duplicated the entry: %d entries", l.Len())
	}

	snap := l.Snapshot()
	if snap[0].Reason != verdict.ReasonKnownLeak {
		t.Errorf("expected refreshed reason known_leak, got %s", snap[0].Reason)
	}
	if !snap[0].BlockedAt.Equal(now) {
		t.Errorf("expected refreshed timestamp %s, got %s", now, snap[0].BlockedAt)
	}
}

func TestList_SnapshotIsOrderedAndStable(t *testing.T) {
	l := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	l.clock = func() time.Time { i++; return base.Add(time.Duration(i) * time.Second) }

	l.Record("c", verdict.InputURL, verdict.ReasonOracleMatch)
	l.Record("a", verdict.InputURL, verdict.ReasonOracleMatch)
	l.Record("b", verdict.InputURL, verdict.ReasonOracleMatch)

	snap := l.Snapshot()
	want := []string{"c", "a", "b"} // block-time order
	for idx, e := range snap {
		if e.Identifier != want[idx] {
			t.Fatalf("snapshot order %v, want %v", identifiers(snap), want)
		}
	}

	// Mutating the snapshot must not affect the list.
	snap[0].Identifier = "mutated"
	if l.Snapshot()[0].Identifier != "c" {
		t.Error("snapshot is not a copy")
	}
}

func TestList_ConcurrentRecordsNoLostUpdates(t *testing.T) {
	l := New()

	const n = 128
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			l.Record(fmt.Sprintf("id-%d", i), verdict.InputEmail, verdict.ReasonBadFormat)
		}(i)
	}
	wg.Wait()

	if l.Len() != n {
		t.Fatalf("expected %d entries, got %d", n, l.Len())
	}
}

func TestList_ConcurrentSnapshotDuringWrites(t *testing.T) {
	l := New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			l.Record(fmt.Sprintf("w-%d", i), verdict.InputPhone, verdict.ReasonSpamNumber)
		}
	}()

	// Snapshots taken while writing must never contain duplicates.
	for i := 0; i < 50; i++ {
		seen := make(map[string]bool)
		for _, e := range l.Snapshot() {
			if seen[e.Identifier] {
				t.Fatalf("identifier %s appears twice in snapshot", e.Identifier)
			}
			seen[e.Identifier] = true
		}
	}
	<-done
}

func identifiers(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Identifier
	}
	return out
}
