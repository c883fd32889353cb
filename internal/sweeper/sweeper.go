package sweeper

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/vigil-labs/vigil/internal/blocklist"
	"github.com/vigil-labs/vigil/internal/verdict"
)

// DefaultInterval is the sweep interval used when none is configured.
const DefaultInterval = 2 * time.Second

// Snapshotter is the read-only block list surface the sweeper consumes.
type Snapshotter interface {
	Snapshot() []blocklist.Entry
}

// SummaryPublisher receives one summary per non-empty sweep.
type SummaryPublisher interface {
	PublishSweepSummary(total int, byKind map[verdict.InputKind]int)
}

// Sweeper periodically scans the block list and publishes a summary alert
// when it is non-empty. It holds no state across ticks beyond the timer, and
// at most one sweep is in flight at a time: a tick that arrives while the
// previous sweep is still running is skipped and reported.
type Sweeper struct {
	list     Snapshotter
	alerts   SummaryPublisher
	interval time.Duration

	inFlight atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a Sweeper. A non-positive interval falls back to
// DefaultInterval.
func New(list Snapshotter, alerts SummaryPublisher, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		list:     list,
		alerts:   alerts,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the tick loop in a goroutine.
func (s *Sweeper) Start() {
	go s.tickLoop()
	log.Printf("sweeper: started with interval %s", s.interval)
}

// Stop cancels the tick loop. It does not wait for an in-flight sweep.
func (s *Sweeper) Stop() {
	s.cancel()
}

func (s *Sweeper) tickLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep takes one block list snapshot and publishes a summary. The in-flight
// guard keeps overlapping ticks from stacking.
func (s *Sweeper) sweep() {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Printf("sweeper: previous sweep still running, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	entries := s.list.Snapshot()
	if len(entries) == 0 {
		return
	}

	byKind := make(map[verdict.InputKind]int)
	for _, e := range entries {
		byKind[e.Kind]++
	}

	s.alerts.PublishSweepSummary(len(entries), byKind)

	if elapsed := time.Since(start); elapsed > s.interval {
		log.Printf("sweeper: sweep took %s, longer than interval %s", elapsed, s.interval)
	}
}
