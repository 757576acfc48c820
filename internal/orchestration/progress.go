package orchestration

import (
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/platform"
)

// ProgressRefreshRate is how often running operations are sampled.
const ProgressRefreshRate = 100 * time.Millisecond

// ProgressUpdate is a periodic snapshot of the running operations. The
// kernel has no notion of a completed fraction, so progress is reported as
// the number of interrupt polls, which grows with the work done.
type ProgressUpdate struct {
	// Label names what is running, e.g. "mul" or "compare (5 strategies)".
	Label string
	// Running is the number of operations still in flight.
	Running int
	// Polls is the total poll count across all operations so far.
	Polls uint64
	// Elapsed is the time since the operations started.
	Elapsed time.Duration
	// Operations holds one entry per operation, in request order.
	Operations []OperationProgress
}

// OperationProgress is the activity of one operation within an update.
type OperationProgress struct {
	Strategy string
	Polls    uint64
	Done     bool
}

// pollTracker follows the platforms of concurrent operations. Slots are
// fixed up front so that updates list operations in request order.
type pollTracker struct {
	mu    sync.Mutex
	slots []trackedOp
}

type trackedOp struct {
	strategy string
	plat     *platform.ContextPlatform
	done     bool
}

func newPollTracker(reqs []Request) *pollTracker {
	t := &pollTracker{slots: make([]trackedOp, len(reqs))}
	for i, req := range reqs {
		t.slots[i].strategy = req.Strategy.String()
	}
	return t
}

func (t *pollTracker) start(slot int, p *platform.ContextPlatform) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.slots[slot].plat = p
	t.mu.Unlock()
}

func (t *pollTracker) finish(slot int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.slots[slot].done = true
	t.mu.Unlock()
}

func (t *pollTracker) snapshot() (running int, polls uint64, ops []OperationProgress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ops = make([]OperationProgress, len(t.slots))
	for i, s := range t.slots {
		ops[i] = OperationProgress{Strategy: s.strategy, Done: s.done}
		if s.plat != nil {
			ops[i].Polls = s.plat.Polled()
		}
		if !s.done {
			running++
		}
		polls += ops[i].Polls
	}
	return running, polls, ops
}

// sample sends an update every ProgressRefreshRate until done is closed,
// then sends a final update and closes updates. Periodic sends never
// block: a slow reporter misses samples. The final update always arrives.
func (t *pollTracker) sample(label string, updates chan<- ProgressUpdate, done <-chan struct{}) {
	defer close(updates)
	start := time.Now()
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	current := func() ProgressUpdate {
		running, polls, ops := t.snapshot()
		return ProgressUpdate{Label: label, Running: running, Polls: polls, Elapsed: time.Since(start), Operations: ops}
	}
	for {
		select {
		case <-done:
			updates <- current()
			return
		case <-ticker.C:
			select {
			case updates <- current():
			default:
			}
		}
	}
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(updates <-chan ProgressUpdate) {
	for range updates {
	}
}
