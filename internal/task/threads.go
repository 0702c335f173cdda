package task

import (
	"runtime"
	"sync/atomic"

	"github.com/fractalnow-go/fractalnow/internal/ferrors"
)

// Threads is a pool sized at creation time (spec §5: "the pool size T is
// fixed at startup"). Exactly one task may be in flight against a pool
// at a time; Launch enforces this.
type Threads struct {
	T    int
	busy atomic.Bool
}

// New creates a pool of n worker slots. n<=0 defaults to the number of
// logical CPUs (spec's DEFAULT_NB_THREADS equivalent).
func New(n int) *Threads {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &Threads{T: n}
}

// Count returns the pool's worker capacity.
func (p *Threads) Count() int { return p.T }

func (p *Threads) acquire() error {
	if !p.busy.CompareAndSwap(false, true) {
		return ferrors.Usagef("threads: a task is already in flight on this pool")
	}
	return nil
}

func (p *Threads) release() {
	p.busy.Store(false)
}
