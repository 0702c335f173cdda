// Package task implements spec §4.6 and §5: a worker pool of T threads
// (here, goroutines — Go's OS-thread-multiplexed equivalent of the
// spec's "T worker threads") executing leaf and composite tasks with
// cooperative cancellation, synchronous pause/resume rendezvous, and
// per-worker progress reporting.
package task

import (
	"sync"
	"sync/atomic"
)

// control is the barrier/cancel/pause/progress state for one task. A
// composite task shares a single control across itself and every
// subtask (control.reset is called once per subtask launch), which is
// what makes Cancel/Pause on the composite affect whichever
// subtask is currently running, and every subtask not yet reached.
type control struct {
	cancelled atomic.Bool

	mu        sync.Mutex
	cond      *sync.Cond
	paused    bool
	nbActive  int
	nbAtPause int
	progress  []atomic.Int32
}

func newControl() *control {
	c := &control{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// reset prepares the control for a new (sub)task with nbActive real
// workers. Called once, from the orchestrating goroutine, before that
// (sub)task's worker goroutines are spawned — never concurrently with
// checkPoint/pause/resume on the previous (sub)task, since those only
// run while workers from that (sub)task are alive and the barrier in
// run() guarantees they have all exited by the time reset is called.
func (c *control) reset(nbActive int) {
	c.mu.Lock()
	c.nbActive = nbActive
	c.nbAtPause = 0
	c.progress = make([]atomic.Int32, nbActive)
	c.mu.Unlock()
}

// checkPoint is the "at least once per row/tile" cooperative check a
// worker routine calls periodically (spec §4.6.2). If paused, it blocks
// until resumed, counting itself in and out of the pause rendezvous.
func (c *control) checkPoint() {
	c.mu.Lock()
	if c.paused {
		c.nbAtPause++
		if c.nbAtPause == c.nbActive {
			c.cond.Broadcast()
		}
		for c.paused {
			c.cond.Wait()
		}
		c.nbAtPause--
		if c.nbAtPause == 0 {
			c.cond.Broadcast()
		}
	}
	c.mu.Unlock()
}

// pause is synchronous: it blocks until every active worker has reached
// its next checkPoint (spec §4.6.4).
func (c *control) pause() {
	c.mu.Lock()
	c.paused = true
	for c.nbAtPause < c.nbActive {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// resume clears the pause flag and blocks until every worker has
// observed the change (spec §4.6.4).
func (c *control) resume() {
	c.mu.Lock()
	c.paused = false
	c.cond.Broadcast()
	for c.nbAtPause > 0 {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

func (c *control) setProgress(id, pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	c.mu.Lock()
	n := len(c.progress)
	c.mu.Unlock()
	if id < 0 || id >= n {
		return
	}
	c.progress[id].Store(int32(pct))
}

// progressFrac returns the mean of the active workers' progress, in
// [0,1].
func (c *control) progressFrac() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.nbActive
	if n == 0 {
		return 0
	}
	var sum int32
	for i := 0; i < n; i++ {
		sum += c.progress[i].Load()
	}
	return float64(sum) / float64(n) / 100.0
}
