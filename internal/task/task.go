package task

import (
	"sync"
	"sync/atomic"

	"github.com/fractalnow-go/fractalnow/internal/ferrors"
)

// Status is a task's terminal outcome (spec §4.6.1).
type Status int

const (
	Completed Status = iota
	Cancelled
)

func (s Status) String() string {
	if s == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// LeafRoutine is the per-worker routine of a leaf task. It must call
// Handle.CheckPoint periodically (at least once per row, or once per
// tile) so that cancellation and pause take effect, and may call
// Handle.SetProgress to report its own completion fraction.
type LeafRoutine func(h *Handle, arg any)

// Handle is what a worker routine uses to cooperate with its task.
type Handle struct {
	id  int
	ctl *control
}

// CheckPoint honours a pending pause (blocking until resumed) and
// reports whether the routine should continue (false once cancelled).
func (h *Handle) CheckPoint() bool {
	h.ctl.checkPoint()
	return !h.ctl.cancelled.Load()
}

// Cancelled reports cancellation without blocking on a pending pause.
func (h *Handle) Cancelled() bool {
	return h.ctl.cancelled.Load()
}

// SetProgress reports this worker's completion percentage, 0-100.
func (h *Handle) SetProgress(pct int) {
	h.ctl.setProgress(h.id, pct)
}

// Task is either a leaf (owns a routine run by nbThreadsNeeded workers)
// or composite (an ordered list of subtasks run to completion, one at a
// time, sharing one control so cancel/pause reach whichever subtask is
// current — spec §4.6.1, §4.6.5).
type Task struct {
	message string

	ctl     *control
	threads *Threads

	launched bool
	doneCh   chan struct{}
	result   Status

	// leaf
	isComposite     bool
	nbThreadsNeeded int
	args            []any
	routine         LeafRoutine
	freeArg         func(any)

	// composite
	subTasks       []*Task
	currentSubtask atomic.Int32
}

// NewLeaf creates a leaf task. nbThreadsNeeded must be >=1; args must
// have exactly nbThreadsNeeded entries, one per worker. freeArg may be
// nil; if set it is called once per arg after the routine returns
// (spec's "args are freed by the task runner, not the caller").
func NewLeaf(message string, nbThreadsNeeded int, args []any, routine LeafRoutine, freeArg func(any)) *Task {
	if nbThreadsNeeded < 1 {
		nbThreadsNeeded = 1
	}
	return &Task{
		message:         message,
		ctl:             newControl(),
		nbThreadsNeeded: nbThreadsNeeded,
		args:            args,
		routine:         routine,
		freeArg:         freeArg,
		doneCh:          make(chan struct{}),
	}
}

// NewComposite creates a composite task from an ordered list of
// subtasks. Subtasks must not already belong to another composite or
// have been launched individually.
func NewComposite(message string, subTasks []*Task) *Task {
	shared := newControl()
	for _, s := range subTasks {
		s.ctl = shared
	}
	return &Task{
		message:     message,
		isComposite: true,
		ctl:         shared,
		subTasks:    subTasks,
		doneCh:      make(chan struct{}),
	}
}

func resultFor(ctl *control) Status {
	if ctl.cancelled.Load() {
		return Cancelled
	}
	return Completed
}

// runLeaf spawns min(nbThreadsNeeded, pool size) worker goroutines,
// waits for them all to return, and frees args. It does not touch
// t.result/t.doneCh: the caller (Launch) owns those so that both leaf
// tasks and each subtask of a composite get exactly one close.
func (t *Task) runLeaf(threads *Threads) {
	k := t.nbThreadsNeeded
	if k > threads.T {
		k = threads.T
	}
	if k < 1 {
		k = 1
	}
	t.ctl.reset(k)

	var wg sync.WaitGroup
	wg.Add(k)
	for id := 0; id < k; id++ {
		id := id
		var arg any
		if id < len(t.args) {
			arg = t.args[id]
		}
		go func() {
			defer wg.Done()
			t.routine(&Handle{id: id, ctl: t.ctl}, arg)
		}()
	}
	wg.Wait()

	if t.freeArg != nil {
		for _, a := range t.args {
			t.freeArg(a)
		}
	}
}

func (t *Task) run(threads *Threads) {
	if t.isComposite {
		for i, sub := range t.subTasks {
			sub.runLeaf(threads)
			t.currentSubtask.Store(int32(i + 1))
			sub.result = resultFor(sub.ctl)
			close(sub.doneCh)
			if sub.result == Cancelled {
				break
			}
		}
	} else {
		t.runLeaf(threads)
	}
	t.result = resultFor(t.ctl)
	threads.release()
	close(t.doneCh)
}

// Launch starts a task on the given pool. Only one task may be in
// flight per pool at a time (spec §5); launching a second is a usage
// error, as is launching the same task twice.
func Launch(t *Task, threads *Threads) error {
	if t.launched {
		return ferrors.Usagef("task %q already launched", t.message)
	}
	if err := threads.acquire(); err != nil {
		return err
	}
	t.launched = true
	t.threads = threads
	go t.run(threads)
	return nil
}

// Result blocks until the task finishes and returns its outcome.
// Observing the result twice is safe and does not re-block. Observing
// a task that was never launched is a usage error.
func Result(t *Task) (Status, error) {
	if !t.launched {
		return 0, ferrors.Usagef("task %q: result observed before launch", t.message)
	}
	<-t.doneCh
	return t.result, nil
}

// Cancel requests cooperative cancellation. It is sticky: once set, a
// task can never resume running. Safe to call from any goroutine, at
// any point in the task's lifetime, including before launch.
func Cancel(t *Task) {
	t.ctl.cancelled.Store(true)
}

// Pause blocks until every currently-active worker has reached its next
// CheckPoint call (spec §4.6.4). A no-op if the task has already
// finished.
func Pause(t *Task) {
	select {
	case <-t.doneCh:
		return
	default:
	}
	t.ctl.pause()
}

// Resume clears a pending pause and blocks until every worker has
// observed it.
func Resume(t *Task) {
	select {
	case <-t.doneCh:
		return
	default:
	}
	t.ctl.resume()
}

// Progress returns the task's completion fraction in [0,1]. It reaches
// exactly 1 once a task completes successfully. For a composite task
// it is the mean of (completed subtasks + current subtask's own
// fraction) over the subtask count.
func Progress(t *Task) float64 {
	select {
	case <-t.doneCh:
		if t.result == Completed {
			return 1
		}
		return t.ctl.progressFrac()
	default:
	}
	if t.isComposite {
		n := len(t.subTasks)
		if n == 0 {
			return 0
		}
		cur := int(t.currentSubtask.Load())
		return (float64(cur) + t.ctl.progressFrac()) / float64(n)
	}
	return t.ctl.progressFrac()
}

// Message returns the task's human-readable description, e.g. for a
// progress bar label (spec §6.1).
func (t *Task) Message() string { return t.message }
