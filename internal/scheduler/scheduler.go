// Package scheduler runs callbacks on the simulation tick. All callbacks
// execute on the goroutine driving the scheduler, never concurrently with
// each other.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/emberforge/rpgcore/internal/domain/game"
)

// Task is a handle returned by RunLater and RunEvery
type Task struct {
	fn        func()
	due       int64
	period    int64 // 0 for one-shot tasks
	cancelled bool
	index     int

	s *Scheduler
}

// Cancel stops the task. Safe to call from inside the task's own callback
// and safe to call more than once.
func (t *Task) Cancel() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.cancelled = true
}

// Scheduler orders tasks by due tick
type Scheduler struct {
	mu    sync.Mutex
	now   int64
	queue taskQueue
}

// New creates an empty scheduler at tick zero
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current tick
func (s *Scheduler) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// RunLater schedules fn once after delayTicks. A delay below one tick runs
// on the next tick.
func (s *Scheduler) RunLater(delayTicks int, fn func()) *Task {
	return s.schedule(delayTicks, 0, fn)
}

// RunEvery schedules fn after delayTicks and then every periodTicks until
// cancelled. A period below one tick runs every tick.
func (s *Scheduler) RunEvery(delayTicks, periodTicks int, fn func()) *Task {
	if periodTicks < 1 {
		periodTicks = 1
	}
	return s.schedule(delayTicks, int64(periodTicks), fn)
}

func (s *Scheduler) schedule(delayTicks int, period int64, fn func()) *Task {
	if delayTicks < 1 {
		delayTicks = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{
		fn:     fn,
		due:    s.now + int64(delayTicks),
		period: period,
		s:      s,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance steps the clock by n ticks, firing every task that comes due.
// Tests drive this directly; Run drives it from a wall-clock ticker.
func (s *Scheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		s.tick()
	}
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	s.now++

	var due []*Task
	for len(s.queue) > 0 && s.queue[0].due <= s.now {
		t := heap.Pop(&s.queue).(*Task)
		if t.cancelled {
			continue
		}
		due = append(due, t)
	}
	s.mu.Unlock()

	// Callbacks run unlocked so they can schedule and cancel freely
	for _, t := range due {
		t.fn()
	}

	s.mu.Lock()
	for _, t := range due {
		if t.period > 0 && !t.cancelled {
			t.due = s.now + t.period
			heap.Push(&s.queue, t)
		}
	}
	s.mu.Unlock()
}

// Run drives the scheduler from a wall-clock ticker until the context is
// cancelled. One call per scheduler; the tick callbacks all run here.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(game.TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// taskQueue is a min-heap ordered by due tick
type taskQueue []*Task

func (q taskQueue) Len() int           { return len(q) }
func (q taskQueue) Less(i, j int) bool { return q[i].due < q[j].due }
func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
