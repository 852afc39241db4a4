package adventure

import (
	"container/heap"
	"time"
)

// TimerKind names one of the run's timed effects. A Scheduler holds at most
// one timer per kind; arming a kind again replaces the pending timer.
type TimerKind int

const (
	TimerCooldown TimerKind = iota
	TimerManaRegen
	TimerPatrol
	TimerTrapWarning
	TimerDeathReset
)

func (k TimerKind) String() string {
	switch k {
	case TimerCooldown:
		return "cooldown"
	case TimerManaRegen:
		return "mana_regen"
	case TimerPatrol:
		return "patrol"
	case TimerTrapWarning:
		return "trap_warning"
	case TimerDeathReset:
		return "death_reset"
	default:
		return "unknown"
	}
}

type timer struct {
	seq      uint64
	kind     TimerKind
	due      time.Duration
	interval time.Duration // 0 for one-shot timers
	fn       func()
	index    int
}

// Scheduler runs cancellable one-shot and repeating timers against a virtual
// clock. Time only moves when Advance is called, so every callback runs on
// the caller's goroutine, to completion, in due order.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	queue  timerQueue
	byKind map[TimerKind]*timer
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{byKind: make(map[TimerKind]*timer)}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After arms a one-shot timer that fires once, d from now.
func (s *Scheduler) After(kind TimerKind, d time.Duration, fn func()) {
	s.arm(kind, d, 0, fn)
}

// Every arms a repeating timer that first fires d from now, then every d.
func (s *Scheduler) Every(kind TimerKind, d time.Duration, fn func()) {
	if d <= 0 {
		return
	}
	s.arm(kind, d, d, fn)
}

func (s *Scheduler) arm(kind TimerKind, d, interval time.Duration, fn func()) {
	s.Cancel(kind)
	s.seq++
	t := &timer{
		seq:      s.seq,
		kind:     kind,
		due:      s.now + d,
		interval: interval,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.byKind[kind] = t
}

// Cancel removes the pending timer of the given kind, if any.
func (s *Scheduler) Cancel(kind TimerKind) {
	t, ok := s.byKind[kind]
	if !ok {
		return
	}
	heap.Remove(&s.queue, t.index)
	delete(s.byKind, kind)
}

// CancelAll removes every pending timer.
func (s *Scheduler) CancelAll() {
	s.queue = s.queue[:0]
	clear(s.byKind)
}

// Active reports whether a timer of the given kind is pending.
func (s *Scheduler) Active(kind TimerKind) bool {
	_, ok := s.byKind[kind]
	return ok
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves the clock forward by dt, firing every timer that falls due.
// Callbacks may arm or cancel timers, including their own kind.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt

	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := s.queue[0]
		s.now = t.due

		if t.interval > 0 {
			// Reschedule before the callback so it can cancel itself.
			t.due += t.interval
			heap.Fix(&s.queue, t.index)
		} else {
			heap.Pop(&s.queue)
			delete(s.byKind, t.kind)
		}

		t.fn()
	}

	s.now = target
}

// timerQueue is a min-heap ordered by due time, then arming order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
