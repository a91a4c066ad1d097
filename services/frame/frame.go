// Package frame coalesces bursts of layout triggers into a single pass on the
// next scheduler tick.
package frame

import (
	"sync"
	"time"
)

// DefaultInterval approximates one display frame
const DefaultInterval = 16 * time.Millisecond

// Scheduler runs a callback on its next tick. The returned cancel func
// prevents the callback from running if it has not started yet.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// TimerScheduler schedules callbacks with time.AfterFunc
type TimerScheduler struct {
	interval time.Duration
}

// NewTimerScheduler creates a scheduler firing after interval
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &TimerScheduler{interval: interval}
}

// Schedule implements Scheduler
func (s *TimerScheduler) Schedule(fn func()) func() {
	t := time.AfterFunc(s.interval, fn)
	return func() { t.Stop() }
}

// ManualScheduler queues callbacks until Flush is called. Used by tests and by
// hosts that drive their own frame loop.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func()
	order   []int
}

// NewManualScheduler creates an empty manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]func())}
}

// Schedule implements Scheduler
func (s *ManualScheduler) Schedule(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.pending[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// Len returns the number of callbacks still waiting
func (s *ManualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush runs every callback queued before the call, in scheduling order.
// Callbacks scheduled while flushing wait for the next Flush.
func (s *ManualScheduler) Flush() int {
	s.mu.Lock()
	order := s.order
	s.order = nil
	var fns []func()
	for _, id := range order {
		if fn, ok := s.pending[id]; ok {
			fns = append(fns, fn)
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Coalescer keeps at most one pending callback on a scheduler. Every Request
// replaces the pending one, so a burst of requests results in one run.
type Coalescer struct {
	mu        sync.Mutex
	scheduler Scheduler
	fn        func()
	cancel    func()
	seq       uint64
}

// NewCoalescer binds fn to the scheduler
func NewCoalescer(s Scheduler, fn func()) *Coalescer {
	return &Coalescer{scheduler: s, fn: fn}
}

// Request cancels any pending run and schedules a new one
func (c *Coalescer) Request() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	c.cancel = c.scheduler.Schedule(func() { c.fire(seq) })
}

// Pending reports whether a run is scheduled
func (c *Coalescer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Cancel drops the pending run, if any
func (c *Coalescer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
}

func (c *Coalescer) fire(seq uint64) {
	c.mu.Lock()
	// A stale timer that lost the race with Request/Cancel must not run
	if seq != c.seq || c.cancel == nil {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.mu.Unlock()

	c.fn()
}
