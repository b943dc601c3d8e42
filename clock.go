package openlime

import (
	"sync"
	"time"
)

// Clock supplies the current time in milliseconds. All timestamps handled by
// the PointerManager and Camera are read from the same Clock.
type Clock interface {
	Now() float64
}

// SystemClock reads the wall clock as milliseconds since its first use.
type SystemClock struct {
	once  sync.Once
	start time.Time
}

// Now returns milliseconds elapsed since the first call.
func (c *SystemClock) Now() float64 {
	c.once.Do(func() { c.start = time.Now() })
	return float64(time.Since(c.start).Nanoseconds()) / 1e6
}

// ManualClock is a Clock that only moves when told to. Tests and input
// scripts use it to drive timers deterministically.
type ManualClock struct {
	now float64
}

// NewManualClock returns a ManualClock reading start.
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 { return c.now }

// Set moves the clock to t. Moving backwards is ignored.
func (c *ManualClock) Set(t float64) {
	if t > c.now {
		c.now = t
	}
}

// Advance moves the clock forward by ms.
func (c *ManualClock) Advance(ms float64) {
	if ms > 0 {
		c.now += ms
	}
}

// timer is a single cancellable deadline. It does not run on its own: the
// owner polls due and fires it.
type timer struct {
	deadline float64
	armed    bool
}

func (t *timer) arm(now, delay float64) {
	t.deadline = now + delay
	t.armed = true
}

func (t *timer) cancel() {
	t.armed = false
}

func (t *timer) due(now float64) bool {
	return t.armed && now >= t.deadline
}

// Interval is a periodic callback fired from PointerManager.Update.
type Interval struct {
	period  float64
	next    float64
	fn      func(now float64)
	stopped bool
}

// Stop prevents any further calls. Safe to call from inside the callback.
func (iv *Interval) Stop() {
	if iv != nil {
		iv.stopped = true
	}
}

// Stopped reports whether Stop has been called.
func (iv *Interval) Stopped() bool {
	return iv == nil || iv.stopped
}

// scheduler owns the intervals registered with Every.
type scheduler struct {
	intervals []*Interval
}

func (s *scheduler) add(now, period float64, fn func(now float64)) *Interval {
	if period <= 0 {
		period = 1
	}
	iv := &Interval{period: period, next: now + period, fn: fn}
	s.intervals = append(s.intervals, iv)
	return iv
}

// run calls every due interval at most once and drops stopped ones.
func (s *scheduler) run(now float64) {
	if len(s.intervals) == 0 {
		return
	}
	pending := append([]*Interval(nil), s.intervals...)
	for _, iv := range pending {
		if iv.stopped || now < iv.next {
			continue
		}
		iv.fn(now)
		for iv.next <= now {
			iv.next += iv.period
		}
	}
	live := s.intervals[:0]
	for _, iv := range s.intervals {
		if !iv.stopped {
			live = append(live, iv)
		}
	}
	for i := len(live); i < len(s.intervals); i++ {
		s.intervals[i] = nil
	}
	s.intervals = live
}
