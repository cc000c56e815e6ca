package core

import (
	"sort"
	"time"
)

// Timer is a handle to scheduled work. Stop cancels any future firing and
// is safe to call more than once, including from inside the callback.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks after a delay or at a fixed interval. Callbacks
// run on the caller's single logical thread, never concurrently with input
// handling.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// TimerGroup owns the timers acquired by one level. StopAll releases every
// handle so no callback can fire into a torn-down level.
type TimerGroup struct {
	timers []Timer
}

// Add takes ownership of t and returns it.
func (g *TimerGroup) Add(t Timer) Timer {
	g.timers = append(g.timers, t)
	return t
}

// Replace stops old and puts t in its slot. If old is not owned, t is
// added instead. The group never holds a handle it has replaced.
func (g *TimerGroup) Replace(old, t Timer) Timer {
	if old != nil {
		old.Stop()
		for i, owned := range g.timers {
			if owned == old {
				g.timers[i] = t
				return t
			}
		}
	}
	return g.Add(t)
}

// StopAll stops and forgets every owned timer.
func (g *TimerGroup) StopAll() {
	for _, t := range g.timers {
		t.Stop()
	}
	g.timers = nil
}

// Len returns the number of owned timers.
func (g *TimerGroup) Len() int {
	return len(g.timers)
}

// ManualScheduler is a deterministic Scheduler driven by Advance.
// It is used by tests and by headless playback.
type ManualScheduler struct {
	now    time.Duration
	nextID int
	timers []*manualTimer
}

type manualTimer struct {
	id      int
	due     time.Duration
	period  time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Now returns the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// After schedules fn once, d from now.
func (s *ManualScheduler) After(d time.Duration, fn func()) Timer {
	return s.add(d, 0, fn)
}

// Every schedules fn every d, first firing d from now.
func (s *ManualScheduler) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *ManualScheduler) add(d, period time.Duration, fn func()) Timer {
	s.nextID++
	t := &manualTimer{id: s.nextID, due: s.now + d, period: period, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Active returns the number of timers that can still fire.
func (s *ManualScheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing due callbacks in order
// of due time (ties broken by creation order).
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		s.compact()
		if len(s.timers) == 0 {
			break
		}
		sort.SliceStable(s.timers, func(i, j int) bool {
			if s.timers[i].due == s.timers[j].due {
				return s.timers[i].id < s.timers[j].id
			}
			return s.timers[i].due < s.timers[j].due
		})
		t := s.timers[0]
		if t.due > target {
			break
		}
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
}

func (s *ManualScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
}
