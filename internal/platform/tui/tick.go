// Package tui runs the quest in a terminal, locally or over SSH via Wish.
// It handles the terminal UI loop, mouse and key mapping, timers, and
// drawing of every level.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// FrameMsg is sent to trigger an animation frame.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the specified rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// timerMsg fires a scheduler timer. gen identifies the scheduler so a
// restarted session never receives ticks armed by the previous one.
type timerMsg struct {
	gen uint64
	id  int
}

var schedulerGen atomic.Uint64

// teaScheduler implements core.Scheduler on top of tea.Tick. Arming a
// timer queues a command; the model drains the queue after every update.
type teaScheduler struct {
	gen     uint64
	nextID  int
	timers  map[int]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	s       *teaScheduler
	id      int
	period  time.Duration
	fn      func()
	stopped bool
}

func (t *teaTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	delete(t.s.timers, t.id)
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		gen:    schedulerGen.Add(1),
		timers: make(map[int]*teaTimer),
	}
}

func (s *teaScheduler) After(d time.Duration, fn func()) core.Timer {
	return s.add(d, 0, fn)
}

func (s *teaScheduler) Every(d time.Duration, fn func()) core.Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *teaScheduler) add(d, period time.Duration, fn func()) core.Timer {
	s.nextID++
	t := &teaTimer{s: s, id: s.nextID, period: period, fn: fn}
	s.timers[t.id] = t
	s.arm(t.id, d)
	return t
}

func (s *teaScheduler) arm(id int, d time.Duration) {
	msg := timerMsg{gen: s.gen, id: id}
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg { return msg }))
}

// fire runs the timer named by msg. Stale or stopped timers are ignored.
func (s *teaScheduler) fire(msg timerMsg) {
	if msg.gen != s.gen {
		return
	}
	t, ok := s.timers[msg.id]
	if !ok {
		return
	}
	if t.period > 0 {
		s.arm(t.id, t.period)
	} else {
		t.Stop()
	}
	t.fn()
}

// active returns the number of live timers.
func (s *teaScheduler) active() int {
	return len(s.timers)
}

// drain returns the commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// stopAll cancels every timer. Ticks already in flight become no-ops.
func (s *teaScheduler) stopAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = make(map[int]*teaTimer)
	s.pending = nil
}
