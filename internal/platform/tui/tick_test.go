package tui

import (
	"testing"
	"time"
)

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := newTeaScheduler()
	fired := 0
	s.After(500*time.Millisecond, func() { fired++ })

	if s.active() != 1 {
		t.Fatalf("active() = %d, expected 1", s.active())
	}
	if s.drain() == nil {
		t.Fatal("drain() = nil after arming a timer")
	}
	if s.drain() != nil {
		t.Error("second drain() should be empty")
	}

	msg := timerMsg{gen: s.gen, id: 1}
	s.fire(msg)
	s.fire(msg)

	if fired != 1 {
		t.Errorf("fired = %d, expected 1", fired)
	}
	if s.active() != 0 {
		t.Errorf("active() = %d, expected 0", s.active())
	}
}

func TestSchedulerEveryRearms(t *testing.T) {
	s := newTeaScheduler()
	fired := 0
	timer := s.Every(100*time.Millisecond, func() { fired++ })
	s.drain()

	msg := timerMsg{gen: s.gen, id: 1}
	for i := 0; i < 3; i++ {
		s.fire(msg)
		if s.drain() == nil {
			t.Fatalf("tick %d did not re-arm", i)
		}
	}
	if fired != 3 {
		t.Errorf("fired = %d, expected 3", fired)
	}

	timer.Stop()
	s.fire(msg)
	if fired != 3 {
		t.Errorf("fired after Stop = %d, expected 3", fired)
	}
	if s.drain() != nil {
		t.Error("stopped timer re-armed")
	}
}

func TestSchedulerIgnoresOtherGenerations(t *testing.T) {
	old := newTeaScheduler()
	cur := newTeaScheduler()
	if old.gen == cur.gen {
		t.Fatal("schedulers share a generation")
	}

	fired := false
	cur.After(time.Second, func() { fired = true })
	cur.fire(timerMsg{gen: old.gen, id: 1})

	if fired {
		t.Error("timer fired for a message from another scheduler")
	}
}

func TestSchedulerStopAll(t *testing.T) {
	s := newTeaScheduler()
	fired := 0
	s.After(time.Second, func() { fired++ })
	s.Every(time.Second, func() { fired++ })

	s.stopAll()

	if s.active() != 0 {
		t.Errorf("active() = %d, expected 0", s.active())
	}
	if s.drain() != nil {
		t.Error("drain() after stopAll should be empty")
	}
	s.fire(timerMsg{gen: s.gen, id: 1})
	s.fire(timerMsg{gen: s.gen, id: 2})
	if fired != 0 {
		t.Errorf("fired = %d, expected 0", fired)
	}
}

func TestFrameCmdDefaultsRate(t *testing.T) {
	if frameCmd(0) == nil {
		t.Error("frameCmd(0) = nil")
	}
}
