package quest

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/levels/chase"
	"github.com/vovakirdan/tui-quest/internal/levels/confetti"
	"github.com/vovakirdan/tui-quest/internal/levels/maze"
	"github.com/vovakirdan/tui-quest/internal/levels/storm"
	"github.com/vovakirdan/tui-quest/internal/levels/typist"
)

const phrase = "I love you"

var (
	chaseLayout = chase.Layout{
		Arena:  core.NewRect(0, 0, 40, 20),
		Target: core.NewRect(0, 0, 6, 3),
	}
	mazeLayout = maze.Layout{
		Arena: core.NewRect(0, 0, 40, 20),
		Start: core.NewRect(1, 1, 4, 3),
		Goal:  core.NewRect(34, 15, 5, 4),
		Walls: []core.Rect{core.NewRect(18, 12, 2, 8), core.NewRect(28, 0, 2, 6)},
	}
)

type harness struct {
	c           *Controller
	sched       *core.ManualScheduler
	transitions [][2]Level
	screens     []string
	surfaceHits int
}

func newHarness() *harness {
	h := &harness{sched: core.NewManualScheduler()}
	h.c = New(Options{
		Rand:      core.NewSequence(0.1, 0.9, 0.3, 0.7, 0.5),
		Scheduler: h.sched,
		Phrase:    phrase,
		Surface: func() (float64, float64) {
			h.surfaceHits++
			return 320, 160
		},
		ShowScreen: func(id string) { h.screens = append(h.screens, id) },
		OnTransition: func(from, to Level) {
			h.transitions = append(h.transitions, [2]Level{from, to})
		},
	})
	return h
}

func (h *harness) tapThrice(t *testing.T) {
	t.Helper()
	for i := 0; i < chase.TapsRequired; i++ {
		h.c.Chase(chase.Event{Kind: chase.Tap, Layout: chaseLayout})
	}
	if h.c.Level() != Level2 {
		t.Fatalf("after %d taps Level() = %v, expected %v", chase.TapsRequired, h.c.Level(), Level2)
	}
}

// traceStraight drags in a straight line from the start marker center to
// the goal center; no sample touches a wall.
func (h *harness) traceStraight(t *testing.T) {
	t.Helper()
	from, to := mazeLayout.Start.Center(), mazeLayout.Goal.Center()
	h.c.Maze(maze.Event{Kind: maze.Press, At: from, Layout: mazeLayout})
	const steps = 20
	for i := 1; i <= steps; i++ {
		f := float64(i) / steps
		p := core.Pt(from.X+(to.X-from.X)*f, from.Y+(to.Y-from.Y)*f)
		h.c.Maze(maze.Event{Kind: maze.Move, At: p, Layout: mazeLayout})
	}
	if h.c.Level() != Level3 {
		t.Fatalf("after trace Level() = %v, expected %v", h.c.Level(), Level3)
	}
}

func (h *harness) typePhrase(t *testing.T) {
	t.Helper()
	runes := []rune(phrase)
	for i := 1; i <= len(runes); i++ {
		fx := h.c.Typist(typist.Event{Kind: typist.Input, Text: string(runes[:i])})
		if fx.Has(core.EffectAlert) {
			t.Fatalf("prefix %q alerted", string(runes[:i]))
		}
	}
	if h.c.Level() != Level4 {
		t.Fatalf("after typing Level() = %v, expected %v", h.c.Level(), Level4)
	}
}

func TestEndToEnd(t *testing.T) {
	h := newHarness()
	if h.c.Level() != Start {
		t.Fatalf("new session Level() = %v, expected %v", h.c.Level(), Start)
	}

	if !h.c.Start() {
		t.Fatal("Start() from the start screen should succeed")
	}
	if h.c.Level() != Level1 || h.c.ChaseState().Taps != 0 {
		t.Fatalf("after Start() level=%v taps=%d", h.c.Level(), h.c.ChaseState().Taps)
	}

	h.tapThrice(t)
	h.traceStraight(t)
	h.typePhrase(t)

	for i := 0; i < 25; i++ {
		h.c.Storm(core.Pt(20, 10))
	}
	if h.c.Level() != Victory {
		t.Fatalf("after 25 actions Level() = %v, expected %v", h.c.Level(), Victory)
	}
	if !h.c.Celebrating() {
		t.Error("Victory should start the particle loop")
	}
	if n := len(h.c.Particles()); n != confetti.Count {
		t.Errorf("len(Particles()) = %d, expected %d", n, confetti.Count)
	}
	if h.sched.Active() != 0 {
		t.Errorf("scheduler has %d live timers at Victory, expected 0", h.sched.Active())
	}

	expected := []string{"start", "level1", "level2", "level3", "level4", "victory"}
	if len(h.screens) != len(expected) {
		t.Fatalf("screens = %v, expected %v", h.screens, expected)
	}
	for i := range expected {
		if h.screens[i] != expected[i] {
			t.Errorf("screen %d = %q, expected %q", i, h.screens[i], expected[i])
		}
	}
	if len(h.transitions) != 5 {
		t.Errorf("transitions = %v, expected 5", h.transitions)
	}
	for i, tr := range h.transitions {
		if tr[1] != tr[0]+1 {
			t.Errorf("transition %d = %v -> %v, expected a single step forward", i, tr[0], tr[1])
		}
	}
}

func TestStartOnlyFromStartScreen(t *testing.T) {
	h := newHarness()
	h.c.Start()
	if h.c.Start() {
		t.Error("Start() from Level1 should report false")
	}
	if h.c.Level() != Level1 {
		t.Errorf("Level() = %v, expected %v", h.c.Level(), Level1)
	}
}

func TestEventsForInactiveLevelsIgnored(t *testing.T) {
	h := newHarness()

	if fx := h.c.Chase(chase.Event{Kind: chase.Tap, Layout: chaseLayout}); fx != nil {
		t.Errorf("tap on the start screen produced %v", fx)
	}
	if h.c.ChaseState().Taps != 0 {
		t.Error("tap on the start screen must not count")
	}

	h.c.Start()
	if fx := h.c.Maze(maze.Event{Kind: maze.Press, At: mazeLayout.Start.Center(), Layout: mazeLayout}); fx != nil {
		t.Errorf("maze press during Level1 produced %v", fx)
	}
	if fx := h.c.Typist(typist.Event{Kind: typist.Input, Text: "x"}); fx != nil {
		t.Errorf("typing during Level1 produced %v", fx)
	}
	if fx := h.c.Storm(core.Pt(1, 1)); fx != nil {
		t.Errorf("storm action during Level1 produced %v", fx)
	}
	if h.c.Level() != Level1 {
		t.Errorf("Level() = %v, expected %v", h.c.Level(), Level1)
	}
}

func TestFailuresStayInLevel(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)

	fx := h.c.Maze(maze.Event{Kind: maze.Press, At: mazeLayout.Start.Center(), Layout: mazeLayout})
	if len(fx) != 0 {
		t.Fatalf("press produced %v", fx)
	}
	fx = h.c.Maze(maze.Event{Kind: maze.Release, At: mazeLayout.Start.Center(), Layout: mazeLayout})
	if !fx.Has(core.EffectAlert) {
		t.Error("release mid-path should alert")
	}
	if h.c.Level() != Level2 {
		t.Errorf("Level() after failure = %v, expected %v", h.c.Level(), Level2)
	}

	h.traceStraight(t)
	if fx := h.c.Typist(typist.Event{Kind: typist.Input, Text: "Ix"}); !fx.Has(core.EffectAlert) {
		t.Error("mismatch should alert")
	}
	if h.c.Level() != Level3 {
		t.Errorf("Level() after mismatch = %v, expected %v", h.c.Level(), Level3)
	}
}

func TestTypingIndicatorClearsAfterDelay(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)
	h.traceStraight(t)

	h.c.Typist(typist.Event{Kind: typist.Input, Text: "x"})
	if !h.c.TypistState().Flagged {
		t.Fatal("mismatch should raise the indicator")
	}

	h.sched.Advance(typist.FlashDuration - time.Millisecond)
	if !h.c.TypistState().Flagged {
		t.Error("indicator cleared too early")
	}
	h.sched.Advance(time.Millisecond)
	if h.c.TypistState().Flagged {
		t.Error("indicator should clear after the flash delay")
	}
}

func TestLeavingLevelCancelsIndicatorTimer(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)
	h.traceStraight(t)

	h.c.Typist(typist.Event{Kind: typist.Input, Text: "x"})
	if h.sched.Active() != 1 {
		t.Fatalf("Active() = %d after mismatch, expected 1", h.sched.Active())
	}
	h.typePhrase(t)

	// Only the decay tick survives into Level4
	if h.sched.Active() != 1 || h.c.Timers() != 1 {
		t.Errorf("Active(), Timers() = %d, %d in Level4, expected 1, 1", h.sched.Active(), h.c.Timers())
	}
}

func TestRepeatedMismatchesHoldOneFlashTimer(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)
	h.traceStraight(t)

	for i := 0; i < 5; i++ {
		h.c.Typist(typist.Event{Kind: typist.Input, Text: "x"})
		if i == 2 {
			h.sched.Advance(typist.FlashDuration)
		}
	}
	if got := h.c.Timers(); got != 1 {
		t.Errorf("Timers() = %d after 5 mismatches, expected 1", got)
	}
	if got := h.sched.Active(); got != 1 {
		t.Errorf("Active() = %d after 5 mismatches, expected 1", got)
	}

	h.sched.Advance(typist.FlashDuration)
	if h.c.TypistState().Flagged {
		t.Error("indicator should clear after the last flash")
	}
}

func TestDecayTickRunsOnlyInLevel4(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)
	h.traceStraight(t)
	if h.sched.Active() != 0 {
		t.Fatalf("Active() = %d before Level4, expected 0", h.sched.Active())
	}
	h.typePhrase(t)

	for i := 0; i < 3; i++ {
		h.c.Storm(core.Pt(10, 10))
	}
	h.sched.Advance(4 * storm.TickInterval)
	if got := h.c.StormState().Progress; got != 6 {
		t.Errorf("Progress after 3 actions and 4 ticks = %v, expected 6", got)
	}

	h.sched.Advance(time.Second)
	if got := h.c.StormState().Progress; got != 0 {
		t.Errorf("Progress after long decay = %v, expected 0", got)
	}
	if h.c.Level() != Level4 {
		t.Errorf("decay must not leave the level, got %v", h.c.Level())
	}
}

func TestCloseCancelsDecayTick(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)
	h.traceStraight(t)
	h.typePhrase(t)

	h.c.Storm(core.Pt(0, 0))
	h.c.Close()
	if h.sched.Active() != 0 || h.c.Timers() != 0 {
		t.Fatalf("Active(), Timers() = %d, %d after Close(), expected 0, 0", h.sched.Active(), h.c.Timers())
	}
	h.sched.Advance(time.Second)
	if got := h.c.StormState().Progress; got != storm.GainPerAction {
		t.Errorf("Progress changed after Close(): %v", got)
	}
}

func TestCelebrationStartsOnce(t *testing.T) {
	h := newHarness()
	h.c.Start()
	h.tapThrice(t)
	h.traceStraight(t)
	h.typePhrase(t)

	if fx := h.c.Frame(); fx != nil {
		t.Errorf("Frame() before Victory = %v, expected nil", fx)
	}

	for i := 0; i < 30; i++ {
		h.c.Storm(core.Pt(0, 0))
	}
	if h.surfaceHits != 1 {
		t.Errorf("surface queried %d times, expected 1", h.surfaceHits)
	}

	before := h.c.Particles()
	h.c.Frame()
	after := h.c.Particles()
	if before[0].Y == after[0].Y {
		t.Error("Frame() should advance the particles")
	}

	// Further ticks or actions at Victory are ignored
	h.sched.Advance(time.Second)
	if fx := h.c.Storm(core.Pt(0, 0)); fx != nil {
		t.Errorf("action at Victory produced %v", fx)
	}
	if h.c.Level() != Victory || len(h.transitions) != 5 {
		t.Errorf("level=%v transitions=%d after Victory", h.c.Level(), len(h.transitions))
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{Start, "start"},
		{Level3, "level3"},
		{Victory, "victory"},
		{Level(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.level.String(); got != tc.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tc.level, got, tc.expected)
		}
	}
}
