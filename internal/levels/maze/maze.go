// Package maze implements the guided-path level: the player drags a
// cursor from the start marker to the goal without touching a wall or
// leaving the arena.
package maze

import (
	"time"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Alert timings for a collision or an abandoned trace.
const (
	VibrateDuration = 200 * time.Millisecond
	ShakeDuration   = 300 * time.Millisecond
)

// Kind identifies an input event delivered to the level.
type Kind int

const (
	Press   Kind = iota + 1 // press or touch-start
	Move                    // movement sample
	Release                 // release or touch-end
)

// Layout holds the live bounding boxes of the level. The platform builds
// a fresh Layout for every event since the layout can shift between
// samples.
type Layout struct {
	Arena core.Rect
	Start core.Rect
	Goal  core.Rect
	Walls []core.Rect
}

// Collides reports whether p is inside any wall or outside the arena.
func (l Layout) Collides(p core.Point) bool {
	for _, w := range l.Walls {
		if w.Contains(p) {
			return true
		}
	}
	return !l.Arena.Contains(p)
}

// Reached reports whether p is inside the goal.
func (l Layout) Reached(p core.Point) bool {
	return l.Goal.Contains(p)
}

// Event is one input delivered to Update.
type Event struct {
	Kind   Kind
	At     core.Point
	Layout Layout
}

// State is the level's transient state.
type State struct {
	Tracing       bool
	CursorVisible bool
	Cursor        core.Point
	Done          bool
}

// failure is the alert for a collision or an early release.
var failure = core.Effect{
	Kind: core.EffectAlert,
	Alert: core.Alert{
		Vibrate: []time.Duration{VibrateDuration},
		Shake:   ShakeDuration,
	},
}

// Update applies ev to s. Collision is checked before the goal, so a
// sample inside both a wall and the goal fails.
func Update(s State, ev Event) (State, core.Effects) {
	if s.Done {
		return s, nil
	}

	switch ev.Kind {
	case Press:
		if s.Tracing || !ev.Layout.Start.Contains(ev.At) {
			return s, nil
		}
		s.Tracing = true
		s.CursorVisible = true
		s.Cursor = ev.At
		return s, nil

	case Move:
		if !s.Tracing {
			return s, nil
		}
		s.Cursor = ev.At
		if ev.Layout.Collides(ev.At) {
			return fail(s)
		}
		if ev.Layout.Reached(ev.At) {
			s.Tracing = false
			s.Done = true
			return s, core.Effects{{Kind: core.EffectComplete, At: ev.At}}
		}
		return s, nil

	case Release:
		if s.Tracing {
			return fail(s)
		}
	}
	return s, nil
}

func fail(s State) (State, core.Effects) {
	s.Tracing = false
	s.CursorVisible = false
	return s, core.Effects{failure}
}

// Game owns the level state.
type Game struct {
	state State
}

// New creates the level.
func New() *Game {
	return &Game{}
}

// Reset clears any trace in progress.
func (g *Game) Reset() {
	g.state = State{}
}

// Handle applies one event and returns the requested effects.
func (g *Game) Handle(ev Event) core.Effects {
	var fx core.Effects
	g.state, fx = Update(g.state, ev)
	return fx
}

// State returns a copy of the current state.
func (g *Game) State() State {
	return g.state
}
