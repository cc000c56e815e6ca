// Package chase implements the evasive-target level: the player must tap a
// target that sometimes jumps away when approached.
package chase

import (
	"fmt"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Tuning constants. The flee thresholds were tuned by hand: a pointer
// hover flees when a roll exceeds 0.5 (50%), a touch when it exceeds 0.6
// (40%), since touch contact is harder to dodge with.
const (
	TapsRequired         = 3
	PointerFleeThreshold = 0.5
	TouchFleeThreshold   = 0.6
)

// Kind identifies an input event delivered to the level.
type Kind int

const (
	PointerEnter Kind = iota + 1 // pointer moved onto the target
	TouchStart                   // contact began on the target without a prior hover
	Tap                          // a click registered on the target
)

// Layout holds the live bounding boxes the level works against.
// Only the size of Target is used; its position comes from State.
type Layout struct {
	Arena  core.Rect
	Target core.Rect
}

// Event is one input delivered to Update.
type Event struct {
	Kind   Kind
	Layout Layout
}

// State is the level's transient state.
type State struct {
	Taps   int
	Offset core.Point // target top-left relative to the arena
	Placed bool       // false until the first relocation; the target sits centered
	Done   bool
}

// TargetRect returns the target's absolute bounding box for l.
func (s State) TargetRect(l Layout) core.Rect {
	w, h := l.Target.W, l.Target.H
	if !s.Placed {
		c := l.Arena.Center()
		return core.NewRect(c.X-w/2, c.Y-h/2, w, h)
	}
	return core.NewRect(l.Arena.X+s.Offset.X, l.Arena.Y+s.Offset.Y, w, h)
}

// Label is the text shown on the target.
func (s State) Label() string {
	if s.Taps == 0 {
		return "♥"
	}
	return fmt.Sprintf("%d/%d", s.Taps, TapsRequired)
}

// Relocate picks a uniformly random offset that keeps the whole target
// inside the arena.
func Relocate(l Layout, rng core.Rand) core.Point {
	maxX := l.Arena.W - l.Target.W
	maxY := l.Arena.H - l.Target.H
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return core.Pt(rng.Float64()*maxX, rng.Float64()*maxY)
}

// Update applies ev to s. It never fails; the level can only be delayed.
func Update(s State, ev Event, rng core.Rand) (State, core.Effects) {
	if s.Done {
		return s, nil
	}

	switch ev.Kind {
	case PointerEnter:
		if rng.Float64() > PointerFleeThreshold {
			return move(s, ev.Layout, rng)
		}
	case TouchStart:
		if rng.Float64() > TouchFleeThreshold {
			return move(s, ev.Layout, rng)
		}
	case Tap:
		s.Taps++
		if s.Taps < TapsRequired {
			return move(s, ev.Layout, rng)
		}
		s.Done = true
		return s, core.Effects{{Kind: core.EffectComplete}}
	}
	return s, nil
}

func move(s State, l Layout, rng core.Rand) (State, core.Effects) {
	s.Offset = Relocate(l, rng)
	s.Placed = true
	at := l.Arena.Offset(s.Offset.X, s.Offset.Y)
	return s, core.Effects{{Kind: core.EffectRelocate, At: core.Pt(at.X, at.Y)}}
}

// Game owns the level state and its random source.
type Game struct {
	state State
	rng   core.Rand
}

// New creates the level with the given random source.
func New(rng core.Rand) *Game {
	return &Game{rng: rng}
}

// Reset returns the level to zero taps with the target centered.
func (g *Game) Reset() {
	g.state = State{}
}

// Handle applies one event and returns the requested effects.
func (g *Game) Handle(ev Event) core.Effects {
	var fx core.Effects
	g.state, fx = Update(g.state, ev, g.rng)
	return fx
}

// State returns a copy of the current state.
func (g *Game) State() State {
	return g.state
}
