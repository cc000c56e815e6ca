// Package storm implements the decay-accumulator level: repeated actions
// push a progress meter to 100 against a steady passive decay.
package storm

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Tuning constants.
const (
	DecayPerTick  = 1.5
	GainPerAction = 4.0
	MaxProgress   = 100.0
	TickInterval  = 100 * time.Millisecond
)

// Kind identifies an event delivered to the level.
type Kind int

const (
	Tick   Kind = iota + 1 // decay interval elapsed
	Action                 // the player hit the button
)

// Event is one input delivered to Update. At carries the action
// coordinates for the cosmetic marker.
type Event struct {
	Kind Kind
	At   core.Point
}

// State is the level's transient state.
type State struct {
	Progress float64
	Done     bool
}

// Percent returns progress rounded down for display.
func (s State) Percent() int {
	return int(math.Floor(s.Progress))
}

// Update applies ev to s. Once Done, nothing changes.
func Update(s State, ev Event) (State, core.Effects) {
	if s.Done {
		return s, nil
	}

	var fx core.Effects
	switch ev.Kind {
	case Tick:
		if s.Progress > 0 {
			s.Progress = core.ClampF(s.Progress-DecayPerTick, 0, MaxProgress)
		}
	case Action:
		s.Progress = core.ClampF(s.Progress+GainPerAction, 0, MaxProgress)
		fx = append(fx, core.Effect{Kind: core.EffectMarker, At: ev.At})
	default:
		return s, nil
	}

	if s.Progress >= MaxProgress {
		s.Done = true
		fx = append(fx, core.Effect{Kind: core.EffectComplete})
	}
	return s, fx
}

// Game owns the level state.
type Game struct {
	state State
}

// New creates the level.
func New() *Game {
	return &Game{}
}

// Reset sets progress back to zero.
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
