// Package typist implements the strict-prefix typing level: the player
// must type a fixed phrase with no wrong character at any point.
package typist

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// FlashDuration is how long the error indicator stays up after a mismatch.
const FlashDuration = 500 * time.Millisecond

// vibratePattern is buzz, pause, buzz.
var vibratePattern = []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}

// Kind identifies an event delivered to the level.
type Kind int

const (
	Input        Kind = iota + 1 // the input text changed
	FlashExpired                 // the error indicator delay elapsed
)

// Event is one input delivered to Update.
type Event struct {
	Kind Kind
	Text string
}

// State is the level's transient state. Input is always a prefix of
// Target; a mismatch never gets stored.
type State struct {
	Target  string
	Input   string
	Flagged bool
	Done    bool
}

// Remaining returns the part of the phrase not yet typed.
func (s State) Remaining() string {
	return strings.TrimPrefix(s.Target, s.Input)
}

// Update applies ev to s.
func Update(s State, ev Event) (State, core.Effects) {
	if s.Done {
		return s, nil
	}

	switch ev.Kind {
	case Input:
		if !strings.HasPrefix(s.Target, ev.Text) {
			s.Input = ""
			s.Flagged = true
			return s, core.Effects{{
				Kind: core.EffectAlert,
				Alert: core.Alert{
					Vibrate: vibratePattern,
					Flash:   FlashDuration,
				},
			}}
		}
		s.Input = ev.Text
		if s.Input == s.Target {
			s.Done = true
			return s, core.Effects{{Kind: core.EffectComplete}}
		}
	case FlashExpired:
		s.Flagged = false
	}
	return s, nil
}

// Game owns the level state.
type Game struct {
	state State
}

// New creates the level for the given phrase.
func New(phrase string) *Game {
	return &Game{state: State{Target: phrase}}
}

// Reset clears the input and indicators, keeping the phrase.
func (g *Game) Reset() {
	g.state = State{Target: g.state.Target}
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
