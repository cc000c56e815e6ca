// Package quest implements the level progression controller. It owns the
// active level, composes the four mini-games and the celebration, and is
// the only place that moves the session forward.
package quest

import (
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/levels/chase"
	"github.com/vovakirdan/tui-quest/internal/levels/confetti"
	"github.com/vovakirdan/tui-quest/internal/levels/maze"
	"github.com/vovakirdan/tui-quest/internal/levels/storm"
	"github.com/vovakirdan/tui-quest/internal/levels/typist"
)

// DefaultPhrase is typed on Level 3 when no phrase is configured.
const DefaultPhrase = "I love you"

// Level is one state of the session.
type Level int

const (
	Start Level = iota
	Level1
	Level2
	Level3
	Level4
	Victory
)

var levelNames = [...]string{"start", "level1", "level2", "level3", "level4", "victory"}

// String returns the screen id for the level.
func (l Level) String() string {
	if l < Start || l > Victory {
		return "unknown"
	}
	return levelNames[l]
}

// Options wires the controller to its host. Only Scheduler is required
// for levels with timers; everything else has a usable default.
type Options struct {
	Rand      core.Rand
	Scheduler core.Scheduler
	Phrase    string

	// Surface reports the celebration surface size on entering Victory.
	Surface func() (w, h float64)

	// ShowScreen activates exactly one screen by id.
	ShowScreen func(id string)

	// OnTransition is called after every level change.
	OnTransition func(from, to Level)
}

// Controller is the session state machine.
type Controller struct {
	opts   Options
	level  Level
	timers core.TimerGroup
	flash  core.Timer

	chase    *chase.Game
	maze     *maze.Game
	typist   *typist.Game
	storm    *storm.Game
	confetti *confetti.Simulator
}

// New creates a session on the Start screen.
func New(opts Options) *Controller {
	if opts.Rand == nil {
		opts.Rand = core.NewRand(0)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = core.NewManualScheduler()
	}
	if opts.Phrase == "" {
		opts.Phrase = DefaultPhrase
	}

	c := &Controller{
		opts:     opts,
		level:    Start,
		chase:    chase.New(opts.Rand),
		maze:     maze.New(),
		typist:   typist.New(opts.Phrase),
		storm:    storm.New(),
		confetti: confetti.New(opts.Rand),
	}
	c.show(Start)
	return c
}

// Level returns the active level.
func (c *Controller) Level() Level {
	return c.level
}

// Start leaves the Start screen for Level 1. It does nothing anywhere
// else and reports whether it moved.
func (c *Controller) Start() bool {
	if c.level != Start {
		return false
	}
	c.enter(Level1)
	return true
}

// Chase delivers an event to Level 1. Events for an inactive level are
// dropped.
func (c *Controller) Chase(ev chase.Event) core.Effects {
	if c.level != Level1 {
		return nil
	}
	fx := c.chase.Handle(ev)
	c.completeOn(fx)
	return fx
}

// Maze delivers an event to Level 2.
func (c *Controller) Maze(ev maze.Event) core.Effects {
	if c.level != Level2 {
		return nil
	}
	fx := c.maze.Handle(ev)
	c.completeOn(fx)
	return fx
}

// Typist delivers an input change to Level 3. A mismatch schedules the
// indicator to clear after typist.FlashDuration.
func (c *Controller) Typist(ev typist.Event) core.Effects {
	if c.level != Level3 {
		return nil
	}
	fx := c.typist.Handle(ev)
	if fx.Has(core.EffectAlert) {
		c.flash = c.timers.Replace(c.flash, c.opts.Scheduler.After(typist.FlashDuration, c.flashExpired))
	}
	c.completeOn(fx)
	return fx
}

// Storm delivers a player action at the given coordinates to Level 4.
func (c *Controller) Storm(at core.Point) core.Effects {
	if c.level != Level4 {
		return nil
	}
	fx := c.storm.Handle(storm.Event{Kind: storm.Action, At: at})
	c.completeOn(fx)
	return fx
}

// Frame advances the celebration by one frame once it is running.
func (c *Controller) Frame() core.Effects {
	return c.confetti.Step()
}

// Draw renders the celebration onto dst.
func (c *Controller) Draw(dst confetti.Surface) {
	if c.confetti.Running() {
		c.confetti.Draw(dst)
	}
}

// Resize informs the celebration of a new surface size.
func (c *Controller) Resize(w, h float64) {
	c.confetti.Resize(w, h)
}

// Close releases every timer the active level holds. A restart closes the
// session and builds a new one.
func (c *Controller) Close() {
	c.timers.StopAll()
	c.flash = nil
}

// Phrase returns the Level 3 target.
func (c *Controller) Phrase() string { return c.opts.Phrase }

// ChaseState returns Level 1 state.
func (c *Controller) ChaseState() chase.State { return c.chase.State() }

// MazeState returns Level 2 state.
func (c *Controller) MazeState() maze.State { return c.maze.State() }

// TypistState returns Level 3 state.
func (c *Controller) TypistState() typist.State { return c.typist.State() }

// StormState returns Level 4 state.
func (c *Controller) StormState() storm.State { return c.storm.State() }

// Celebrating reports whether the particle loop has started.
func (c *Controller) Celebrating() bool { return c.confetti.Running() }

// Particles returns a copy of the celebration particles.
func (c *Controller) Particles() []confetti.Particle { return c.confetti.Particles() }

// Timers returns how many timer handles the active level holds.
func (c *Controller) Timers() int { return c.timers.Len() }

func (c *Controller) completeOn(fx core.Effects) {
	if !fx.Has(core.EffectComplete) {
		return
	}
	if c.level >= Level1 && c.level < Victory {
		c.enter(c.level + 1)
	}
}

// enter tears down the active level, sets up next and marks it active.
func (c *Controller) enter(next Level) {
	from := c.level

	c.timers.StopAll()
	c.flash = nil

	switch next {
	case Level1:
		c.chase.Reset()
	case Level2:
		c.maze.Reset()
	case Level3:
		c.typist.Reset()
	case Level4:
		c.storm.Reset()
		c.timers.Add(c.opts.Scheduler.Every(storm.TickInterval, c.stormTick))
	case Victory:
		w, h := 0.0, 0.0
		if c.opts.Surface != nil {
			w, h = c.opts.Surface()
		}
		c.confetti.Start(w, h)
	}

	c.level = next
	c.show(next)
	if c.opts.OnTransition != nil {
		c.opts.OnTransition(from, next)
	}
}

func (c *Controller) show(l Level) {
	if c.opts.ShowScreen != nil {
		c.opts.ShowScreen(l.String())
	}
}

func (c *Controller) stormTick() {
	if c.level != Level4 {
		return
	}
	c.completeOn(c.storm.Handle(storm.Event{Kind: storm.Tick}))
}

// flashExpired keeps c.flash so the next mismatch reuses its slot.
func (c *Controller) flashExpired() {
	if c.level != Level3 {
		return
	}
	c.typist.Handle(typist.Event{Kind: typist.FlashExpired})
}
