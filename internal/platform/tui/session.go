package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/feedback"
	"github.com/vovakirdan/tui-quest/internal/quest"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

// Kiss markers rise this many rows while fading out.
const (
	markerLife = 500 * time.Millisecond
	markerRise = 3
)

// marker is a cosmetic Level 4 kiss. It is never part of game state.
type marker struct {
	at   core.Point
	born time.Time
}

// session is one playthrough from Start to Victory. A restart throws the
// whole session away and builds a new one.
type session struct {
	id     string
	ctrl   *quest.Controller
	sched  *teaScheduler
	input  textinput.Model
	store  *storage.Store
	logger *log.Logger
	buzz   feedback.Haptics
	now    func() time.Time
	player string

	hover bool // pointer is over the chase target
	armed bool // a press landed on the chase target

	markers    []marker
	shakeUntil time.Time

	startedAt time.Time
	levelAt   time.Time
	splits    [storage.Levels]time.Duration
	total     time.Duration
	best      time.Duration
	hasBest   bool
	runID     string
}

func newSession(opts Options, canvas *core.Canvas) *session {
	s := &session{
		id:     uuid.NewString(),
		sched:  newTeaScheduler(),
		store:  opts.Store,
		logger: opts.Logger,
		buzz:   opts.Haptics,
		now:    opts.Now,
		player: opts.Player,
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CharLimit = 2 * len([]rune(opts.Quest.Typing.Phrase))
	s.input = ti

	rng := opts.Rand
	if rng == nil {
		rng = core.NewRand(opts.Runtime.Seed)
	}

	s.ctrl = quest.New(quest.Options{
		Rand:      rng,
		Scheduler: s.sched,
		Phrase:    opts.Quest.Typing.Phrase,
		Surface: func() (float64, float64) {
			return canvas.Width(), canvas.Height()
		},
		ShowScreen: func(id string) {
			s.logger.Debug("show screen", "id", id, "session", s.id)
		},
		OnTransition: s.onTransition,
	})
	return s
}

func (s *session) onTransition(from, to quest.Level) {
	now := s.now()
	if from >= quest.Level1 && from <= quest.Level4 {
		s.splits[from-quest.Level1] = now.Sub(s.levelAt)
	}
	if to == quest.Level1 {
		s.startedAt = now
	}
	s.levelAt = now
	s.hover, s.armed = false, false
	s.markers = nil
	s.shakeUntil = time.Time{}

	s.input.Blur()
	if to == quest.Level3 {
		s.input.Reset()
		s.input.Focus()
	}

	s.logger.Info("level entered", "from", from, "to", to, "session", s.id)

	if to == quest.Victory {
		s.finish(now)
	}
}

// finish records the completed run. Storage is optional; failures are
// logged and the celebration goes on.
func (s *session) finish(now time.Time) {
	s.total = now.Sub(s.startedAt)
	if s.store == nil {
		return
	}

	run, err := s.store.SaveRun(storage.Run{
		Player:   s.player,
		Duration: s.total,
		Splits:   s.splits,
	})
	if err != nil {
		s.logger.Error("could not save run", "error", err)
		return
	}
	s.runID = run.ID
	s.logger.Info("run saved", "run", run.ID, "player", s.player, "duration", s.total)

	best, ok, err := s.store.BestDuration()
	if err != nil {
		s.logger.Warn("could not read best run", "error", err)
		return
	}
	s.best, s.hasBest = best, ok
}

// apply carries out the cosmetic side of effects returned by the levels.
func (s *session) apply(fx core.Effects) {
	now := s.now()
	for _, e := range fx {
		switch e.Kind {
		case core.EffectAlert:
			if len(e.Alert.Vibrate) > 0 {
				s.buzz.Vibrate(e.Alert.Vibrate...)
			}
			if e.Alert.Shake > 0 {
				s.shakeUntil = now.Add(e.Alert.Shake)
			}
			s.logger.Debug("soft failure", "level", s.ctrl.Level(), "session", s.id)
		case core.EffectMarker:
			s.markers = append(s.markers, marker{at: e.At, born: now})
		case core.EffectRelocate:
			s.hover, s.armed = false, false
		}
	}
}

// age drops expired markers.
func (s *session) age(now time.Time) {
	live := s.markers[:0]
	for _, mk := range s.markers {
		if now.Sub(mk.born) < markerLife {
			live = append(live, mk)
		}
	}
	s.markers = live
}

func (s *session) shaking(now time.Time) bool {
	return now.Before(s.shakeUntil)
}

// elapsed is the running time since Level 1, frozen at Victory.
func (s *session) elapsed(now time.Time) time.Duration {
	switch s.ctrl.Level() {
	case quest.Start:
		return 0
	case quest.Victory:
		return s.total
	}
	return now.Sub(s.startedAt)
}

func (s *session) close() {
	s.ctrl.Close()
	s.sched.stopAll()
}
