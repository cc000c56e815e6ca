// Package config provides YAML-based configuration for the quest: the
// typing phrase, the maze layout, presentation and infrastructure
// settings. Gameplay constants are fixed in the level packages.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Quest contains all configuration for a session.
type Quest struct {
	Title   string        `yaml:"title"`
	Typing  TypingConfig  `yaml:"typing"`
	Maze    MazeConfig    `yaml:"maze"`
	Display DisplayConfig `yaml:"display"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// TypingConfig defines the Level 3 phrase.
type TypingConfig struct {
	Phrase string `yaml:"phrase"`
}

// Box is a rectangle given as fractions of the arena: 0 is the top/left
// edge and 1 the bottom/right edge.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Rect maps b onto arena.
func (b Box) Rect(arena core.Rect) core.Rect {
	return core.NewRect(
		arena.X+b.X*arena.W,
		arena.Y+b.Y*arena.H,
		b.W*arena.W,
		b.H*arena.H,
	)
}

func (b Box) normalized() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// MazeConfig defines the Level 2 layout.
type MazeConfig struct {
	Start Box   `yaml:"start"`
	Goal  Box   `yaml:"goal"`
	Walls []Box `yaml:"walls"`
}

// DisplayConfig defines rendering parameters.
type DisplayConfig struct {
	FPS int `yaml:"fps"`
}

// AudioConfig toggles the buzzer used for tactile alerts.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StorageConfig defines where completed runs are recorded.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig defines the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Validation errors.
var (
	ErrEmptyPhrase   = errors.New("typing phrase is empty")
	ErrBadFPS        = errors.New("fps must be positive")
	ErrBoxRange      = errors.New("box outside the arena")
	ErrStartOnWall   = errors.New("maze start overlaps a wall")
	ErrMissingLayout = errors.New("maze start and goal must have a size")
)

// Validate checks that cfg describes a playable session.
func (q Quest) Validate() error {
	if q.Typing.Phrase == "" {
		return fmt.Errorf("config: %w", ErrEmptyPhrase)
	}
	if q.Display.FPS <= 0 {
		return fmt.Errorf("config: %w: %d", ErrBadFPS, q.Display.FPS)
	}
	if q.Maze.Start.W <= 0 || q.Maze.Start.H <= 0 || q.Maze.Goal.W <= 0 || q.Maze.Goal.H <= 0 {
		return fmt.Errorf("config: %w", ErrMissingLayout)
	}

	boxes := map[string]Box{"start": q.Maze.Start, "goal": q.Maze.Goal}
	for i, w := range q.Maze.Walls {
		boxes[fmt.Sprintf("wall %d", i)] = w
	}
	for name, b := range boxes {
		if !inUnit(b) {
			return fmt.Errorf("config: maze %s: %w", name, ErrBoxRange)
		}
	}

	start := q.Maze.Start.normalized()
	for i, w := range q.Maze.Walls {
		if start.Intersects(w.normalized()) {
			return fmt.Errorf("config: wall %d: %w", i, ErrStartOnWall)
		}
	}
	return nil
}

func inUnit(b Box) bool {
	const eps = 1e-9
	if b.X < 0 || b.Y < 0 || b.W < 0 || b.H < 0 {
		return false
	}
	return b.X+b.W <= 1+eps && b.Y+b.H <= 1+eps
}
