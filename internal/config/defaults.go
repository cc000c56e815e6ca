package config

import (
	_ "embed"
)

//go:embed defaults/quest.yaml
var defaultQuestYAML []byte

// Default returns the hardcoded configuration, matching the embedded
// defaults/quest.yaml.
func Default() Quest {
	return Quest{
		Title: "A little quest for you",
		Typing: TypingConfig{
			Phrase: "I love you",
		},
		Maze: MazeConfig{
			Start: Box{X: 0.02, Y: 0.05, W: 0.08, H: 0.15},
			Goal:  Box{X: 0.88, Y: 0.78, W: 0.10, H: 0.17},
			Walls: []Box{
				{X: 0.20, Y: 0.00, W: 0.04, H: 0.70},
				{X: 0.45, Y: 0.30, W: 0.04, H: 0.70},
				{X: 0.70, Y: 0.00, W: 0.04, H: 0.70},
			},
		},
		Display: DisplayConfig{FPS: 60},
		Audio:   AudioConfig{Enabled: true},
		Storage: StorageConfig{Path: "~/.quest/runs.db"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultQuestYAML
}
