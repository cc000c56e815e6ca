package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-quest/internal/core"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Quest
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	def := Default()
	if cfg.Typing.Phrase != def.Typing.Phrase {
		t.Errorf("embedded phrase = %q, expected %q", cfg.Typing.Phrase, def.Typing.Phrase)
	}
	if cfg.Display.FPS != def.Display.FPS {
		t.Errorf("embedded fps = %d, expected %d", cfg.Display.FPS, def.Display.FPS)
	}
	if len(cfg.Maze.Walls) != len(def.Maze.Walls) {
		t.Fatalf("embedded walls = %d, expected %d", len(cfg.Maze.Walls), len(def.Maze.Walls))
	}
	for i := range def.Maze.Walls {
		if cfg.Maze.Walls[i] != def.Maze.Walls[i] {
			t.Errorf("wall %d = %+v, expected %+v", i, cfg.Maze.Walls[i], def.Maze.Walls[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Quest)
		expected error
	}{
		{"default is valid", func(*Quest) {}, nil},
		{"empty phrase", func(q *Quest) { q.Typing.Phrase = "" }, ErrEmptyPhrase},
		{"zero fps", func(q *Quest) { q.Display.FPS = 0 }, ErrBadFPS},
		{"wall past right edge", func(q *Quest) { q.Maze.Walls[0].X = 0.98 }, ErrBoxRange},
		{"negative goal", func(q *Quest) { q.Maze.Goal.Y = -0.1 }, ErrBoxRange},
		{"start on wall", func(q *Quest) { q.Maze.Start = Box{X: 0.19, Y: 0.1, W: 0.1, H: 0.1} }, ErrStartOnWall},
		{"start without size", func(q *Quest) { q.Maze.Start.W = 0 }, ErrMissingLayout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Default()
			tc.mutate(&q)
			err := q.Validate()
			if tc.expected == nil {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("Validate() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quest.yaml")
	data := []byte("typing:\n  phrase: \"hello\"\ndisplay:\n  fps: 30\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Typing.Phrase != "hello" {
		t.Errorf("Phrase = %q, expected %q", cfg.Typing.Phrase, "hello")
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", cfg.Display.FPS)
	}
	// Unnamed sections keep their defaults
	if len(cfg.Maze.Walls) != 3 {
		t.Errorf("walls = %d, expected the 3 defaults", len(cfg.Maze.Walls))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("display: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("typing:\n  phrase: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrEmptyPhrase) {
		t.Errorf("Load() with empty phrase = %v, expected %v", err, ErrEmptyPhrase)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, env.Options{Environment: map[string]string{
		"QUEST_FPS":       "24",
		"QUEST_DB":        "/tmp/runs.db",
		"QUEST_AUDIO":     "false",
		"QUEST_LOG_LEVEL": "debug",
		"QUEST_PHRASE":    "je t'aime",
	}})
	if err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	if cfg.Display.FPS != 24 {
		t.Errorf("FPS = %d, expected 24", cfg.Display.FPS)
	}
	if cfg.Storage.Path != "/tmp/runs.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Audio.Enabled {
		t.Error("Audio.Enabled should be false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Typing.Phrase != "je t'aime" {
		t.Errorf("Phrase = %q", cfg.Typing.Phrase)
	}
}

func TestApplyEnvUnsetKeepsValues(t *testing.T) {
	cfg := Default()
	if err := applyEnv(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	def := Default()
	if cfg.Display.FPS != def.Display.FPS || cfg.Typing.Phrase != def.Typing.Phrase || !cfg.Audio.Enabled {
		t.Errorf("unset env changed config: %+v", cfg)
	}

	if err := applyEnv(&cfg, env.Options{Environment: map[string]string{"QUEST_FPS": "fast"}}); err == nil {
		t.Error("non-numeric QUEST_FPS should fail")
	}
}

func TestBoxRect(t *testing.T) {
	arena := core.NewRect(10, 2, 100, 40)
	r := Box{X: 0.5, Y: 0.25, W: 0.1, H: 0.5}.Rect(arena)
	expected := core.NewRect(60, 12, 10, 20)
	if r != expected {
		t.Errorf("Rect() = %+v, expected %+v", r, expected)
	}
}
