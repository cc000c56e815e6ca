package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the quest configuration and applies environment overrides.
// Search order: customPath -> ~/.quest/quest.yaml -> ./configs/quest.yaml -> embedded default
func Load(customPath string) (Quest, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Quest, error) {
	// Files are decoded over the defaults so a partial file only
	// overrides what it names.
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("quest.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := Default()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/quest.yaml"); err == nil {
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultQuestYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quest", filename)
}

// overrides are the settings that can come from the environment. Unset
// variables leave the pointers nil.
type overrides struct {
	FPS      *int    `env:"QUEST_FPS"`
	DB       *string `env:"QUEST_DB"`
	Audio    *bool   `env:"QUEST_AUDIO"`
	LogLevel *string `env:"QUEST_LOG_LEVEL"`
	Phrase   *string `env:"QUEST_PHRASE"`
}

// ApplyEnv overrides cfg from QUEST_* environment variables.
func ApplyEnv(cfg *Quest) error {
	return applyEnv(cfg, env.Options{})
}

func applyEnv(cfg *Quest, opts env.Options) error {
	var o overrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.FPS != nil {
		cfg.Display.FPS = *o.FPS
	}
	if o.DB != nil {
		cfg.Storage.Path = *o.DB
	}
	if o.Audio != nil {
		cfg.Audio.Enabled = *o.Audio
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.Phrase != nil {
		cfg.Typing.Phrase = *o.Phrase
	}
	return nil
}
