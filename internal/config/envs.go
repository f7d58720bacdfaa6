// Package config reads game settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/minesweeper/internal/game"
	"github.com/samdwyer/minesweeper/internal/gamedata"
)

// Front ends selectable with MINESWEEPER_UI.
const (
	UIConsole = "console"
	UIScreen  = "screen"
)

// Settings holds values read from the environment. Zero Side and negative
// Mines mean "use the preset".
type Settings struct {
	Preset           string // Board preset ID
	Side             int    // Overrides the preset side when > 0
	Mines            int    // Overrides the preset mine count when >= 0
	Seed             int64  // 0 picks a time-based seed
	UI               string // console or screen
	LogLevel         string // logrus level name
	LogFile          string // Log destination; stderr when empty
	Telemetry        bool   // Export traces over OTLP
	HoneycombAPIKey  string
	HoneycombDataset string
}

// LoadDotEnv loads .env files into the environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds Settings from environment variables.
func FromEnv() (Settings, error) {
	var s Settings
	var err error

	s.Preset = getEnvWithDefault("MINESWEEPER_PRESET", gamedata.DefaultPresetID)
	if s.Side, err = getEnvAsInt("MINESWEEPER_SIDE", 0); err != nil {
		return s, err
	}
	if s.Mines, err = getEnvAsInt("MINESWEEPER_MINES", -1); err != nil {
		return s, err
	}
	seed, err := getEnvAsInt("MINESWEEPER_SEED", 0)
	if err != nil {
		return s, err
	}
	s.Seed = int64(seed)

	s.UI = getEnvWithDefault("MINESWEEPER_UI", UIConsole)
	if s.UI != UIConsole && s.UI != UIScreen {
		return s, fmt.Errorf("MINESWEEPER_UI must be %q or %q, got %q", UIConsole, UIScreen, s.UI)
	}

	s.LogLevel = getEnvWithDefault("LOG_LEVEL", "warn")
	s.LogFile = getEnvWithDefault("MINESWEEPER_LOG_FILE", "")

	telemetry := getEnvWithDefault("MINESWEEPER_TELEMETRY", "false")
	if s.Telemetry, err = strconv.ParseBool(telemetry); err != nil {
		return s, fmt.Errorf("MINESWEEPER_TELEMETRY must be a boolean: %w", err)
	}
	s.HoneycombAPIKey = getEnvWithDefault("HONEYCOMB_MINESWEEPER_API_KEY", "")
	s.HoneycombDataset = getEnvWithDefault("HONEYCOMB_MINESWEEPER_DATASET", "minesweeper")

	return s, nil
}

// GameConfig resolves the preset and applies any side or mine overrides.
func (s Settings) GameConfig(presets *gamedata.PresetRegistry) (game.Config, error) {
	preset := presets.GetByID(s.Preset)
	if preset == nil {
		return game.Config{}, fmt.Errorf("unknown preset %q (have %v)", s.Preset, presets.IDs())
	}

	cfg := game.Config{Side: preset.Side, Mines: preset.Mines, Seed: s.Seed}
	if s.Side > 0 {
		cfg.Side = s.Side
	}
	if s.Mines >= 0 {
		cfg.Mines = s.Mines
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}
