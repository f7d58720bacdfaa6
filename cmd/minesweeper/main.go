// Package main is the entry point for the minesweeper console game.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/samdwyer/minesweeper/internal/config"
	"github.com/samdwyer/minesweeper/internal/game"
	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

func main() {
	// Not fatal - env vars might be set directly
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	settings, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	flag.StringVar(&settings.Preset, "preset", settings.Preset, "board preset (classic, beginner, intermediate, expert)")
	flag.IntVar(&settings.Side, "side", settings.Side, "grid side length, overrides the preset")
	flag.IntVar(&settings.Mines, "mines", settings.Mines, "mine count, overrides the preset")
	flag.Int64Var(&settings.Seed, "seed", settings.Seed, "random seed, 0 for a random board")
	flag.StringVar(&settings.UI, "ui", settings.UI, "front end: console or screen")
	flag.Parse()

	logger, closer, err := settings.NewLogger()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	cfg, err := settings.GameConfig(gamedata.MustLoadPresetRegistry())
	if err != nil {
		logger.Fatalf("Invalid board: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if settings.Telemetry {
		setupOTelEnv(settings)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warnf("Telemetry setup failed, continuing without it: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Errorf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	switch settings.UI {
	case config.UIScreen:
		theme, err := gamedata.LoadTheme()
		if err != nil {
			logger.Fatalf("Failed to load theme: %v", err)
		}
		g, err := game.New(ctx, cfg, theme, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize game: %v", err)
		}
		if err := g.Run(ctx); err != nil {
			logger.Errorf("Game error: %v", err)
		}
	default:
		engine, err := game.NewEngine(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize game: %v", err)
		}
		if _, err := game.NewConsole(engine, os.Stdin, os.Stdout).Run(ctx); err != nil {
			logger.Errorf("Game error: %v", err)
		}
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is configured.
func setupOTelEnv(s config.Settings) {
	if s.HoneycombAPIKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", s.HoneycombAPIKey, s.HoneycombDataset))
}
