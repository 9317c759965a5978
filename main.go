package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"snake-classic/game"
	"snake-classic/game/manager"
	"snake-classic/game/types"
	"snake-classic/screens"
	"snake-classic/store"
	"snake-classic/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// getEnvInt may warn while the flags are declared.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	_ = godotenv.Load()

	cfg := config{}
	flag.IntVar(&cfg.speed, "speed", getEnvInt("SNAKE_SPEED", 0), "Speed preset focused on the menu (0 = slowest)")
	flag.IntVar(&cfg.width, "width", getEnvInt("SNAKE_WIDTH", types.DefaultWidth), "Grid width in cells")
	flag.IntVar(&cfg.height, "height", getEnvInt("SNAKE_HEIGHT", types.DefaultHeight), "Grid height in cells")
	flag.IntVar(&cfg.cell, "cell", getEnvInt("SNAKE_CELL", 10), "Cell size in pixels")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Food placement seed (0 = time based)")
	flag.StringVar(&cfg.statsPath, "stats", getEnv("SNAKE_STATS", ""), "Score history file (.json, or .db for SQLite); empty keeps scores in memory")
	logLevel := flag.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *logLevel).Msg("unknown log level, using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatal().Err(err).Msg("snake")
	}
}

type config struct {
	speed     int
	width     int
	height    int
	cell      int
	seed      uint64
	statsPath string
}

// run owns every resource so deferred cleanup happens before main exits.
func run(ctx context.Context, cfg config) error {
	if cfg.cell < 1 {
		return fmt.Errorf("cell size %d: must be at least 1 pixel", cfg.cell)
	}

	engine, err := game.NewEngine(game.Config{Width: cfg.width, Height: cfg.height, Seed: cfg.seed})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	st, err := store.Open(ctx, cfg.statsPath)
	if err != nil {
		return fmt.Errorf("open score store %q: %w", cfg.statsPath, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("close score store")
		}
	}()

	shell, err := screens.NewShell(ctx, engine, manager.NewStateManager(ctx, st), screens.DefaultSpeeds, cfg.speed)
	if err != nil {
		return fmt.Errorf("create screens: %w", err)
	}

	log.Info().
		Int("width", cfg.width).
		Int("height", cfg.height).
		Str("stats", cfg.statsPath).
		Msg("starting snake")

	renderer := ui.NewRenderer(engine.Grid, cfg.cell)
	w, h := renderer.WindowSize()
	rl.InitWindow(w, h, "Snake Game")
	defer rl.CloseWindow()
	// Escape is handled by the screens so it also works on the game over screen.
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		for _, k := range ui.PollKeys() {
			if err := shell.HandleKey(k); errors.Is(err, screens.ErrQuit) {
				return nil
			}
		}
		if err := renderer.HandleMouse(shell); err != nil {
			log.Warn().Err(err).Msg("menu click")
		}

		shell.Advance(time.Now())
		renderer.Draw(shell)
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("env", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}
