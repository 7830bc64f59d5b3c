package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/config"
	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
)

type Config struct {
	EngineA      string
	EngineB      string
	Games        int
	MoveTime     time.Duration
	Grace        time.Duration
	StrictTime   bool
	Concurrency  int
	OpeningPlies int
	Rows         int
	Cols         int
	MaxDepth     int
	KeepComplete bool
	CPUProfile   string
	LogLevel     string
}

var cfg Config

func main() {
	flag.StringVar(&cfg.EngineA, "a", bot.StrategyMinimax, "First strategy")
	flag.StringVar(&cfg.EngineB, "b", bot.StrategyGreedy, "Second strategy")
	flag.IntVar(&cfg.Games, "games", 20, "Number of games, played in colour-swapped pairs")
	flag.DurationVar(&cfg.MoveTime, "movetime", 200*time.Millisecond, "Time budget per move")
	flag.DurationVar(&cfg.Grace, "grace", 100*time.Millisecond, "Time past the budget before a move counts as late")
	flag.BoolVar(&cfg.StrictTime, "strict", false, "Forfeit late moves instead of playing them")
	flag.IntVar(&cfg.Concurrency, "concurrency", 4, "Games played in parallel")
	flag.IntVar(&cfg.OpeningPlies, "openings", 2, "Random plies played before the strategies move")
	flag.IntVar(&cfg.Rows, "rows", domain.Rows, "Board rows")
	flag.IntVar(&cfg.Cols, "cols", domain.Columns, "Board columns")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", 0, "Deepening cap for minimax, 0 for none")
	flag.BoolVar(&cfg.KeepComplete, "keepcomplete", false, "Ignore the choice of a depth cut short by the clock")
	flag.StringVar(&cfg.CPUProfile, "cpuprofile", "", "Write a CPU profile into this directory")
	flag.StringVar(&cfg.LogLevel, "loglevel", "info", "Log level")
	flag.Parse()

	config.SetupLogger(cfg.LogLevel, true)

	if cfg.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.CPUProfile), profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("arena failed")
		stop()
		os.Exit(1)
	}
}
