package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/referee"
)

type gameInfo struct {
	opening      []int
	engineAFirst bool
	gameNumber   int
}

type gameResult struct {
	gameInfo gameInfo
	match    *referee.Result
}

func run(ctx context.Context, cfg Config) error {
	log.Info().
		Int("num_cpu", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("concurrency", cfg.Concurrency).
		Str("a", cfg.EngineA).
		Str("b", cfg.EngineB).
		Dur("movetime", cfg.MoveTime).
		Msg("arena started")
	defer log.Info().Msg("arena finished")

	// Fail fast on bad settings before any goroutine starts.
	if cfg.Rows < 1 || cfg.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", domain.ErrBoardSize, cfg.Rows, cfg.Cols)
	}
	for _, name := range []string{cfg.EngineA, cfg.EngineB} {
		if _, err := bot.New(name); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	gameInfos := make(chan gameInfo)
	gameResults := make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, cfg, gameInfos)
	})

	g.Go(func() error {
		return showResults(ctx, cfg, gameResults)
	})

	wg := &sync.WaitGroup{}
	for i := 0; i < max(1, cfg.Concurrency); i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	return g.Wait()
}

func playGames(ctx context.Context, cfg Config, gameInfos <-chan gameInfo, gameResults chan<- gameResult) error {
	for info := range gameInfos {
		res, err := playGame(ctx, cfg, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- gameResult{gameInfo: info, match: res}:
		}
	}
	return nil
}

// playGame builds fresh strategies so no search state crosses games.
func playGame(ctx context.Context, cfg Config, info gameInfo) (*referee.Result, error) {
	engineA, err := newStrategy(cfg.EngineA, cfg)
	if err != nil {
		return nil, err
	}
	engineB, err := newStrategy(cfg.EngineB, cfg)
	if err != nil {
		return nil, err
	}

	first, second := engineA, engineB
	if !info.engineAFirst {
		first, second = engineB, engineA
	}

	return referee.Play(ctx, first, second, referee.Config{
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		MoveTime:   cfg.MoveTime,
		Grace:      cfg.Grace,
		StrictTime: cfg.StrictTime,
		Opening:    info.opening,
	})
}

func newStrategy(name string, cfg Config) (bot.Strategy, error) {
	strategy, err := bot.New(name)
	if err != nil {
		return nil, err
	}
	if m, ok := strategy.(*bot.Minimax); ok {
		m.Apply(bot.WithMaxDepth(cfg.MaxDepth), bot.WithKeepLastCompleteDepth(cfg.KeepComplete))
	}
	return strategy, nil
}
