package main

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/referee"
)

func TestComputeStat(t *testing.T) {
	even := computeStat(5, 5, 2)
	if even.winningFraction != 0.5 || math.Abs(even.eloDifference) > 1e-9 || even.los != 0.5 {
		t.Fatalf("even score misjudged: %+v", even)
	}
	if computeStat(8, 2, 0).eloDifference <= 0 {
		t.Fatalf("a winning record should be a positive difference")
	}
	if s := computeStat(0, 0, 0); s.winningFraction != 0.5 {
		t.Fatalf("no games should be neutral, got %+v", s)
	}
}

func TestScoreForAFollowsColours(t *testing.T) {
	won := &referee.Result{Winner: domain.Player1}
	if scoreForA(gameResult{gameInfo: gameInfo{engineAFirst: true}, match: won}) != gameResultAWins {
		t.Fatalf("A moved first and player 1 won")
	}
	if scoreForA(gameResult{gameInfo: gameInfo{engineAFirst: false}, match: won}) != gameResultBWins {
		t.Fatalf("B moved first and player 1 won")
	}
	if scoreForA(gameResult{match: &referee.Result{}}) != gameResultDraw {
		t.Fatalf("no winner is a draw")
	}
}

func TestRandomOpeningIsLegalAndShort(t *testing.T) {
	for i := 0; i < 20; i++ {
		opening := randomOpening(domain.Rows, domain.Columns, 50)
		if len(opening) != 2*(domain.ToWin-1) {
			t.Fatalf("expected the opening capped at %d plies, got %v", 2*(domain.ToWin-1), opening)
		}
		g := domain.NewGame(domain.Rows, domain.Columns)
		for _, col := range opening {
			if _, err := g.MakeMove(g.CurrentPlayer, col); err != nil {
				t.Fatalf("opening %v not playable: %v", opening, err)
			}
		}
		if g.IsFinished() {
			t.Fatalf("opening %v already decided the game", opening)
		}
	}
}

func TestRunPlaysEveryGame(t *testing.T) {
	cfg := Config{
		EngineA:      bot.StrategyGreedy,
		EngineB:      bot.StrategyRandom,
		Games:        5,
		MoveTime:     20 * time.Millisecond,
		Grace:        time.Second,
		Concurrency:  2,
		OpeningPlies: 2,
		Rows:         domain.Rows,
		Cols:         domain.Columns,
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	cfg.EngineB = "nobody"
	if err := run(context.Background(), cfg); err == nil {
		t.Fatalf("expected an unknown strategy to fail")
	}
}

func TestEloSkippedOnSweep(t *testing.T) {
	for _, s := range []GameStatistics{computeStat(3, 0, 0), computeStat(0, 4, 0)} {
		if _, ok := s.elo(); ok {
			t.Fatalf("a clean sweep has no finite Elo difference: %+v", s)
		}
	}
	if elo, ok := computeStat(3, 1, 0).elo(); !ok || elo <= 0 || math.IsInf(elo, 0) {
		t.Fatalf("expected a finite positive difference, got %v %v", elo, ok)
	}
}

func TestRunRejectsEmptyBoard(t *testing.T) {
	cfg := Config{EngineA: bot.StrategyGreedy, EngineB: bot.StrategyRandom, Games: 2, Cols: domain.Columns}
	if err := run(context.Background(), cfg); !errors.Is(err, domain.ErrBoardSize) {
		t.Fatalf("expected ErrBoardSize, got %v", err)
	}
}
