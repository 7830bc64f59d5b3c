package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// Greedy is the one-ply baseline: play each column, count our own lines,
// take the first best.
type Greedy struct {
	self   domain.PlayerID
	logger zerolog.Logger
}

func NewGreedy() *Greedy {
	return &Greedy{logger: log.With().Str("component", "greedy").Logger()}
}

func (g *Greedy) Name() string {
	return domain.GetBotName(StrategyGreedy)
}

func (g *Greedy) Init(self domain.PlayerID, perMove time.Duration, rows, cols int) error {
	if !self.IsValid() {
		return domain.ErrInvalidPlayer
	}
	g.self = self
	return nil
}

func (g *Greedy) CalcMove(ctx context.Context, board Board, lastOpponentCol int, arb Arbitrator) error {
	if !g.self.IsValid() {
		return ErrNotInitialized
	}
	if board.IsFull() {
		return domain.ErrBoardFull
	}

	if col, ok := SelectBest(g.Scores(board)); ok {
		arb.SetMove(col)
	}
	return nil
}

// Scores returns the own-line count after each legal column.
func (g *Greedy) Scores(board Board) []int {
	scores := invalidScores(board.NumCols())

	for col := range scores {
		if !board.IsValidMove(col) {
			continue
		}
		release, err := play(board, col, g.self)
		if err != nil {
			g.logger.Error().Err(err).Int("column", col).Msg("legal column refused a move")
			continue
		}
		scores[col] = CountLines(board, g.self)
		release()
	}

	return scores
}
