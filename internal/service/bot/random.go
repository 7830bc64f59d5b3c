package bot

import (
	"context"
	"time"

	"lukechampine.com/frand"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// Random plays a uniformly random legal column.
type Random struct {
	self domain.PlayerID
}

func NewRandom() *Random {
	return &Random{}
}

func (r *Random) Name() string {
	return domain.GetBotName(StrategyRandom)
}

func (r *Random) Init(self domain.PlayerID, perMove time.Duration, rows, cols int) error {
	if !self.IsValid() {
		return domain.ErrInvalidPlayer
	}
	r.self = self
	return nil
}

func (r *Random) CalcMove(ctx context.Context, board Board, lastOpponentCol int, arb Arbitrator) error {
	if !r.self.IsValid() {
		return ErrNotInitialized
	}

	validColumns := ValidMoves(board)
	if len(validColumns) == 0 {
		return domain.ErrBoardFull
	}

	arb.SetMove(validColumns[frand.Intn(len(validColumns))])
	return nil
}

// ValidMoves lists the playable columns left to right.
func ValidMoves(board Board) []int {
	validMoves := []int{}
	for col := 0; col < board.NumCols(); col++ {
		if board.IsValidMove(col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}
