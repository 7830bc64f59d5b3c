package bot

import (
	"math"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

const (
	// ScoreInvalid marks a column that cannot be played. It sits below every
	// score a search can return so the selector never picks it.
	ScoreInvalid = math.MinInt32

	// accumulator starts for the maximizing and minimizing layers
	scoreFloor   = -1 << 30
	scoreCeiling = 1 << 30
)

// CountLines counts every ToWin-long straight line (horizontal, vertical and
// both diagonals) whose cells all belong to side. Overlapping lines are each
// counted, so five in a row scores two.
func CountLines(b Board, side domain.PlayerID) int {
	const n = domain.ToWin
	rows, cols := b.NumRows(), b.NumCols()
	score := 0

	// horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-n; c++ {
			if ownsLine(b, side, r, c, 0, 1) {
				score++
			}
		}
	}

	// vertical
	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-n; r++ {
			if ownsLine(b, side, r, c, 1, 0) {
				score++
			}
		}
	}

	// diagonal, rising to the right
	for c := 0; c <= cols-n; c++ {
		for r := 0; r <= rows-n; r++ {
			if ownsLine(b, side, r, c, 1, 1) {
				score++
			}
		}
	}

	// diagonal, falling to the right
	for c := 0; c <= cols-n; c++ {
		for r := rows - 1; r >= n-1; r-- {
			if ownsLine(b, side, r, c, -1, 1) {
				score++
			}
		}
	}

	return score
}

func ownsLine(b Board, side domain.PlayerID, row, col, dRow, dCol int) bool {
	for k := 0; k < domain.ToWin; k++ {
		if b.Get(row+k*dRow, col+k*dCol) != side {
			return false
		}
	}
	return true
}

// Differential is the minimax leaf score: own lines minus opponent lines.
func Differential(b Board, self domain.PlayerID) int {
	return CountLines(b, self) - CountLines(b, self.Opponent())
}
