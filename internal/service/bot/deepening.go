package bot

import (
	"context"
	"time"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// DepthReport describes one pass of the deepening loop.
type DepthReport struct {
	Depth     int           `json:"depth"`
	Scores    []int         `json:"scores"`
	Column    int           `json:"column"`
	Nodes     int64         `json:"nodes"`
	Elapsed   time.Duration `json:"elapsed"`
	Complete  bool          `json:"complete"`
	Committed bool          `json:"committed"`
}

// SearchResult is what a whole CalcMove produced. Column is -1 when the
// clock ran out before any depth could be committed.
type SearchResult struct {
	Column  int
	Depth   int
	Nodes   int64
	Elapsed time.Duration
	Reports []DepthReport
}

// Search runs the deepening loop: depth 1, 2, 3... until the budget is spent
// or the depth would exceed the empty cells left. Each depth scores every
// column from scratch and commits its choice through arb.
func (m *Minimax) Search(ctx context.Context, board Board, arb Arbitrator) (SearchResult, error) {
	res := SearchResult{Column: -1}

	if !m.self.IsValid() {
		return res, ErrNotInitialized
	}
	if board.IsFull() {
		return res, domain.ErrBoardFull
	}

	start := time.Now()
	m.nodes = 0
	bud := newBudget(ctx, arb)

	for depth := 1; !bud.expired() && depth <= board.NumEmptyCells(); depth++ {
		if m.maxDepth > 0 && depth > m.maxDepth {
			break
		}

		nodesBefore := m.nodes
		scores := m.scanRoot(board, depth, bud)
		complete := !bud.expired()

		report := DepthReport{
			Depth:    depth,
			Scores:   scores,
			Column:   -1,
			Nodes:    m.nodes - nodesBefore,
			Elapsed:  time.Since(start),
			Complete: complete,
		}

		if col, ok := SelectBest(scores); ok {
			report.Column = col
			if complete || !m.keepLastComplete || res.Column < 0 {
				arb.SetMove(col)
				report.Committed = true
				res.Column = col
				res.Depth = depth
			}
		}

		m.logger.Debug().
			Int("depth", depth).
			Ints("scores", scores).
			Int("column", report.Column).
			Bool("complete", complete).
			Bool("committed", report.Committed).
			Int64("nodes", report.Nodes).
			Msg("depth finished")

		res.Reports = append(res.Reports, report)
		if m.progress != nil {
			m.progress(report)
		}
	}

	res.Nodes = m.nodes
	res.Elapsed = time.Since(start)
	return res, nil
}

// RootScores runs a single root scan at depth and returns the per-column
// scores, ScoreInvalid for full columns.
func (m *Minimax) RootScores(ctx context.Context, board Board, depth int, arb Arbitrator) ([]int, error) {
	if !m.self.IsValid() {
		return nil, ErrNotInitialized
	}
	return m.scanRoot(board, depth, newBudget(ctx, arb)), nil
}

// scanRoot plays each legal column for our side and searches the opponent's
// reply layer at depth-1. The clock is not checked between columns, so a
// depth that runs out of time still scores every column, the later ones as
// bare leaves.
func (m *Minimax) scanRoot(board Board, depth int, bud budget) []int {
	scores := invalidScores(board.NumCols())

	for col := range scores {
		if !board.IsValidMove(col) {
			continue
		}
		if score, ok := m.child(board, col, m.self, depth-1, false, bud); ok {
			scores[col] = score
		}
	}

	return scores
}
