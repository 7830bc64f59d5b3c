package bot

import (
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// boardFromRows parses rows listed top first: X is player 1, O player 2.
func boardFromRows(t *testing.T, rows ...string) *domain.Board {
	t.Helper()
	grid := make([][]int, len(rows))
	for r, line := range rows {
		grid[r] = make([]int, len(line))
		for c, ch := range line {
			switch ch {
			case 'X':
				grid[r][c] = int(domain.Player1)
			case 'O':
				grid[r][c] = int(domain.Player2)
			}
		}
	}
	b, err := domain.FromGrid(grid)
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	return b
}

// testArbiter records commits. It reports time up when forced, once the
// deadline has passed, or after budget calls to IsTimeUp.
type testArbiter struct {
	timeUp   bool
	deadline time.Time
	budget   int
	calls    int
	moves    []int
}

func (a *testArbiter) IsTimeUp() bool {
	a.calls++
	if a.budget > 0 && a.calls > a.budget {
		a.timeUp = true
	}
	if !a.deadline.IsZero() && !time.Now().Before(a.deadline) {
		a.timeUp = true
	}
	return a.timeUp
}

func (a *testArbiter) SetMove(col int) {
	a.moves = append(a.moves, col)
}

func (a *testArbiter) last() (int, bool) {
	if len(a.moves) == 0 {
		return -1, false
	}
	return a.moves[len(a.moves)-1], true
}

func initMinimax(t *testing.T, self domain.PlayerID, opts ...Option) *Minimax {
	t.Helper()
	m := NewMinimax(opts...)
	if err := m.Init(self, time.Second, domain.Rows, domain.Columns); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}
