package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// Minimax is the iterative-deepening minimax player. It has no pruning, no
// move ordering and no win detection: a completed line only matters through
// the leaf score, and recursion stops on depth, a full board or the clock.
type Minimax struct {
	self     domain.PlayerID
	opponent domain.PlayerID
	perMove  time.Duration
	rows     int
	cols     int

	maxDepth         int
	keepLastComplete bool
	progress         func(DepthReport)
	logger           zerolog.Logger

	nodes int64
}

type Option func(*Minimax)

// WithMaxDepth caps the deepening loop. Zero means only the number of empty
// cells limits it.
func WithMaxDepth(depth int) Option {
	return func(m *Minimax) { m.maxDepth = depth }
}

// WithKeepLastCompleteDepth stops a depth that ran out of time from
// replacing the move chosen by the last depth that finished. Off by default:
// an interrupted depth commits whatever its mixed scores select.
func WithKeepLastCompleteDepth(keep bool) Option {
	return func(m *Minimax) { m.keepLastComplete = keep }
}

// WithProgress registers a callback run after every depth.
func WithProgress(fn func(DepthReport)) Option {
	return func(m *Minimax) { m.progress = fn }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Minimax) { m.logger = logger }
}

func NewMinimax(opts ...Option) *Minimax {
	m := &Minimax{
		rows:   domain.Rows,
		cols:   domain.Columns,
		logger: log.With().Str("component", "minimax").Logger(),
	}
	m.Apply(opts...)
	return m
}

// Apply sets options on an existing player, e.g. one built by the registry.
func (m *Minimax) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(m)
	}
}

func (m *Minimax) Name() string {
	return domain.GetBotName(StrategyMinimax)
}

func (m *Minimax) Init(self domain.PlayerID, perMove time.Duration, rows, cols int) error {
	if !self.IsValid() {
		return domain.ErrInvalidPlayer
	}
	m.self = self
	m.opponent = self.Opponent()
	m.perMove = perMove
	m.rows = rows
	m.cols = cols
	return nil
}

func (m *Minimax) CalcMove(ctx context.Context, board Board, lastOpponentCol int, arb Arbitrator) error {
	res, err := m.Search(ctx, board, arb)
	if err != nil {
		return err
	}

	m.logger.Debug().
		Int("opponent_column", lastOpponentCol).
		Int("column", res.Column).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("move calculated")
	return nil
}

// minimax scores the position under the given depth. The budget is polled
// before anything else, so a frame that stops early owes no undo.
func (m *Minimax) minimax(board Board, depth int, maximizing bool, bud budget) int {
	m.nodes++

	if depth == 0 || board.IsFull() || bud.expired() {
		return Differential(board, m.self)
	}

	cols := board.NumCols()

	if maximizing {
		bestScore := scoreFloor
		for col := 0; col < cols; col++ {
			if !board.IsValidMove(col) {
				continue
			}
			if score, ok := m.child(board, col, m.self, depth-1, false, bud); ok {
				bestScore = max(bestScore, score)
			}
		}
		return bestScore
	}

	bestScore := scoreCeiling
	for col := 0; col < cols; col++ {
		if !board.IsValidMove(col) {
			continue
		}
		if score, ok := m.child(board, col, m.opponent, depth-1, true, bud); ok {
			bestScore = min(bestScore, score)
		}
	}
	return bestScore
}

// child plays col for side, searches the reply layer and takes the move back.
func (m *Minimax) child(board Board, col int, side domain.PlayerID, depth int, maximizing bool, bud budget) (int, bool) {
	release, err := play(board, col, side)
	if err != nil {
		m.logger.Error().Err(err).Int("column", col).Msg("legal column refused a move")
		return 0, false
	}
	defer release()

	return m.minimax(board, depth, maximizing, bud), true
}
