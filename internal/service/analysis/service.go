package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/referee"
	"github.com/iamasit07/4-in-a-row/minimax/pkg/uid"
)

// ErrNoMove means the clock ran out before the strategy committed anything.
const ErrNoMove domain.Error = "no move found within the time budget"

type Options struct {
	// MaxRows and MaxCols bound the boards accepted; zero means no bound.
	MaxRows               int
	MaxCols               int
	DefaultMoveTime       time.Duration
	MaxMoveTime           time.Duration
	MaxDepth              int
	KeepLastCompleteDepth bool
	CacheTTL              time.Duration
}

// Request asks for one move. Board rows are listed top row first.
type Request struct {
	Board      [][]int
	Player     domain.PlayerID
	Strategy   string
	MoveTime   time.Duration
	LastColumn int
}

type Result struct {
	RequestID string
	Strategy  string
	Column    int
	Depth     int
	Nodes     int64
	Elapsed   time.Duration
	Cached    bool
	Depths    []bot.DepthReport
	// Commits lists every column the strategy committed, in order. The last
	// one is Column.
	Commits []int
}

// Service runs one strategy per request against a request-scoped clock.
type Service struct {
	opts  Options
	cache CacheRepository
}

func NewService(opts Options, cache CacheRepository) *Service {
	if opts.DefaultMoveTime <= 0 {
		opts.DefaultMoveTime = time.Second
	}
	if opts.MaxMoveTime <= 0 {
		opts.MaxMoveTime = opts.DefaultMoveTime
	}
	return &Service{opts: opts, cache: cache}
}

// Analyze computes a move for req. observe, when not nil, receives every
// depth report of a deepening search as it completes.
func (s *Service) Analyze(ctx context.Context, req Request, observe func(bot.DepthReport)) (*Result, error) {
	board, err := domain.FromGrid(req.Board)
	if err != nil {
		return nil, err
	}
	if s.tooLarge(board) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", domain.ErrBoardSize,
			board.NumRows(), board.NumCols(), s.opts.MaxRows, s.opts.MaxCols)
	}
	if !req.Player.IsValid() {
		return nil, domain.ErrInvalidPlayer
	}
	if board.IsFull() {
		return nil, domain.ErrBoardFull
	}

	name := req.Strategy
	if name == "" {
		name = bot.StrategyMinimax
	}
	moveTime := s.moveTime(req.MoveTime)

	requestID, err := uid.GenerateRequestID()
	if err != nil {
		return nil, err
	}
	logger := log.With().Str("component", "analysis").Str("request_id", requestID).Logger()

	res := &Result{RequestID: requestID, Strategy: name, Column: -1}
	key := s.cacheKey(name, req.Player, moveTime, board)

	if cached, ok := s.lookup(ctx, key, board); ok {
		res.Column = cached.Column
		res.Depth = cached.Depth
		res.Nodes = cached.Nodes
		res.Cached = true
		logger.Debug().Str("key", key).Int("column", res.Column).Msg("cache hit")
		return res, nil
	}

	strategy, err := bot.New(name)
	if err != nil {
		return nil, err
	}
	if m, ok := strategy.(*bot.Minimax); ok {
		m.Apply(
			bot.WithMaxDepth(s.opts.MaxDepth),
			bot.WithKeepLastCompleteDepth(s.opts.KeepLastCompleteDepth),
			bot.WithLogger(logger),
			bot.WithProgress(func(r bot.DepthReport) {
				res.Depths = append(res.Depths, r)
				if r.Committed {
					res.Depth = r.Depth
				}
				res.Nodes += r.Nodes
				if observe != nil {
					observe(r)
				}
			}),
		)
	}

	if err := strategy.Init(req.Player, moveTime, board.NumRows(), board.NumCols()); err != nil {
		return nil, err
	}

	clock := referee.NewClock(moveTime)
	clock.OnCommit(func(col int) {
		res.Commits = append(res.Commits, col)
		logger.Trace().Int("column", col).Msg("move committed")
	})
	clock.Start()
	searchCtx, cancel := clock.Context(ctx)
	defer cancel()

	if err := strategy.CalcMove(searchCtx, board, req.LastColumn, clock); err != nil {
		return nil, fmt.Errorf("%s: %w", strategy.Name(), err)
	}
	res.Elapsed = clock.Elapsed()

	col, ok := clock.Move()
	if !ok {
		logger.Warn().Dur("budget", clock.Limit()).Msg("no move committed before the clock ran out")
		return nil, ErrNoMove
	}
	if !board.IsValidMove(col) {
		return nil, fmt.Errorf("%w: column %d", referee.ErrIllegalCommit, col)
	}
	res.Column = col

	if name != bot.StrategyRandom {
		s.store(ctx, key, res)
	}

	logger.Info().
		Str("strategy", name).
		Int("player", int(req.Player)).
		Int("column", res.Column).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("move analyzed")
	return res, nil
}

func (s *Service) tooLarge(board *domain.Board) bool {
	return (s.opts.MaxRows > 0 && board.NumRows() > s.opts.MaxRows) ||
		(s.opts.MaxCols > 0 && board.NumCols() > s.opts.MaxCols)
}

func (s *Service) moveTime(requested time.Duration) time.Duration {
	if requested <= 0 {
		return s.opts.DefaultMoveTime
	}
	return min(requested, s.opts.MaxMoveTime)
}

// Strategies lists the registered strategy names.
func (s *Service) Strategies() []string {
	return bot.Names()
}
