package referee

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/minimax/pkg/uid"
)

const (
	ErrTimeExceeded    domain.Error = "move time exceeded"
	ErrNoMoveCommitted domain.Error = "no move committed"
	ErrIllegalCommit   domain.Error = "committed column is not playable"
	ErrBoardTampered   domain.Error = "strategy left the board modified"
)

const (
	ReasonConnectFour  = "connect_four"
	ReasonDraw         = "draw"
	ReasonTimeExceeded = "time_exceeded"
	ReasonNoMove       = "no_move"
	ReasonIllegalMove  = "illegal_move"
)

type Config struct {
	Rows     int
	Cols     int
	MoveTime time.Duration
	// Grace is how far past MoveTime a CalcMove may return before the
	// move is flagged as over time.
	Grace time.Duration
	// StrictTime forfeits a player whose move was flagged over time instead
	// of playing the committed column anyway.
	StrictTime bool
	// Opening columns are played alternately before the strategies move.
	Opening []int
}

func DefaultConfig() Config {
	return Config{
		Rows:     domain.Rows,
		Cols:     domain.Columns,
		MoveTime: time.Second,
		Grace:    100 * time.Millisecond,
	}
}

// MoveRecord is one played move. Commits counts the SetMove calls behind
// it; a deepening search commits once per depth.
type MoveRecord struct {
	Player       domain.PlayerID `json:"player"`
	Column       int             `json:"column"`
	Row          int             `json:"row"`
	Elapsed      time.Duration   `json:"elapsed"`
	TimeExceeded bool            `json:"timeExceeded"`
	Opening      bool            `json:"opening"`
	Commits      int             `json:"commits"`
}

type Result struct {
	MatchID string
	Names   [2]string
	Winner  domain.PlayerID // Empty for a draw
	Reason  string
	Moves   []MoveRecord
	Board   *domain.Board
}

// Play runs one game between first (Player1) and second (Player2).
// A strategy returning an error aborts the match with that error; timing
// and commit problems end the game as a forfeit instead.
func Play(ctx context.Context, first, second bot.Strategy, cfg Config) (*Result, error) {
	if cfg.Rows < 1 || cfg.Cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrBoardSize, cfg.Rows, cfg.Cols)
	}
	game := domain.NewGame(cfg.Rows, cfg.Cols)
	players := map[domain.PlayerID]bot.Strategy{
		domain.Player1: first,
		domain.Player2: second,
	}

	res := &Result{
		MatchID: uid.GenerateMatchID(),
		Names:   [2]string{first.Name(), second.Name()},
		Board:   game.Board,
	}
	logger := log.With().Str("component", "referee").Str("match_id", res.MatchID).Logger()

	for _, id := range []domain.PlayerID{domain.Player1, domain.Player2} {
		err := players[id].Init(id, cfg.MoveTime, game.Board.NumRows(), game.Board.NumCols())
		if err != nil {
			return nil, fmt.Errorf("init %s: %w", players[id].Name(), err)
		}
	}

	for i, col := range cfg.Opening {
		if game.IsFinished() {
			break
		}
		player := game.CurrentPlayer
		row, err := game.MakeMove(player, col)
		if err != nil {
			return nil, fmt.Errorf("opening move %d (column %d): %w", i, col, err)
		}
		res.Moves = append(res.Moves, MoveRecord{Player: player, Column: col, Row: row, Opening: true})
	}

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		player := game.CurrentPlayer
		strategy := players[player]
		before := game.Board.Clone()

		clock := NewClock(cfg.MoveTime)
		clock.Start()
		moveCtx, cancel := clock.Context(ctx)
		err := strategy.CalcMove(moveCtx, game.Board, game.LastColumn, clock)
		cancel()
		elapsed := clock.Elapsed()

		if err != nil {
			return nil, fmt.Errorf("%s (player %d): %w", strategy.Name(), player, err)
		}
		if !game.Board.Equal(before) {
			return nil, fmt.Errorf("%s (player %d): %w", strategy.Name(), player, ErrBoardTampered)
		}

		exceeded := clock.Overran(cfg.Grace)
		col, ok := clock.Move()

		var cause error
		switch {
		case !ok:
			cause = ErrNoMoveCommitted
			forfeit(res, game, player, ReasonNoMove)
		case !game.Board.IsValidMove(col):
			cause = fmt.Errorf("%w: column %d", ErrIllegalCommit, col)
			forfeit(res, game, player, ReasonIllegalMove)
		case exceeded && cfg.StrictTime:
			cause = ErrTimeExceeded
			forfeit(res, game, player, ReasonTimeExceeded)
		}
		if cause != nil {
			logger.Warn().
				Err(cause).
				Str("player", strategy.Name()).
				Str("reason", res.Reason).
				Dur("elapsed", elapsed).
				Dur("limit", clock.Limit()).
				Msg("player forfeited")
			return res, nil
		}

		if exceeded {
			logger.Warn().
				Str("player", strategy.Name()).
				Dur("elapsed", elapsed).
				Err(ErrTimeExceeded).
				Msg("move over time, playing committed column")
		}

		row, err := game.MakeMove(player, col)
		if err != nil {
			return nil, fmt.Errorf("applying column %d for %s: %w", col, strategy.Name(), err)
		}
		res.Moves = append(res.Moves, MoveRecord{
			Player:       player,
			Column:       col,
			Row:          row,
			Elapsed:      elapsed,
			TimeExceeded: exceeded,
			Commits:      clock.Commits(),
		})
	}

	res.Winner = game.Winner
	if game.Status == domain.StatusWon {
		res.Reason = ReasonConnectFour
	} else {
		res.Reason = ReasonDraw
	}

	logger.Info().
		Str("player1", res.Names[0]).
		Str("player2", res.Names[1]).
		Int("winner", int(res.Winner)).
		Str("reason", res.Reason).
		Int("moves", len(res.Moves)).
		Msg("match finished")
	return res, nil
}

func forfeit(res *Result, game *domain.Game, loser domain.PlayerID, reason string) {
	res.Winner = loser.Opponent()
	res.Reason = reason
	game.Status = domain.StatusWon
	game.Winner = res.Winner
}
