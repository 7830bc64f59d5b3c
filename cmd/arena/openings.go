package main

import (
	"context"

	"lukechampine.com/frand"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
)

// randomOpening picks plies legal columns from the empty board. Plies are
// capped below the length at which a side could already hold a line.
func randomOpening(rows, cols, plies int) []int {
	plies = min(plies, 2*(domain.ToWin-1))

	board := domain.NewBoard(rows, cols)
	player := domain.Player1
	opening := make([]int, 0, plies)
	for i := 0; i < plies; i++ {
		valid := bot.ValidMoves(board)
		if len(valid) == 0 {
			break
		}
		col := valid[frand.Intn(len(valid))]
		if _, err := board.Move(col, player); err != nil {
			break
		}
		opening = append(opening, col)
		player = player.Opponent()
	}
	return opening
}

// loadOpenings sends every opening twice, once with each strategy moving
// first.
func loadOpenings(ctx context.Context, cfg Config, gameInfos chan<- gameInfo) error {
	for i := 0; 2*i < cfg.Games; i++ {
		opening := randomOpening(cfg.Rows, cfg.Cols, cfg.OpeningPlies)
		for _, aFirst := range []bool{true, false} {
			number := 1 + 2*i
			if !aFirst {
				number++
			}
			if number > cfg.Games {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- gameInfo{opening: opening, engineAFirst: aFirst, gameNumber: number}:
			}
		}
	}
	return nil
}
