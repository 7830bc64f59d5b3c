package bot

import (
	"context"
	"fmt"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// play applies a move and hands back the function that takes it back.
// Callers defer the release so the board is restored on every exit path,
// panics included. Releasing twice is a no-op.
func play(b Board, col int, side domain.PlayerID) (func(), error) {
	if _, err := b.Move(col, side); err != nil {
		return nil, err
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		if err := b.Unmove(col, side); err != nil {
			panic(fmt.Errorf("bot: restoring column %d: %w", col, err))
		}
	}, nil
}

// budget is the search deadline, passed down every recursive call. It is
// spent once the context is done or the arbitrator says time is up, and it
// stays spent.
type budget struct {
	ctx   context.Context
	arb   Arbitrator
	spent *bool
}

func newBudget(ctx context.Context, arb Arbitrator) budget {
	return budget{ctx: ctx, arb: arb, spent: new(bool)}
}

func (b budget) expired() bool {
	if *b.spent {
		return true
	}
	if b.ctx.Err() != nil || b.arb.IsTimeUp() {
		*b.spent = true
	}
	return *b.spent
}
