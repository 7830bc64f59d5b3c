package bot

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// Board is what a strategy needs from the grid it is handed. Move and Unmove
// must be used in strict stack order.
type Board interface {
	IsValidMove(col int) bool
	Move(col int, side domain.PlayerID) (int, error)
	Unmove(col int, side domain.PlayerID) error
	Get(row, col int) domain.PlayerID
	NumRows() int
	NumCols() int
	NumEmptyCells() int
	IsFull() bool
}

// Arbitrator reports the turn clock and records the committed column.
// IsTimeUp never goes back to false once it has returned true, and the last
// SetMove before CalcMove returns wins.
type Arbitrator interface {
	IsTimeUp() bool
	SetMove(col int)
}

// Strategy is a player the referee can drive. Init is called once before any
// CalcMove. CalcMove must commit a legal column through arb before returning.
type Strategy interface {
	Name() string
	Init(self domain.PlayerID, perMove time.Duration, rows, cols int) error
	CalcMove(ctx context.Context, board Board, lastOpponentCol int, arb Arbitrator) error
}

type Factory func() Strategy

const (
	ErrUnknownStrategy domain.Error = "unknown strategy"
	ErrNotInitialized  domain.Error = "strategy used before Init"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a strategy available by name. It panics on a duplicate
// name or a nil factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("bot: Register factory is nil for " + name)
	}
	if _, dup := registry[name]; dup {
		panic("bot: Register called twice for " + name)
	}
	registry[name] = factory
}

// New returns a fresh, uninitialised strategy.
func New(name string) (Strategy, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(), nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(StrategyMinimax, func() Strategy { return NewMinimax() })
	Register(StrategyGreedy, func() Strategy { return NewGreedy() })
	Register(StrategyRandom, func() Strategy { return NewRandom() })
}
