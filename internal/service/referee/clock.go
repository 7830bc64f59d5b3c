package referee

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Clock is the per-move time controller handed to a strategy. It reports
// when the move budget is spent and records the column the strategy commits.
type Clock struct {
	limit    time.Duration
	start    time.Time
	deadline time.Time
	timeUp   atomic.Bool
	move     atomic.Int64 // committed column + 1, zero when nothing committed
	commits  atomic.Int64

	mu       sync.Mutex
	onCommit func(col int)
	now      func() time.Time
}

// NewClock returns a stopped clock. A limit of zero or less is spent as soon
// as the clock starts.
func NewClock(limit time.Duration) *Clock {
	return &Clock{limit: limit, now: time.Now}
}

// Start resets the commit and begins the countdown.
func (c *Clock) Start() {
	c.start = c.now()
	c.deadline = c.start.Add(c.limit)
	c.timeUp.Store(c.limit <= 0)
	c.move.Store(0)
	c.commits.Store(0)
}

func (c *Clock) IsTimeUp() bool {
	if c.timeUp.Load() {
		return true
	}
	if !c.now().Before(c.deadline) {
		c.timeUp.Store(true)
		return true
	}
	return false
}

// Expire spends the budget immediately.
func (c *Clock) Expire() {
	c.timeUp.Store(true)
}

// SetMove records col as the move for this turn. The last call wins and the
// column is not validated here.
func (c *Clock) SetMove(col int) {
	c.move.Store(int64(col) + 1)
	c.commits.Add(1)

	c.mu.Lock()
	fn := c.onCommit
	c.mu.Unlock()
	if fn != nil {
		fn(col)
	}
}

// OnCommit registers a hook run on every SetMove.
func (c *Clock) OnCommit(fn func(col int)) {
	c.mu.Lock()
	c.onCommit = fn
	c.mu.Unlock()
}

// Move returns the committed column, if any.
func (c *Clock) Move() (int, bool) {
	v := c.move.Load()
	if v == 0 {
		return -1, false
	}
	return int(v - 1), true
}

// Commits counts SetMove calls since Start.
func (c *Clock) Commits() int {
	return int(c.commits.Load())
}

func (c *Clock) Limit() time.Duration {
	return c.limit
}

func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// Overran reports whether more than limit+grace has passed since Start.
func (c *Clock) Overran(grace time.Duration) bool {
	return c.Elapsed() > c.limit+grace
}

// Context derives a context that is cancelled at the clock's deadline. If
// parent ends first the clock is expired too, so a strategy polling only
// IsTimeUp still stops.
func (c *Clock) Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithDeadline(parent, c.deadline)
	stop := context.AfterFunc(parent, c.Expire)
	return ctx, func() {
		stop()
		cancel()
	}
}
