package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/bot"
)

type memCache struct {
	data map[string]string
	sets int
	dels int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.sets++
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	default:
		return errors.New("unsupported value type")
	}
	return nil
}

func (m *memCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			m.dels++
			delete(m.data, key)
		}
	}
	return nil
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

var openThree = [][]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{1, 1, 1, 0, 0, 0, 0},
}

func testOptions() Options {
	return Options{
		DefaultMoveTime: time.Second,
		MaxMoveTime:     2 * time.Second,
		MaxDepth:        3,
		CacheTTL:        time.Minute,
	}
}

func TestAnalyzeMinimaxStreamsDepths(t *testing.T) {
	svc := NewService(testOptions(), nil)

	var observed []int
	res, err := svc.Analyze(context.Background(), Request{
		Board:      openThree,
		Player:     domain.Player1,
		LastColumn: -1,
	}, func(r bot.DepthReport) { observed = append(observed, r.Depth) })
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Strategy != bot.StrategyMinimax || res.Column != 3 {
		t.Fatalf("expected minimax to play column 3, got %s column %d", res.Strategy, res.Column)
	}
	if res.Depth != 3 || len(res.Depths) != 3 || len(observed) != 3 {
		t.Fatalf("expected three depths, got depth %d reports %d observed %v", res.Depth, len(res.Depths), observed)
	}
	if res.Nodes <= 0 || res.RequestID == "" || res.Cached {
		t.Fatalf("unexpected result %+v", res)
	}

	resp := res.Response()
	if resp.Column != 3 || len(resp.Depths) != 3 || resp.Depths[2].Column != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAnalyzeCachesDeterministicStrategies(t *testing.T) {
	cache := newMemCache()
	svc := NewService(testOptions(), cache)
	req := Request{Board: openThree, Player: domain.Player1, Strategy: bot.StrategyGreedy, LastColumn: -1}

	first, err := svc.Analyze(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if first.Cached || cache.sets != 1 {
		t.Fatalf("expected a fresh result stored once, cached=%v sets=%d", first.Cached, cache.sets)
	}

	second, err := svc.Analyze(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !second.Cached || second.Column != first.Column || cache.sets != 1 {
		t.Fatalf("expected a cache hit for column %d, got %+v", first.Column, second)
	}

	req.Strategy = bot.StrategyRandom
	if _, err := svc.Analyze(context.Background(), req, nil); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("random results must not be cached")
	}
}

func TestAnalyzeIgnoresUnreadableCacheEntry(t *testing.T) {
	cache := newMemCache()
	svc := NewService(testOptions(), cache)
	req := Request{Board: openThree, Player: domain.Player1, Strategy: bot.StrategyGreedy, LastColumn: -1}

	board, _ := domain.FromGrid(openThree)
	key := svc.cacheKey(bot.StrategyGreedy, domain.Player1, time.Second, board)

	for _, entry := range []string{"not json", `{"column":9}`} {
		cache.data[key] = entry
		cache.dels = 0

		res, err := svc.Analyze(context.Background(), req, nil)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if res.Cached || res.Column != 3 {
			t.Fatalf("entry %q: expected a recomputed column 3, got %+v", entry, res)
		}
		if cache.dels != 1 {
			t.Fatalf("entry %q: expected the bad entry deleted, got %d deletes", entry, cache.dels)
		}
		if cache.data[key] == entry {
			t.Fatalf("entry %q was not replaced", entry)
		}
	}
}

func TestCacheKeyCoversSearchOptions(t *testing.T) {
	board, _ := domain.FromGrid(openThree)
	base := NewService(testOptions(), nil)

	deeper := testOptions()
	deeper.MaxDepth = 5
	keepComplete := testOptions()
	keepComplete.KeepLastCompleteDepth = true

	key := base.cacheKey(bot.StrategyMinimax, domain.Player1, time.Second, board)
	for name, opts := range map[string]Options{"depth": deeper, "keep": keepComplete} {
		other := NewService(opts, nil).cacheKey(bot.StrategyMinimax, domain.Player1, time.Second, board)
		if other == key {
			t.Fatalf("%s option shares the key %q", name, key)
		}
	}
	if base.cacheKey(bot.StrategyMinimax, domain.Player1, time.Second, board) != key {
		t.Fatalf("key is not stable")
	}
}

func TestAnalyzeRecordsEveryCommit(t *testing.T) {
	svc := NewService(testOptions(), nil)

	res, err := svc.Analyze(context.Background(), Request{
		Board:      openThree,
		Player:     domain.Player1,
		LastColumn: -1,
	}, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Commits) != res.Depth || res.Commits[len(res.Commits)-1] != res.Column {
		t.Fatalf("expected one commit per depth ending in %d, got %v at depth %d", res.Column, res.Commits, res.Depth)
	}
}

func TestAnalyzeRejectsBadRequests(t *testing.T) {
	svc := NewService(testOptions(), nil)

	full := [][]int{{1, 2}, {2, 1}}
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"no board", Request{Player: domain.Player1}, domain.ErrBoardSize},
		{"floating disc", Request{Board: [][]int{{1, 0}, {0, 0}}, Player: domain.Player1}, domain.ErrInvalidGrid},
		{"bad player", Request{Board: openThree, Player: 3}, domain.ErrInvalidPlayer},
		{"full board", Request{Board: full, Player: domain.Player1}, domain.ErrBoardFull},
		{"unknown strategy", Request{Board: openThree, Player: domain.Player1, Strategy: "mcts"}, bot.ErrUnknownStrategy},
	}

	for _, tc := range cases {
		if _, err := svc.Analyze(context.Background(), tc.req, nil); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	opts := testOptions()
	opts.MaxCols = 6
	small := NewService(opts, nil)
	if _, err := small.Analyze(context.Background(), Request{Board: openThree, Player: domain.Player1}, nil); !errors.Is(err, domain.ErrBoardSize) {
		t.Fatalf("expected a 6x7 board to exceed 6 columns, got %v", err)
	}
}

func TestAnalyzeAcceptsAnySizeWhenUnbounded(t *testing.T) {
	svc := NewService(testOptions(), nil)
	wide := [][]int{make([]int, 40)}
	wide[0][0] = 1
	res, err := svc.Analyze(context.Background(), Request{Board: wide, Player: domain.Player2, Strategy: bot.StrategyGreedy}, nil)
	if err != nil || res.Column != 1 {
		t.Fatalf("an unbounded service should play any size, got %v column %v", err, res)
	}
}

func TestAnalyzeCancelledRequestHasNoMove(t *testing.T) {
	svc := NewService(testOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, Request{Board: openThree, Player: domain.Player2, LastColumn: 2}, nil)
	if !errors.Is(err, ErrNoMove) {
		t.Fatalf("expected ErrNoMove, got %v", err)
	}
}

func TestMoveTimeIsClamped(t *testing.T) {
	svc := NewService(testOptions(), nil)

	if got := svc.moveTime(0); got != time.Second {
		t.Fatalf("expected the default, got %v", got)
	}
	if got := svc.moveTime(500 * time.Millisecond); got != 500*time.Millisecond {
		t.Fatalf("expected the requested time, got %v", got)
	}
	if got := svc.moveTime(time.Minute); got != 2*time.Second {
		t.Fatalf("expected the maximum, got %v", got)
	}
}

func TestRequestFromMessage(t *testing.T) {
	last := 4
	req := RequestFromMessage(domain.AnalyzeRequest{
		Board:      openThree,
		Player:     2,
		Difficulty: "easy",
		TimeMs:     250,
		LastColumn: &last,
	})
	if req.Strategy != bot.StrategyRandom || req.Player != domain.Player2 ||
		req.MoveTime != 250*time.Millisecond || req.LastColumn != 4 {
		t.Fatalf("unexpected request %+v", req)
	}

	req = RequestFromMessage(domain.AnalyzeRequest{Strategy: bot.StrategyGreedy, Difficulty: "hard"})
	if req.Strategy != bot.StrategyGreedy || req.LastColumn != -1 {
		t.Fatalf("explicit strategy should win over difficulty, got %+v", req)
	}

	req = RequestFromMessage(domain.AnalyzeRequest{})
	if req.Strategy != "" || req.MoveTime != 0 {
		t.Fatalf("empty message should leave defaults to the service, got %+v", req)
	}
}
