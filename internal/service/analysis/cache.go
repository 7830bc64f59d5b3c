package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/internal/domain"
)

// CacheRepository is the key-value store behind the analysis cache.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type CachedResult struct {
	Column int   `json:"column"`
	Depth  int   `json:"depth"`
	Nodes  int64 `json:"nodes"`
}

// cacheKey covers every search option, so services configured differently
// can share one store.
func (s *Service) cacheKey(strategy string, player domain.PlayerID, moveTime time.Duration, board *domain.Board) string {
	return fmt.Sprintf("analysis:%s:%d:%d:d%d:k%t:%s", strategy, player, moveTime.Milliseconds(),
		s.opts.MaxDepth, s.opts.KeepLastCompleteDepth, board.Key())
}

// lookup treats every cache error as a miss. An entry that cannot be read,
// or names a column the board cannot take, is deleted.
func (s *Service) lookup(ctx context.Context, key string, board *domain.Board) (*CachedResult, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var cached CachedResult
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
		s.evict(ctx, key)
		return nil, false
	}
	if !board.IsValidMove(cached.Column) {
		log.Warn().Str("key", key).Int("column", cached.Column).Msg("discarding unplayable cache entry")
		s.evict(ctx, key)
		return nil, false
	}
	return &cached, true
}

func (s *Service) evict(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete cache entry")
	}
}

func (s *Service) store(ctx context.Context, key string, res *Result) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(CachedResult{Column: res.Column, Depth: res.Depth, Nodes: res.Nodes})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode cache entry")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.opts.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}
}
