package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/4-in-a-row/minimax/internal/config"
	"github.com/iamasit07/4-in-a-row/minimax/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/analysis"
	transportHttp "github.com/iamasit07/4-in-a-row/minimax/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg := config.LoadConfig()
	config.SetupLogger(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Info().Msg("No .env file found, using process environment")
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := redis.InitRedis(cfg); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis")
	}
	defer redis.CloseRedis()

	var cache analysis.CacheRepository
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewRedisCache(redis.RedisClient)
	}

	svc := analysis.NewService(analysis.Options{
		MaxRows:               cfg.MaxRows,
		MaxCols:               cfg.MaxCols,
		DefaultMoveTime:       cfg.DefaultMoveTime,
		MaxMoveTime:           cfg.MaxMoveTime,
		MaxDepth:              cfg.SearchMaxDepth,
		KeepLastCompleteDepth: cfg.KeepLastCompleteDepth,
		CacheTTL:              cfg.CacheTTL,
	}, cache)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: transportHttp.NewRouter(cfg, svc),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Strs("strategies", svc.Strategies()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("Server exited")
}
