package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"programming-quiz/internal/app"
	"programming-quiz/internal/config"
	"programming-quiz/internal/generator"
	"programming-quiz/internal/infra/memory"
	"programming-quiz/internal/infra/postgres"
	redisinfra "programming-quiz/internal/infra/redis"
	transport "programming-quiz/internal/transport/http"
)

// stack is the generation pipeline plus the connections it owns.
type stack struct {
	service *app.GenerationService
	pool    *pgxpool.Pool
	redis   *redis.Client
}

func (s *stack) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// buildStack wires source -> archive -> cache -> GenerationService from cfg.
func buildStack(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stack, error) {
	st := &stack{}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		st.pool = pool
	}
	if cfg.Redis.Addr != "" {
		st.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	source, err := baseSource(cfg, st.pool, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	if cfg.Postgres.Archive && st.pool != nil && cfg.Generator.Source != "bank" {
		source = postgres.NewArchivingSource(source, postgres.NewArchive(st.pool), logger)
	}

	source, ttl := cachedSource(cfg, st.redis, source, logger)
	st.service = app.NewGenerationService(source, logger)
	logger.Info("question source ready",
		"source", sourceName(cfg), "cache_ttl", ttl.String(),
		"redis", st.redis != nil, "archive", cfg.Postgres.Archive && st.pool != nil)
	return st, nil
}

// cachedSource wraps source in the Redis or in-memory batch cache. Without cache.ttl the
// cache only coalesces identical in-flight requests, so every start gets a fresh batch.
func cachedSource(cfg config.Config, client *redis.Client, source app.QuestionSource, logger *slog.Logger) (app.QuestionSource, time.Duration) {
	ttl := config.TTLDuration(cfg.Cache.TTL, 0)
	if client != nil {
		return redisinfra.NewBatchCache(client, source, ttl, logger), ttl
	}
	return memory.NewBatchCache(source, ttl), ttl
}

func baseSource(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (app.QuestionSource, error) {
	timeout := config.TTLDuration(cfg.Generator.Timeout, 60*time.Second)
	switch sourceName(cfg) {
	case "llm":
		gen, err := generator.New(generator.Config{
			APIKey:      cfg.Generator.APIKey,
			BaseURL:     cfg.Generator.BaseURL,
			Model:       cfg.Generator.Model,
			Temperature: cfg.Generator.Temperature,
			TopK:        cfg.Generator.TopK,
			TopP:        cfg.Generator.TopP,
			MaxTokens:   cfg.Generator.MaxTokens,
			Timeout:     timeout,
			Topics:      cfg.Generator.Topics,
		}, logger)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case "bank":
		if pool == nil {
			return nil, fmt.Errorf("generator source bank requires postgres.url")
		}
		return postgres.NewBank(pool), nil
	case "remote":
		if cfg.Generator.RemoteURL == "" {
			return nil, fmt.Errorf("generator source remote requires generator.remote_url")
		}
		return transport.NewClient(cfg.Generator.RemoteURL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown generator source %q", cfg.Generator.Source)
	}
}

func sourceName(cfg config.Config) string {
	if cfg.Generator.Source == "" {
		return "llm"
	}
	return cfg.Generator.Source
}
