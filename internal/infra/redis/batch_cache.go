package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/wire"
)

// SharedCallTimeout bounds a coalesced source call, which no longer follows any caller's context.
const SharedCallTimeout = 2 * time.Minute

// QuestionSource generates batches (LLM, bank, remote function).
type QuestionSource interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error)
}

// BatchCache keeps generated batches in Redis so every instance can reuse them, and
// coalesces identical in-flight requests within this process.
// Batches are stored as the function's wire JSON: SET quiz:batch:{difficulty}:{count} {json} EX ttl
type BatchCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	log    *slog.Logger
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBatchCache(client *redis.Client, source QuestionSource, ttl time.Duration, logger *slog.Logger) *BatchCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchCache{
		client: client,
		source: source,
		ttl:    ttl,
		log:    logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *BatchCache) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	key := c.key(req)
	if questions, ok := c.lookup(ctx, key); ok {
		return questions, nil
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		// detached from the leader's cancellation, bounded by SharedCallTimeout
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedCallTimeout)
		defer cancel()

		// Re-check in case another instance filled it.
		if questions, ok := c.lookup(callCtx, key); ok {
			return questions, nil
		}

		questions, err := c.source.Generate(callCtx, req)
		if err != nil {
			return nil, err
		}

		if ttl := c.ttlWithJitter(); ttl > 0 {
			data, err := json.Marshal(wire.FromDomain(questions))
			if err == nil {
				err = c.client.Set(callCtx, key, data, ttl).Err()
			}
			if err != nil {
				c.log.Warn("batch cache write failed", "key", key, "error", err)
			}
		}
		return questions, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return append([]domain.Question(nil), res.Val.([]domain.Question)...), nil
	}
}

func (c *BatchCache) lookup(ctx context.Context, key string) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("batch cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	questions, err := wire.DecodeBatch(data)
	if err != nil {
		c.log.Warn("discarding unreadable cached batch", "key", key, "error", err)
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	return questions, true
}

func (c *BatchCache) key(req domain.GenerationRequest) string {
	return "quiz:batch:" + req.Difficulty + ":" + strconv.Itoa(req.Count)
}

func (c *BatchCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
