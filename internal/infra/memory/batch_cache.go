package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"programming-quiz/internal/domain"
)

// SharedCallTimeout bounds a coalesced source call, which no longer follows any caller's context.
const SharedCallTimeout = 2 * time.Minute

// QuestionSource generates batches (LLM, bank, remote function).
type QuestionSource interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error)
}

// BatchCache coalesces identical in-flight requests and keeps generated batches for a TTL.
// A non-positive TTL disables storing; coalescing still applies.
type BatchCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedBatch
}

type cachedBatch struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewBatchCache(source QuestionSource, ttl time.Duration) *BatchCache {
	return &BatchCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBatch),
	}
}

func (c *BatchCache) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	key := BatchKey(req)
	if questions, ok := c.lookup(key); ok {
		return questions, nil
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		if questions, ok := c.lookup(key); ok {
			return questions, nil
		}

		// detached from the leader's cancellation, bounded by SharedCallTimeout
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedCallTimeout)
		defer cancel()
		questions, err := c.source.Generate(callCtx, req)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.cache[key] = cachedBatch{
				questions: questions,
				expiresAt: c.clock().Add(c.ttlWithJitterLocked()),
			}
			c.mu.Unlock()
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
		return copyBatch(res.Val.([]domain.Question)), nil
	}
}

func (c *BatchCache) lookup(key string) ([]domain.Question, bool) {
	now := c.clock()
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		if current, ok := c.cache[key]; ok && !current.expiresAt.After(now) {
			delete(c.cache, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return copyBatch(entry.questions), true
}

// BatchKey identifies batches that may be shared between requests.
func BatchKey(req domain.GenerationRequest) string {
	return req.Difficulty + ":" + strconv.Itoa(req.Count)
}

func copyBatch(questions []domain.Question) []domain.Question {
	return append([]domain.Question(nil), questions...)
}

func (c *BatchCache) ttlWithJitterLocked() time.Duration {
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
