package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const rateLimitOpTimeout = 500 * time.Millisecond

// RateLimitStore is a fixed-window request counter shared by every API
// instance. It satisfies echo's middleware.RateLimiterStore.
// Key format: ratelimit:<identifier>:<window index>
type RateLimitStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

// NewRateLimitStore allows limit requests per identifier in each window.
func NewRateLimitStore(client *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
		log:    log,
	}
}

// Allow counts one request for identifier. Redis failures let the request
// through.
func (s *RateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rateLimitOpTimeout)
	defer cancel()

	key := s.key(identifier)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Msg("rate limit counter unavailable, allowing request")
		return true, nil
	}
	return incr.Val() <= s.limit, nil
}

func (s *RateLimitStore) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%d", identifier, s.now().UnixNano()/int64(s.window))
}
