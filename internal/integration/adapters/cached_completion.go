package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bill-center/backend/internal/application/adapter"
)

const completionCachePrefix = "bill-center:completion:"

// CachedCompletionService memoises completion replies in Redis keyed by prompt.
// Cache failures are logged and fall through to the wrapped service.
type CachedCompletionService struct {
	next      adapter.CompletionService
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewCachedCompletionService wraps next with a Redis reply cache.
// namespace separates replies of different providers or models.
func NewCachedCompletionService(next adapter.CompletionService, client *redis.Client, namespace string, ttl time.Duration) *CachedCompletionService {
	return &CachedCompletionService{
		next:      next,
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

// IsAvailable reports whether the wrapped service is configured.
func (s *CachedCompletionService) IsAvailable() bool {
	return s.next.IsAvailable()
}

// Complete returns a cached reply when present, otherwise calls through and stores the reply.
func (s *CachedCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	key := s.key(prompt)

	cached, err := s.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		slog.Debug("Completion cache hit", "key", key)
		return cached, nil
	case !errors.Is(err, redis.Nil):
		slog.Warn("Completion cache read failed", "error", err)
	}

	reply, err := s.next.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, key, reply, s.ttl).Err(); err != nil {
		slog.Warn("Completion cache write failed", "error", err)
	}
	return reply, nil
}

func (s *CachedCompletionService) key(prompt string) string {
	sum := sha256.Sum256([]byte(s.namespace + "\x00" + prompt))
	return completionCachePrefix + hex.EncodeToString(sum[:])
}
