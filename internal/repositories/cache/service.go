// Package cache caches terminal oracle verdicts in redis so that client
// polling of check-payment after settlement does not keep hitting Bakong.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service wraps the redis client with payment-specific keys.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService creates a cache service with the given verdict TTL.
func NewService(client *redis.Client, ttl time.Duration) *Service {
	return &Service{client: client, ttl: ttl}
}

func statusKey(md5Hash string) string {
	return fmt.Sprintf("payment:status:%s", md5Hash)
}

// GetStatus returns a cached oracle verdict for a payload hash. A miss or
// a redis failure both read as "not cached"; the caller falls through to
// the oracle.
func (s *Service) GetStatus(ctx context.Context, md5Hash string) (string, bool) {
	val, err := s.client.Get(ctx, statusKey(md5Hash)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: failed to read status for %s: %v", md5Hash, err)
		}
		return "", false
	}
	return val, true
}

// SetStatus caches an oracle verdict. Only terminal verdicts should be
// cached; a pending status may still change.
func (s *Service) SetStatus(ctx context.Context, md5Hash, status string) {
	if err := s.client.Set(ctx, statusKey(md5Hash), status, s.ttl).Err(); err != nil {
		log.Printf("cache: failed to cache status for %s: %v", md5Hash, err)
	}
}

// Ping checks the redis connection.
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
