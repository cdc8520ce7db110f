package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked credential digests in Redis. Entries carry the
// remaining credential lifetime as TTL, so the list never outlives the tokens
// it blocks. Key format: denylist:<sha256-digest>
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Add marks the digest as revoked until ttl elapses.
func (d *Denylist) Add(ctx context.Context, digest string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.key(digest), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist add: %w", err)
	}
	return nil
}

// Contains reports whether the digest has been revoked.
func (d *Denylist) Contains(ctx context.Context, digest string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(digest)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(digest string) string {
	return "denylist:" + digest
}
