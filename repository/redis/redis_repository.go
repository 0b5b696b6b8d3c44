package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Repository is the key-value access used by the flash store
type Repository interface {
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	// GetDel reads a key and removes it in one round-trip. A missing key yields "".
	GetDel(ctx context.Context, key string) (string, error)
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation.
// A nil client makes every call a no-op.
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redis) GetDel(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	val, err := r.client.GetDel(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
