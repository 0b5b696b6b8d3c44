package flash

import (
	"context"
	"time"

	redisrepo "github.com/muhammadheryan/user-dashboard/repository/redis"
)

// DefaultTTL bounds how long an unread flash message survives.
const DefaultTTL = 5 * time.Minute

// FlashApp is a single-slot, read-once message store per session and key.
type FlashApp interface {
	// Set replaces any pending message for the session and key.
	Set(ctx context.Context, sessionID, key, message string) error
	// Pop returns the pending message and clears it. "" means none.
	Pop(ctx context.Context, sessionID, key string) (string, error)
}

type flashAppImpl struct {
	redisRepo redisrepo.Repository
	ttl       time.Duration
}

func NewFlashApp(redisRepo redisrepo.Repository, ttl time.Duration) FlashApp {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &flashAppImpl{redisRepo: redisRepo, ttl: ttl}
}

func (s *flashAppImpl) Set(ctx context.Context, sessionID, key, message string) error {
	if sessionID == "" {
		return nil
	}
	return s.redisRepo.SetWithTTL(ctx, flashKey(sessionID, key), message, s.ttl)
}

func (s *flashAppImpl) Pop(ctx context.Context, sessionID, key string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	return s.redisRepo.GetDel(ctx, flashKey(sessionID, key))
}

func flashKey(sessionID, key string) string {
	return "flash:" + sessionID + ":" + key
}
