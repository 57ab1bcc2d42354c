package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SeedLock is the name of the lock serializing fleet imports.
const SeedLock = "seed"

// releaseScript deletes the lock only while it still holds the caller's
// token, so a holder whose TTL lapsed cannot free a lock taken over since.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireLock attempts to acquire the named lock.
// Returns the owner token and true if the lock was acquired, false if already held.
func (s *LockStore) AcquireLock(ctx context.Context, name string, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()
	ok, err := s.client.SetNX(ctx, lockKey(name), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// ReleaseLock releases the named lock if it is still owned by token.
// Releasing a lock that expired or changed hands is a no-op.
func (s *LockStore) ReleaseLock(ctx context.Context, name, token string) error {
	return releaseScript.Run(ctx, s.client, []string{lockKey(name)}, token).Err()
}

func lockKey(name string) string {
	return "lock:" + name
}
