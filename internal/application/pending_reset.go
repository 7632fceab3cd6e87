package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func pendingResetKey(sid string) string {
	return "pwd:reset:pending:" + sid
}

// RedisResetSlots keeps pending-reset slots in Redis with a TTL, so an
// abandoned reset expires on its own.
type RedisResetSlots struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisResetSlots(rdb *redis.Client, ttl time.Duration) *RedisResetSlots {
	return &RedisResetSlots{RDB: rdb, TTL: ttl}
}

func (r *RedisResetSlots) Stash(ctx context.Context, sid, userID string) error {
	return r.RDB.Set(ctx, pendingResetKey(sid), userID, r.TTL).Err()
}

func (r *RedisResetSlots) Get(ctx context.Context, sid string) (string, error) {
	v, err := r.RDB.Get(ctx, pendingResetKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (r *RedisResetSlots) Clear(ctx context.Context, sid string) error {
	return r.RDB.Del(ctx, pendingResetKey(sid)).Err()
}

var _ ResetSlotStore = (*RedisResetSlots)(nil)
