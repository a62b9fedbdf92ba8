package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "presence:last_seen:"

// RedisStore keeps last-seen timestamps in Redis. Keys expire after the
// away window, so an expired key means offline.
type RedisStore struct {
	client     *redis.Client
	onlineTTL  time.Duration
	awayWindow time.Duration
}

func NewRedisStore(client *redis.Client, onlineTTL, awayWindow time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		onlineTTL:  onlineTTL,
		awayWindow: awayWindow,
	}
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

func (s *RedisStore) Heartbeat(ctx context.Context, userID int64) error {
	now := time.Now().Unix()
	if err := s.client.Set(ctx, key(userID), now, s.awayWindow).Err(); err != nil {
		return fmt.Errorf("presence heartbeat: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*Presence, error) {
	val, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return &Presence{UserID: userID, Status: StatusOffline}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("presence get: %w", err)
	}
	return s.resolve(userID, val), nil
}

func (s *RedisStore) GetMany(ctx context.Context, userIDs []int64) (map[int64]*Presence, error) {
	result := make(map[int64]*Presence, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = key(id)
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("presence mget: %w", err)
	}

	for i, id := range userIDs {
		if vals[i] == nil {
			result[id] = &Presence{UserID: id, Status: StatusOffline}
			continue
		}
		str, ok := vals[i].(string)
		if !ok {
			result[id] = &Presence{UserID: id, Status: StatusOffline}
			continue
		}
		result[id] = s.resolve(id, str)
	}
	return result, nil
}

func (s *RedisStore) resolve(userID int64, rawUnix string) *Presence {
	unix, err := strconv.ParseInt(rawUnix, 10, 64)
	if err != nil {
		return &Presence{UserID: userID, Status: StatusOffline}
	}
	lastSeen := time.Unix(unix, 0)
	return &Presence{
		UserID:   userID,
		Status:   statusFor(time.Since(lastSeen), s.onlineTTL),
		LastSeen: &lastSeen,
	}
}
