package presence

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Tracker держит в Redis скользящее окно присутствия по корпусам:
// sorted set на корпус, member — пользователь, score — момент пинга
type Tracker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTracker(rdb *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{rdb: rdb, ttl: ttl}
}

func zoneKey(building string) string {
	return "presence:" + building
}

// Ping отмечает пользователя в корпусе
func (t *Tracker) Ping(ctx context.Context, building string, userID uuid.UUID) error {
	if building == "" {
		return nil
	}
	return t.rdb.ZAdd(ctx, zoneKey(building), &redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: userID.String(),
	}).Err()
}

// ActiveCount считает пользователей, отметившихся за последний TTL.
// Устаревшие записи вычищаются по пути
func (t *Tracker) ActiveCount(ctx context.Context, building string) (int64, error) {
	if building == "" {
		return 0, nil
	}
	key := zoneKey(building)
	cutoff := time.Now().Add(-t.ttl).Unix()

	if err := t.rdb.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return 0, err
	}
	return t.rdb.ZCard(ctx, key).Result()
}
