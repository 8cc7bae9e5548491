package wizard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const stateTTL = 24 * time.Hour

// Store держит прогресс мастера в Redis по ключу wizard:<userID>
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func stateKey(userID uuid.UUID) string {
	return "wizard:" + userID.String()
}

// Load возвращает сохранённое состояние или чистое, если его нет
func (s *Store) Load(ctx context.Context, userID uuid.UUID) (*State, error) {
	raw, err := s.rdb.Get(ctx, stateKey(userID)).Result()
	if err == redis.Nil {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Битое состояние считаем отсутствующим
		return &State{}, nil
	}
	return &state, nil
}

func (s *Store) Save(ctx context.Context, userID uuid.UUID, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, stateKey(userID), raw, stateTTL).Err()
}

func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.rdb.Del(ctx, stateKey(userID)).Err()
}
