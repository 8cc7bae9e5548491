package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrInvalidCode = errors.New("invalid or expired code")

// Manager выдаёт и проверяет одноразовые коды для входа по телефону.
// Код живёт в Redis до истечения TTL и сгорает при первой проверке
type Manager struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewManager(rdb *redis.Client, ttl time.Duration) *Manager {
	return &Manager{rdb: rdb, ttl: ttl}
}

func codeKey(phone string) string {
	return "otp:" + phone
}

// Issue генерирует шестизначный код и кладёт его в Redis
func (m *Manager) Issue(ctx context.Context, phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := m.rdb.Set(ctx, codeKey(phone), code, m.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify сравнивает код и сразу удаляет его, повторное использование невозможно
func (m *Manager) Verify(ctx context.Context, phone, code string) error {
	stored, err := m.rdb.GetDel(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrInvalidCode
	}
	return nil
}
