package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewManager(rdb, ttl), mr
}

func TestIssueAndVerify(t *testing.T) {
	m, _ := newTestManager(t, 5*time.Minute)
	ctx := context.Background()

	code, err := m.Issue(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	if err := m.Verify(ctx, "+15551234567", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyConsumesCode(t *testing.T) {
	m, _ := newTestManager(t, 5*time.Minute)
	ctx := context.Background()

	code, err := m.Issue(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := m.Verify(ctx, "+15551234567", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	// Код сгорает при первой проверке
	if err := m.Verify(ctx, "+15551234567", code); err != ErrInvalidCode {
		t.Fatalf("second verify must fail, got %v", err)
	}
}

func TestVerifyWrongCodeBurnsIt(t *testing.T) {
	m, _ := newTestManager(t, 5*time.Minute)
	ctx := context.Background()

	code, err := m.Issue(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := m.Verify(ctx, "+15551234567", "000000"); err != ErrInvalidCode {
		t.Fatalf("wrong code must be rejected, got %v", err)
	}

	// Неудачная попытка тоже тратит код: перебор невозможен
	if err := m.Verify(ctx, "+15551234567", code); err != ErrInvalidCode {
		t.Fatalf("code must be gone after a failed attempt, got %v", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	m, mr := newTestManager(t, time.Minute)
	ctx := context.Background()

	code, err := m.Issue(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := m.Verify(ctx, "+15551234567", code); err != ErrInvalidCode {
		t.Fatalf("expired code must be rejected, got %v", err)
	}
}

func TestVerifyUnknownPhone(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)

	if err := m.Verify(context.Background(), "+15550000000", "123456"); err != ErrInvalidCode {
		t.Fatalf("unknown phone must be rejected, got %v", err)
	}
}
