package wizard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb), mr
}

func TestStoreLoadCleanState(t *testing.T) {
	s, _ := newTestStore(t)

	state, err := s.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.Step != StepBasics || state.Name != "" {
		t.Fatal("missing state must load as a clean wizard")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	state := &State{
		Step:      StepVibe,
		Name:      "alice",
		ClassYear: "2027",
		Major:     "Linguistics",
		Photos:    []string{"https://cdn.example.com/alice.jpg"},
	}
	if err := s.Save(ctx, userID, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Step != StepVibe || got.Name != "alice" || len(got.Photos) != 1 {
		t.Fatalf("state did not survive the round trip: %+v", got)
	}

	// Прогресс другого пользователя не виден
	other, err := s.Load(ctx, uuid.New())
	if err != nil {
		t.Fatalf("load other: %v", err)
	}
	if other.Name != "" {
		t.Fatal("wizard state must be per user")
	}
}

func TestStoreClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := s.Save(ctx, userID, &State{Step: StepReview, Name: "alice"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(ctx, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	state, err := s.Load(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.Step != StepBasics || state.Name != "" {
		t.Fatal("cleared state must load as a clean wizard")
	}
}

func TestStoreCorruptStateResets(t *testing.T) {
	s, mr := newTestStore(t)
	userID := uuid.New()

	mr.Set("wizard:"+userID.String(), "{not json")

	state, err := s.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.Step != StepBasics {
		t.Fatal("corrupt state must reset to a clean wizard")
	}
}
