package database

import (
	"testing"

	"github.com/meunion/campus-match/internal/models"
)

func TestGetCandidatesExcludesSelfAndSwiped(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")
	c := createTestUser(t, d, "carol", "female")
	e := createTestUser(t, d, "erin", "female")

	// Пустая история свайпов не должна ломать фильтр исключений
	candidates, err := d.GetCandidates(a.ID, models.PreferenceEveryone, 20)
	if err != nil {
		t.Fatalf("candidates with empty history: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	for _, cand := range candidates {
		if cand.ID == a.ID {
			t.Fatal("candidates must never include the caller")
		}
	}

	if _, _, err := d.RecordSwipe(a.ID, b.ID, models.DirectionLeft); err != nil {
		t.Fatalf("record swipe: %v", err)
	}
	if _, _, err := d.RecordSwipe(a.ID, c.ID, models.DirectionRight); err != nil {
		t.Fatalf("record swipe: %v", err)
	}

	candidates, err = d.GetCandidates(a.ID, models.PreferenceEveryone, 20)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != e.ID {
		t.Fatalf("expected only erin, got %d candidates", len(candidates))
	}
}

func TestGetCandidatesGenderPreference(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	createTestUser(t, d, "bob", "male")
	c := createTestUser(t, d, "carol", "female")

	candidates, err := d.GetCandidates(a.ID, "female", 20)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != c.ID {
		t.Fatalf("expected only carol for preference female, got %d", len(candidates))
	}

	// everyone отключает фильтр по полу
	candidates, err = d.GetCandidates(a.ID, models.PreferenceEveryone, 20)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates for everyone, got %d", len(candidates))
	}
}

func TestGetCandidatesSkipsIncompleteProfiles(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	incomplete := &models.User{DisplayName: "ghost"}
	if err := d.SaveUser(incomplete); err != nil {
		t.Fatalf("save user: %v", err)
	}

	candidates, err := d.GetCandidates(a.ID, models.PreferenceEveryone, 20)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("incomplete profiles must not appear in the deck, got %d", len(candidates))
	}
}

func TestRecordSwipeIdempotent(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")

	matched, _, err := d.RecordSwipe(a.ID, b.ID, models.DirectionRight)
	if err != nil {
		t.Fatalf("first swipe: %v", err)
	}
	if matched {
		t.Fatal("one-directional right swipe must not match")
	}

	// Повтор той же пары — no-op без видимой ошибки
	matched, _, err = d.RecordSwipe(a.ID, b.ID, models.DirectionRight)
	if err != nil {
		t.Fatalf("duplicate swipe must not error: %v", err)
	}
	if matched {
		t.Fatal("duplicate swipe must not report a match")
	}

	var count int64
	if err := d.db.Model(&models.Swipe{}).Count(&count).Error; err != nil {
		t.Fatalf("count swipes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 swipe row, got %d", count)
	}
}

func TestRecordSwipeMutualMatch(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")

	matched, _, err := d.RecordSwipe(a.ID, b.ID, models.DirectionRight)
	if err != nil {
		t.Fatalf("swipe a->b: %v", err)
	}
	if matched {
		t.Fatal("no match before the reverse swipe exists")
	}

	matched, match, err := d.RecordSwipe(b.ID, a.ID, models.DirectionRight)
	if err != nil {
		t.Fatalf("swipe b->a: %v", err)
	}
	if !matched || match == nil {
		t.Fatal("mutual right swipes must report a match")
	}
	if !match.HasParticipant(a.ID) || !match.HasParticipant(b.ID) {
		t.Fatal("match must pair both swipers")
	}

	// Ровно один репорт пары: повтор ничего не репортит и не дублирует
	matched, _, err = d.RecordSwipe(b.ID, a.ID, models.DirectionRight)
	if err != nil {
		t.Fatalf("repeat swipe: %v", err)
	}
	if matched {
		t.Fatal("a pair must be reported exactly once")
	}

	var count int64
	if err := d.db.Model(&models.Match{}).Count(&count).Error; err != nil {
		t.Fatalf("count matches: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 match row, got %d", count)
	}
}

func TestRecordSwipeLeftNeverMatches(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")

	if _, _, err := d.RecordSwipe(a.ID, b.ID, models.DirectionRight); err != nil {
		t.Fatalf("swipe a->b: %v", err)
	}

	matched, _, err := d.RecordSwipe(b.ID, a.ID, models.DirectionLeft)
	if err != nil {
		t.Fatalf("swipe b->a: %v", err)
	}
	if matched {
		t.Fatal("left swipe must never produce a match")
	}

	var count int64
	if err := d.db.Model(&models.Match{}).Count(&count).Error; err != nil {
		t.Fatalf("count matches: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no match rows, got %d", count)
	}
}

func TestPairLockKeySymmetric(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")

	// Оба направления свайпа должны брать одну и ту же блокировку
	if pairLockKey(a.ID, b.ID) != pairLockKey(b.ID, a.ID) {
		t.Fatal("lock key must not depend on swipe direction")
	}
	if pairLockKey(a.ID, b.ID) == pairLockKey(a.ID, a.ID) {
		t.Fatal("different pairs must get different lock keys")
	}
}

func TestRecordSwipeValidation(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")

	if _, _, err := d.RecordSwipe(a.ID, a.ID, models.DirectionRight); err != ErrSelfSwipe {
		t.Fatalf("expected ErrSelfSwipe, got %v", err)
	}
	if _, _, err := d.RecordSwipe(a.ID, b.ID, "maybe"); err != ErrInvalidDirection {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}
