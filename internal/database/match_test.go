package database

import (
	"testing"
	"time"

	"github.com/meunion/campus-match/internal/models"
)

func TestGetMatchesForUserSummaries(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")
	c := createTestUser(t, d, "carol", "female")

	mAB := makeMatch(t, d, a.ID, b.ID)
	mAC := makeMatch(t, d, a.ID, c.ID)

	// В переписке с bob два непрочитанных от него и одно своё
	old := sendMessage(t, d, mAB.ID, b.ID, "hey")
	d.db.Model(old).Update("created_at", time.Now().Add(-time.Hour))
	sendMessage(t, d, mAB.ID, a.ID, "hi")
	latest := sendMessage(t, d, mAB.ID, b.ID, "you there?")
	d.db.Model(latest).Update("created_at", time.Now().Add(time.Minute))

	summaries, err := d.GetMatchesForUser(a.ID)
	if err != nil {
		t.Fatalf("get matches: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	byMatch := map[string]MatchSummary{}
	for _, s := range summaries {
		byMatch[s.Match.ID.String()] = s
	}

	sAB, ok := byMatch[mAB.ID.String()]
	if !ok {
		t.Fatal("summary for alice-bob match missing")
	}
	if sAB.Other.ID != b.ID {
		t.Fatal("other participant must be bob, not alice")
	}
	if sAB.LastMessage == nil || sAB.LastMessage.Content != "you there?" {
		t.Fatal("last message must be the newest one in the conversation")
	}
	if sAB.UnreadCount != 2 {
		t.Fatalf("expected 2 unread from bob, got %d", sAB.UnreadCount)
	}

	sAC, ok := byMatch[mAC.ID.String()]
	if !ok {
		t.Fatal("summary for alice-carol match missing")
	}
	if sAC.Other.ID != c.ID {
		t.Fatal("other participant must be carol")
	}
	if sAC.LastMessage != nil {
		t.Fatal("empty conversation must have no last message")
	}
	if sAC.UnreadCount != 0 {
		t.Fatalf("expected 0 unread, got %d", sAC.UnreadCount)
	}
}

func TestGetMatchesForUserEmpty(t *testing.T) {
	d := openTestDB(t)
	a := createTestUser(t, d, "alice", "female")

	summaries, err := d.GetMatchesForUser(a.ID)
	if err != nil {
		t.Fatalf("get matches: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no summaries, got %d", len(summaries))
	}
}

func TestGetLikersExcludesMatched(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")
	c := createTestUser(t, d, "carol", "female")
	e := createTestUser(t, d, "erin", "female")

	// bob лайкнул, взаимности нет
	if _, _, err := d.RecordSwipe(b.ID, a.ID, models.DirectionRight); err != nil {
		t.Fatalf("swipe: %v", err)
	}
	// carol лайкнула и уже в паре
	makeMatch(t, d, c.ID, a.ID)
	// erin свайпнула влево
	if _, _, err := d.RecordSwipe(e.ID, a.ID, models.DirectionLeft); err != nil {
		t.Fatalf("swipe: %v", err)
	}

	likers, err := d.GetLikers(a.ID)
	if err != nil {
		t.Fatalf("get likers: %v", err)
	}
	if len(likers) != 1 || likers[0].ID != b.ID {
		t.Fatalf("expected only bob among likers, got %d", len(likers))
	}
}

func TestCountMatchesInBuilding(t *testing.T) {
	d := openTestDB(t)

	a := createTestUser(t, d, "alice", "female")
	b := createTestUser(t, d, "bob", "male")
	c := createTestUser(t, d, "carol", "female")

	makeMatch(t, d, a.ID, b.ID)
	makeMatch(t, d, a.ID, c.ID)

	if err := d.SetLocation(b.ID, "Library", 40.0005, -74.0002); err != nil {
		t.Fatalf("set location: %v", err)
	}
	if err := d.SetLocation(c.ID, "Main Hall", 40.0, -74.0); err != nil {
		t.Fatalf("set location: %v", err)
	}

	count, err := d.CountMatchesInBuilding(a.ID, "Library")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 match in Library, got %d", count)
	}

	count, err = d.CountMatchesInBuilding(a.ID, "")
	if err != nil {
		t.Fatalf("count empty building: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty building must count nothing, got %d", count)
	}
}
