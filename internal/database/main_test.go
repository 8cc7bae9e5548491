package database

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/meunion/campus-match/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// openTestDB поднимает отдельную in-memory sqlite базу на тест
func openTestDB(t *testing.T) *Database {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewDatabase(db)
}

// createTestUser создаёт заполненную анкету, пригодную для ленты свайпов
func createTestUser(t *testing.T, d *Database, name, gender string) *models.User {
	t.Helper()

	u := &models.User{
		DisplayName:      name,
		Gender:           gender,
		GenderPreference: models.PreferenceEveryone,
		Bio:              "hello",
		Major:            "Undeclared",
		Photos:           []string{"https://cdn.example.com/" + name + ".jpg"},
	}
	u.ProfileComplete = u.IsProfileComplete()

	if err := d.SaveUser(u); err != nil {
		t.Fatalf("save user %s: %v", name, err)
	}
	return u
}
