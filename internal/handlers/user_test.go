package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/models"
	"github.com/meunion/campus-match/internal/presence"
)

var handlerDBSeq int64

func openHandlerDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:handlerdb%d?mode=memory&cache=shared", atomic.AddInt64(&handlerDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	d := database.NewDatabase(db)
	if err := d.SeedReferenceData(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return d
}

func locationRouter(d *database.Database, tr *presence.Tracker, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/me/location", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	}, NewUserHandler(d, tr).UpdateLocation)
	return r
}

func postLocation(t *testing.T, r *gin.Engine, lat, lng float64) map[string]interface{} {
	t.Helper()

	body, _ := json.Marshal(map[string]float64{"latitude": lat, "longitude": lng})
	req := httptest.NewRequest(http.MethodPost, "/me/location", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestUpdateLocationResolvesNearestBuilding(t *testing.T) {
	d := openHandlerDB(t)
	user := &models.User{DisplayName: "alice"}
	if err := d.SaveUser(user); err != nil {
		t.Fatalf("save user: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tr := presence.NewTracker(rdb, time.Minute)

	resp := postLocation(t, locationRouter(d, tr, user.ID), 40.0, -74.0)
	if resp["building"] != "Main Hall" {
		t.Fatalf("expected Main Hall, got %v", resp["building"])
	}
	if _, ok := resp["latitude"]; !ok {
		t.Fatal("response must echo latitude")
	}
	if _, ok := resp["longitude"]; !ok {
		t.Fatal("response must echo longitude")
	}

	count, err := tr.ActiveCount(context.Background(), "Main Hall")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected presence ping in Main Hall, got %d", count)
	}
}

// TestUpdateLocationSurvivesPresenceOutage: недоступный Redis не должен
// ни валить запрос, ни менять форму успешного ответа
func TestUpdateLocationSurvivesPresenceOutage(t *testing.T) {
	d := openHandlerDB(t)
	user := &models.User{DisplayName: "alice"}
	if err := d.SaveUser(user); err != nil {
		t.Fatalf("save user: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tr := presence.NewTracker(rdb, time.Minute)
	mr.Close()

	resp := postLocation(t, locationRouter(d, tr, user.ID), 40.0, -74.0)
	if resp["building"] != "Main Hall" {
		t.Fatalf("expected Main Hall, got %v", resp["building"])
	}
	if _, ok := resp["latitude"]; !ok {
		t.Fatal("latitude must survive a presence outage")
	}
	if _, ok := resp["longitude"]; !ok {
		t.Fatal("longitude must survive a presence outage")
	}

	// Корпус при этом сохранён
	saved, err := d.GetUser(user.ID.String())
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if saved.Building != "Main Hall" {
		t.Fatalf("building must be persisted, got %q", saved.Building)
	}
}
