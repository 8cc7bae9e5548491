package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/middleware"
	ws "github.com/meunion/campus-match/internal/websocket"
)

type SwipeHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewSwipeHandler(db *database.Database, hub *ws.Hub) *SwipeHandler {
	return &SwipeHandler{db: db, hub: hub}
}

// GetCandidates отдаёт ленту свайпов: до 20 анкет без себя и уже
// свайпнутых, с фильтром по предпочтению пола
func (h *SwipeHandler) GetCandidates(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	candidates, err := h.db.GetCandidates(userID, user.GenderPreference, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load candidates"})
		return
	}

	result := make([]gin.H, len(candidates))
	for i := range candidates {
		result[i] = formatUserResponse(&candidates[i])
	}

	c.JSON(http.StatusOK, gin.H{"candidates": result})
}

// RecordSwipe записывает решение. При взаимном right-свайпе пара
// создаётся в той же транзакции и оба участника получают пуш match_new
func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	swipedID, err := uuid.Parse(req.SwipedID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	matched, match, err := h.db.RecordSwipe(userID, swipedID, req.Direction)
	if err == database.ErrSelfSwipe || err == database.ErrInvalidDirection {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record swipe"})
		return
	}

	if !matched {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	payload := gin.H{
		"match_id":   match.ID,
		"created_at": match.CreatedAt,
	}
	h.hub.NotifyUser(match.UserID1, ws.TypeMatchNew, &match.ID, payload)
	h.hub.NotifyUser(match.UserID2, ws.TypeMatchNew, &match.ID, payload)

	c.JSON(http.StatusOK, gin.H{
		"matched": true,
		"match": gin.H{
			"id":         match.ID,
			"user_id_1":  match.UserID1,
			"user_id_2":  match.UserID2,
			"created_at": match.CreatedAt,
		},
	})
}

// GetLikers — кто лайкнул пользователя, но взаимности ещё нет
func (h *SwipeHandler) GetLikers(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	likers, err := h.db.GetLikers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load likers"})
		return
	}

	result := make([]gin.H, len(likers))
	for i := range likers {
		result[i] = formatUserResponse(&likers[i])
	}

	c.JSON(http.StatusOK, gin.H{"likers": result})
}
