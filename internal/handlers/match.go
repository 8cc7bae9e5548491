package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/middleware"
)

type MatchHandler struct {
	db *database.Database
}

func NewMatchHandler(db *database.Database) *MatchHandler {
	return &MatchHandler{db: db}
}

// GetMyMatches возвращает пары пользователя с последним сообщением
// и числом непрочитанных. Обогащение батчевое, без запроса на пару
func (h *MatchHandler) GetMyMatches(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	summaries, err := h.db.GetMatchesForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load matches"})
		return
	}

	result := make([]gin.H, len(summaries))
	for i, s := range summaries {
		entry := gin.H{
			"id":           s.Match.ID,
			"created_at":   s.Match.CreatedAt,
			"other_user":   formatUserResponse(&s.Other),
			"unread_count": s.UnreadCount,
		}
		if s.LastMessage != nil {
			entry["last_message"] = gin.H{
				"id":         s.LastMessage.ID,
				"sender_id":  s.LastMessage.SenderID,
				"content":    s.LastMessage.Content,
				"read":       s.LastMessage.Read,
				"created_at": s.LastMessage.CreatedAt,
			}
		}
		result[i] = entry
	}

	c.JSON(http.StatusOK, gin.H{"matches": result})
}
