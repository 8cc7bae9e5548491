package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/middleware"
	"github.com/meunion/campus-match/internal/models"
	ws "github.com/meunion/campus-match/internal/websocket"
)

// HTTP-эндпоинты чата. Пуш в реальном времени идёт через hub,
// эти ручки — первичная загрузка и fallback без WebSocket

type ChatHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewChatHandler(db *database.Database, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{db: db, hub: hub}
}

// loadMatchFor достаёт пару и проверяет, что пользователь — её участник
func (h *ChatHandler) loadMatchFor(c *gin.Context, userID uuid.UUID) *models.Match {
	match, err := h.db.GetMatch(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return nil
	}

	if !match.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this match"})
		return nil
	}

	return match
}

// GetMessages — переписка пары от старых к новым
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	match := h.loadMatchFor(c, userID)
	if match == nil {
		return
	}

	messages, err := h.db.GetMatchMessages(match.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i, m := range messages {
		result[i] = dto.MessageResponse{
			ID:        m.ID,
			MatchID:   m.MatchID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// SendMessage сохраняет сообщение и рассылает его подписчикам пары
// и второму участнику
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	match := h.loadMatchFor(c, userID)
	if match == nil {
		return
	}

	var req dto.MessagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := &models.Message{
		MatchID:  match.ID,
		SenderID: userID,
		Content:  req.Content,
	}

	if err := h.db.SaveMessage(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	resp := dto.MessageResponse{
		ID:        message.ID,
		MatchID:   message.MatchID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		Read:      message.Read,
		CreatedAt: message.CreatedAt,
	}

	h.hub.NotifyUser(match.OtherUser(userID), ws.TypeMessage, &match.ID, resp)

	c.JSON(http.StatusCreated, resp)
}

// MarkRead помечает прочитанными входящие сообщения пары.
// Свои сообщения флаг не меняют
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	match := h.loadMatchFor(c, userID)
	if match == nil {
		return
	}

	updated, err := h.db.MarkMessagesRead(match.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark messages read"})
		return
	}

	if updated > 0 {
		h.hub.NotifyUser(match.OtherUser(userID), ws.TypeMessageRead, &match.ID, gin.H{
			"reader_id": userID,
			"count":     updated,
		})
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
