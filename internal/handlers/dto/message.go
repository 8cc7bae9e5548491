package dto

import (
	"time"

	"github.com/google/uuid"
)

// MessagePayload — входящее сообщение чата (HTTP и WebSocket)
type MessagePayload struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	MatchID   uuid.UUID `json:"match_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
