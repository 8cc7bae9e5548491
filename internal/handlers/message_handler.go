package handlers

import (
	"encoding/json"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/models"
	"github.com/meunion/campus-match/internal/websocket"
	"github.com/rs/zerolog/log"
)

// MessageHandler обрабатывает входящие WebSocket-сообщения чата
type MessageHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewMessageHandler(db *database.Database, hub *websocket.Hub) *MessageHandler {
	return &MessageHandler{db: db, hub: hub}
}

func (h *MessageHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeMatchJoin:
		return h.handleJoin(client, msg)

	case websocket.TypeMatchLeave:
		if msg.MatchID != nil {
			h.hub.LeaveMatch(client, *msg.MatchID)
		}
		return nil

	case websocket.TypeMessage:
		return h.handleTextMessage(client, msg)

	case websocket.TypeMessageRead:
		return h.handleRead(client, msg)

	case websocket.TypeTyping:
		return h.handleTyping(client, msg)

	default:
		log.Warn().Str("type", string(msg.Type)).Msg("unknown ws message type")
		return nil
	}
}

// handleJoin подписывает клиента на переписку после проверки,
// что он действительно участник пары
func (h *MessageHandler) handleJoin(client *websocket.Client, msg *websocket.Message) error {
	if msg.MatchID == nil {
		return websocket.ErrInvalidMessage
	}

	match, err := h.db.GetMatch(msg.MatchID.String())
	if err != nil {
		return websocket.ErrMatchNotFound
	}
	if !match.HasParticipant(client.UserID) {
		return websocket.ErrNotParticipant
	}

	h.hub.JoinMatch(client, *msg.MatchID)
	return nil
}

func (h *MessageHandler) handleTextMessage(client *websocket.Client, msg *websocket.Message) error {
	if msg.MatchID == nil {
		return websocket.ErrInvalidMessage
	}

	match, err := h.db.GetMatch(msg.MatchID.String())
	if err != nil {
		return websocket.ErrMatchNotFound
	}
	if !match.HasParticipant(client.UserID) {
		return websocket.ErrNotParticipant
	}

	var payload dto.MessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return err
	}
	if payload.Content == "" {
		return websocket.ErrInvalidMessage
	}

	message := &models.Message{
		MatchID:  match.ID,
		SenderID: client.UserID,
		Content:  payload.Content,
	}

	if err := h.db.SaveMessage(message); err != nil {
		log.Error().Err(err).Msg("failed to save ws message")
		return err
	}

	resp := dto.MessageResponse{
		ID:        message.ID,
		MatchID:   message.MatchID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		Read:      message.Read,
		CreatedAt: message.CreatedAt,
	}

	// Подписчикам переписки и во все соединения второго участника
	raw, err := json.Marshal(websocket.Message{
		Type:      websocket.TypeMessage,
		MatchID:   msg.MatchID,
		UserID:    client.UserID,
		Data:      mustMarshal(resp),
		Timestamp: message.CreatedAt,
	})
	if err != nil {
		return err
	}
	h.hub.SendToMatch(*msg.MatchID, raw)
	h.hub.NotifyUser(match.OtherUser(client.UserID), websocket.TypeMessage, msg.MatchID, resp)

	return nil
}

func (h *MessageHandler) handleRead(client *websocket.Client, msg *websocket.Message) error {
	if msg.MatchID == nil {
		return websocket.ErrInvalidMessage
	}

	match, err := h.db.GetMatch(msg.MatchID.String())
	if err != nil {
		return websocket.ErrMatchNotFound
	}
	if !match.HasParticipant(client.UserID) {
		return websocket.ErrNotParticipant
	}

	updated, err := h.db.MarkMessagesRead(match.ID, client.UserID)
	if err != nil {
		return err
	}

	if updated > 0 {
		h.hub.NotifyUser(match.OtherUser(client.UserID), websocket.TypeMessageRead, msg.MatchID, map[string]interface{}{
			"reader_id": client.UserID,
			"count":     updated,
		})
	}
	return nil
}

// handleTyping ретранслирует индикатор набора без записи в базу
func (h *MessageHandler) handleTyping(client *websocket.Client, msg *websocket.Message) error {
	if msg.MatchID == nil {
		return websocket.ErrInvalidMessage
	}
	if !client.IsInMatch(*msg.MatchID) {
		return websocket.ErrNotParticipant
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.hub.SendToMatchExcept(*msg.MatchID, raw, client.ID)
	return nil
}

func mustMarshal(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
