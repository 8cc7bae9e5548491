package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// Чат
	TypeMessage     MessageType = "message"
	TypeMessageRead MessageType = "message_read"
	TypeTyping      MessageType = "typing"

	// Подписка на переписку пары
	TypeMatchJoin  MessageType = "match_join"
	TypeMatchLeave MessageType = "match_leave"

	// Пуш о новой паре
	TypeMatchNew MessageType = "match_new"

	TypeError MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	MatchID   *uuid.UUID      `json:"match_id,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Conn    *websocket.Conn
	Send    chan []byte
	Matches map[uuid.UUID]bool
	Hub     *Hub
	mu      sync.RWMutex
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты по UserID: у пользователя может быть несколько соединений
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Подписчики переписок по id пары
	matches map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		matches:     make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
	h.matches = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Debug().
		Str("client", client.ID.String()).
		Str("user", client.UserID.String()).
		Msg("ws client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for matchID := range client.Matches {
		h.removeFromMatchUnsafe(client, matchID)
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	log.Debug().
		Str("client", client.ID.String()).
		Str("user", client.UserID.String()).
		Msg("ws client unregistered")
}

// JoinMatch подписывает клиента на переписку пары.
// Проверка, что пользователь — участник пары, делается до вызова
func (h *Hub) JoinMatch(client *Client, matchID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.matches[matchID]; !ok {
		h.matches[matchID] = make(map[uuid.UUID]*Client)
	}

	h.matches[matchID][client.ID] = client
	client.mu.Lock()
	client.Matches[matchID] = true
	client.mu.Unlock()
}

func (h *Hub) LeaveMatch(client *Client, matchID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromMatchUnsafe(client, matchID)
}

func (h *Hub) removeFromMatchUnsafe(client *Client, matchID uuid.UUID) {
	if room, ok := h.matches[matchID]; ok {
		delete(room, client.ID)
		client.mu.Lock()
		delete(client.Matches, matchID)
		client.mu.Unlock()

		if len(room) == 0 {
			delete(h.matches, matchID)
		}
	}
}

// SendToUser доставляет сообщение во все соединения пользователя
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Warn().Str("client", client.ID.String()).Msg("ws send channel full")
			}
		}
	}
}

// SendToMatch доставляет сообщение всем подписчикам переписки
func (h *Hub) SendToMatch(matchID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToMatchExcept(matchID, message, uuid.Nil)
}

// SendToMatchExcept — то же, но без одного клиента (например, автора)
func (h *Hub) SendToMatchExcept(matchID uuid.UUID, message []byte, excludeID uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToMatchExcept(matchID, message, excludeID)
}

func (h *Hub) sendToMatchExcept(matchID uuid.UUID, message []byte, excludeID uuid.UUID) {
	if room, ok := h.matches[matchID]; ok {
		for _, client := range room {
			if client.ID == excludeID {
				continue
			}
			select {
			case client.Send <- message:
			default:
				log.Warn().Str("client", client.ID.String()).Msg("ws send channel full")
			}
		}
	}
}

// NotifyUser сериализует и отправляет типизированное событие пользователю
func (h *Hub) NotifyUser(userID uuid.UUID, msgType MessageType, matchID *uuid.UUID, payload interface{}) {
	msg := Message{
		Type:      msgType,
		MatchID:   matchID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		msg.Data = data
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.SendToUser(userID, raw)
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{Type: TypePing, Timestamp: time.Now()}
	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

// IsOnline проверяет наличие хотя бы одного соединения пользователя
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.userClients[userID]) > 0
}
