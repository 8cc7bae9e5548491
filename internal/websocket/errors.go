package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotParticipant  = errors.New("user is not a participant of this match")
)
