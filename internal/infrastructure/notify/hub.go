// Package notify is the transient notification surface: every mutation and
// exhausted fetch reports here, consumers render and dismiss.
package notify

import (
	"sync"
	"time"

	"lashup-client/pkg/logger"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type Hub struct {
	mu   sync.Mutex
	subs map[string]chan Notification
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]chan Notification),
	}
}

// Subscribe returns a buffered stream of notifications and a cancel func.
// Slow consumers drop messages rather than block publishers.
func (h *Hub) Subscribe(buffer int) (<-chan Notification, func()) {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Notification, buffer)
	id := uuid.NewString()

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Success(message string) {
	h.publish(LevelSuccess, message)
}

func (h *Hub) Error(message string) {
	h.publish(LevelError, message)
}

func (h *Hub) Info(message string) {
	h.publish(LevelInfo, message)
}

func (h *Hub) publish(level Level, message string) {
	n := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}

	switch level {
	case LevelError:
		logger.Warn().Str("notification", message).Msg("Toast")
	default:
		logger.Info().Str("notification", message).Msg("Toast")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
