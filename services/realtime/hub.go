package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names pushed to practitioners.
const (
	EventPatientWaiting     = "patient-waiting"
	EventAppointmentUpdated = "appointment-updated"
)

// Message is the envelope written to practitioner connections.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sentAt"`
}

// Conn abstracts a WebSocket connection for testability; *websocket.Conn
// from gorilla/websocket satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub is the explicit registry of active practitioner connections
// (practitioner id -> connection id -> connection). It is owned by the
// realtime collaborator; the scheduling core only ever talks to it through
// RealtimeService. All operations are safe for concurrent use.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[string]Conn
}

// NewHub creates an empty registry.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[string]Conn)}
}

// Register adds a connection for a practitioner and returns its id. A
// practitioner may hold several simultaneous connections (multiple
// devices/tabs).
func (h *Hub) Register(practitionerID string, conn Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	connID := uuid.New().String()
	if h.conns[practitionerID] == nil {
		h.conns[practitionerID] = make(map[string]Conn)
	}
	h.conns[practitionerID][connID] = conn
	return connID
}

// Unregister removes a connection; the last removal for a practitioner
// drops their registry entry entirely.
func (h *Hub) Unregister(practitionerID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.conns[practitionerID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(h.conns, practitionerID)
	}
}

// ConnectionCount returns the number of active connections for a
// practitioner.
func (h *Hub) ConnectionCount(practitionerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[practitionerID])
}

// send writes the message to every active connection for the practitioner
// and reports how many writes succeeded. Failed connections are dropped
// from the registry.
func (h *Hub) send(practitionerID string, msg Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[practitionerID]
	delivered := 0
	for id, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			_ = conn.Close()
			delete(conns, id)
			continue
		}
		delivered++
	}
	if len(conns) == 0 {
		delete(h.conns, practitionerID)
	}
	return delivered
}
