// Package events broadcasts committed mutations to websocket clients so
// dashboards can refresh without polling.
package events

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nyrix-co/projecthub/internal/services"
)

const writeWait = 10 * time.Second

// Hub tracks websocket connections per project and fans committed events
// out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*websocket.Conn]bool)}
}

// Register adds a connection to a project's client set.
func (h *Hub) Register(projectID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[projectID] == nil {
		h.clients[projectID] = make(map[*websocket.Conn]bool)
	}
	h.clients[projectID][conn] = true
}

// Unregister removes a connection; the caller closes it.
func (h *Hub) Unregister(projectID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(projectID, conn)
}

// remove must be called with mu held.
func (h *Hub) remove(projectID uint, conn *websocket.Conn) {
	if clients, exists := h.clients[projectID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, projectID)
		}
	}
}

type eventPayload struct {
	Type      string `json:"type"`
	ProjectID uint   `json:"project_id"`
	TaskID    uint   `json:"task_id,omitempty"`
	CommentID uint   `json:"comment_id,omitempty"`
}

// Broadcast sends an event to every client watching its project. Failed
// connections are dropped.
func (h *Hub) Broadcast(event services.Event) {
	h.mu.RLock()
	clients, exists := h.clients[event.ProjectID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	conns := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	payload := eventPayload{Type: string(event.Kind), ProjectID: event.ProjectID}
	if event.Task != nil {
		payload.TaskID = event.Task.ID
	}
	if event.Comment != nil {
		payload.CommentID = event.Comment.ID
	}

	for _, conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("Failed to broadcast %s to client: %v", event.Kind, err)
			h.mu.Lock()
			h.remove(event.ProjectID, conn)
			h.mu.Unlock()
			conn.Close()
		}
	}
}

// BroadcastHook adapts the hub into a post-commit hook.
func BroadcastHook(hub *Hub) services.Hook {
	return func(ctx context.Context, event services.Event) {
		hub.Broadcast(event)
	}
}
