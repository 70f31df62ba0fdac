package live

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when sending to a client that has gone away
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is what the hub needs from a connected client
type ClientInterface interface {
	ID() string
	WorkspaceID() int32
	Send(data []byte) error
	Close() error
}

// Hub fans change events out to the clients subscribed to a workspace.
// Safe for concurrent use.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int32]map[string]ClientInterface
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{rooms: make(map[int32]map[string]ClientInterface)}
}

// Register subscribes a client to its workspace's events
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	room, ok := h.rooms[client.WorkspaceID()]
	if !ok {
		room = make(map[string]ClientInterface)
		h.rooms[client.WorkspaceID()] = room
	}
	room[client.ID()] = client
	h.mu.Unlock()

	log.Debug().
		Int32("workspace_id", client.WorkspaceID()).
		Str("client_id", client.ID()).
		Msg("Live client registered")
}

// Unregister removes a client; empty rooms are dropped
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.WorkspaceID()]
	if !ok {
		return
	}
	if _, exists := room[client.ID()]; !exists {
		return
	}

	delete(room, client.ID())
	if len(room) == 0 {
		delete(h.rooms, client.WorkspaceID())
	}

	log.Debug().
		Int32("workspace_id", client.WorkspaceID()).
		Str("client_id", client.ID()).
		Msg("Live client unregistered")
}

// Broadcast delivers an event to every client in a workspace. Delivery is
// best effort: a client whose buffer is full just misses the event.
func (h *Hub) Broadcast(workspaceID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("workspace_id", workspaceID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	snapshot := make([]ClientInterface, 0, len(h.rooms[workspaceID]))
	for _, client := range h.rooms[workspaceID] {
		snapshot = append(snapshot, client)
	}
	h.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	for _, client := range snapshot {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Int32("workspace_id", workspaceID).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Int32("workspace_id", workspaceID).
		Str("event_type", event.Type).
		Int("client_count", len(snapshot)).
		Msg("Broadcast event")
}

// Close disconnects every client and empties the hub
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for workspaceID, room := range h.rooms {
		for _, client := range room {
			_ = client.Close()
		}
		delete(h.rooms, workspaceID)
	}
}

// ClientCount reports how many clients a workspace has
func (h *Hub) ClientCount(workspaceID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[workspaceID])
}
