package live

// EventPublisher decouples services from the hub so mutations can announce
// changes without knowing whether anyone is listening.
type EventPublisher interface {
	Publish(workspaceID int32, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish broadcasts the event to the workspace's subscribers
func (h *Hub) Publish(workspaceID int32, event Event) {
	h.Broadcast(workspaceID, event)
}

// NoOpPublisher discards events. Used in tests and when the live feed is
// not wired.
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(workspaceID int32, event Event) {}
