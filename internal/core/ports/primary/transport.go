package primary

import "context"

// IntentHandler handles one decoded client intent for a workbench session.
// Implementations live in internal/ws/handlers, one per message type.
type IntentHandler interface {
	HandleIntent(ctx context.Context, sessionID string, payload []byte) error
}

// SessionPublisher pushes server-originated messages to every connection
// attached to a session.
type SessionPublisher interface {
	PublishToSession(sessionID string, messageType string, payload interface{})
}
