package connmanager

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/defs"
)

// ConnectionManager tracks which WebSocket connections are attached to which
// workbench session and fans server messages out to them. Writes to one
// connection are serialized; gorilla allows a single concurrent writer.
type ConnectionManager struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]*sync.Mutex
	Logger   primary.Logger
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(logger primary.Logger) *ConnectionManager {
	return &ConnectionManager{
		sessions: make(map[string]map[*websocket.Conn]*sync.Mutex),
		Logger:   logger,
	}
}

// Attach registers a connection under a session
func (cm *ConnectionManager) Attach(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.sessions[sessionID] == nil {
		cm.sessions[sessionID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	cm.sessions[sessionID][conn] = &sync.Mutex{}
}

// Detach removes a connection when it closes
func (cm *ConnectionManager) Detach(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conns, ok := cm.sessions[sessionID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(cm.sessions, sessionID)
		}
	}
}

// ConnectionCount reports how many connections a session has attached
func (cm *ConnectionManager) ConnectionCount(sessionID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.sessions[sessionID])
}

// Send writes one envelope to one connection
func (cm *ConnectionManager) Send(sessionID string, conn *websocket.Conn, messageType string, payload interface{}) {
	cm.mu.RLock()
	lock, ok := cm.sessions[sessionID][conn]
	cm.mu.RUnlock()
	if !ok {
		return
	}
	cm.write(conn, lock, messageType, payload)
}

// PublishToSession fans one message out to every connection of a session
func (cm *ConnectionManager) PublishToSession(sessionID string, messageType string, payload interface{}) {
	cm.mu.RLock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(cm.sessions[sessionID]))
	for conn, lock := range cm.sessions[sessionID] {
		targets[conn] = lock
	}
	cm.mu.RUnlock()

	for conn, lock := range targets {
		cm.write(conn, lock, messageType, payload)
	}
}

func (cm *ConnectionManager) write(conn *websocket.Conn, lock *sync.Mutex, messageType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		cm.Logger.Error("Failed to marshal session message", "type", messageType, "error", err)
		return
	}
	envelope, err := json.Marshal(defs.Envelope{Type: messageType, Payload: raw})
	if err != nil {
		cm.Logger.Error("Failed to marshal envelope", "type", messageType, "error", err)
		return
	}

	lock.Lock()
	err = conn.WriteMessage(websocket.TextMessage, envelope)
	lock.Unlock()
	if err != nil {
		cm.Logger.Warn("Session write failed", "type", messageType, "error", err)
	}
}

// CloseAll closes every tracked connection, for server shutdown
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for sessionID, conns := range cm.sessions {
		for conn := range conns {
			if err := conn.Close(); err != nil {
				cm.Logger.Warn("Failed to close connection", "sessionId", sessionID, "error", err)
			}
		}
		delete(cm.sessions, sessionID)
	}
}
