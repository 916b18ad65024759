package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/connmanager"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/defs"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/handlers"
)

// Error codes sent to clients in error envelopes
const (
	codeSessionNotFound = 1001
	codeInvalidEnvelope = 1002
	codeUnknownType     = 1003
	codeIntentFailed    = 1004
)

// Gateway upgrades session WebSocket connections and dispatches client
// intents to the registered handler for each message type.
type Gateway struct {
	workbenchService workbench.IWorkbenchService
	logger           primary.Logger
	connectionMgr    *connmanager.ConnectionManager
	upgrader         websocket.Upgrader
	handlers         map[string]primary.IntentHandler
}

// NewGateway creates a new WebSocket gateway
func NewGateway(workbenchService workbench.IWorkbenchService, logger primary.Logger) *Gateway {
	gw := &Gateway{
		workbenchService: workbenchService,
		logger:           logger,
		connectionMgr:    connmanager.NewConnectionManager(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	gw.setupIntentHandlers()

	return gw
}

// setupIntentHandlers registers all intent handlers
func (gw *Gateway) setupIntentHandlers() {
	gw.handlers = map[string]primary.IntentHandler{
		defs.MsgLayoutBeginDrag:    handlers.NewBeginDragHandler(gw.workbenchService, gw.logger),
		defs.MsgLayoutPointerMove:  handlers.NewPointerMoveHandler(gw.workbenchService, gw.logger),
		defs.MsgLayoutEndDrag:      handlers.NewEndDragHandler(gw.workbenchService, gw.logger),
		defs.MsgTestCaseAdd:        handlers.NewAddTestCaseHandler(gw.workbenchService, gw.logger),
		defs.MsgTestCaseToggleEdit: handlers.NewToggleEditHandler(gw.workbenchService, gw.logger),
		defs.MsgTestCaseUpdate:     handlers.NewUpdateTestCaseHandler(gw.workbenchService, gw.logger),
		defs.MsgTestCaseRemove:     handlers.NewRemoveTestCaseHandler(gw.workbenchService, gw.logger),
		defs.MsgTestCaseSetActive:  handlers.NewSetActiveTestCaseHandler(gw.workbenchService, gw.logger),
		defs.MsgViewSet:            handlers.NewSetViewModeHandler(gw.workbenchService, gw.logger),
		defs.MsgExecRun:            handlers.NewRunHandler(gw.workbenchService, gw.logger),
		defs.MsgExecSubmit:         handlers.NewSubmitHandler(gw.workbenchService, gw.logger),
	}
}

// Publisher exposes the connection manager for session broadcasts
func (gw *Gateway) Publisher() primary.SessionPublisher {
	return gw.connectionMgr
}

// HandleConnection upgrades an HTTP request into a session WebSocket
func (gw *Gateway) HandleConnection(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, ok := gw.workbenchService.Get(sessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := gw.upgrader.Upgrade(w, r, nil)
	if err != nil {
		gw.logger.Error("WebSocket upgrade failed", "sessionId", sessionID, "error", err)
		return
	}

	gw.connectionMgr.Attach(sessionID, conn)
	session.SetNotifier(func(messageType string, payload interface{}) {
		gw.connectionMgr.PublishToSession(sessionID, messageType, payload)
	})

	gw.logger.Info("Session connection opened", "sessionId", sessionID)

	// Catch the client up before any intents arrive
	gw.connectionMgr.Send(sessionID, conn, defs.MsgState, session.Snapshot())

	go gw.readLoop(sessionID, conn)
}

// readLoop consumes intents from one connection until it closes
func (gw *Gateway) readLoop(sessionID string, conn *websocket.Conn) {
	defer func() {
		gw.connectionMgr.Detach(sessionID, conn)
		if err := conn.Close(); err != nil {
			gw.logger.Debug("Connection close", "sessionId", sessionID, "error", err)
		}
		gw.logger.Info("Session connection closed", "sessionId", sessionID)
	}()

	ctx := context.Background()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				gw.logger.Warn("Session read failed", "sessionId", sessionID, "error", err)
			}
			return
		}

		var envelope defs.Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			gw.sendError(sessionID, conn, codeInvalidEnvelope, "invalid message envelope")
			continue
		}

		if _, ok := gw.workbenchService.Get(sessionID); !ok {
			gw.sendError(sessionID, conn, codeSessionNotFound, "session closed")
			return
		}

		handler, ok := gw.handlers[envelope.Type]
		if !ok {
			gw.logger.Warn("Unknown intent type", "sessionId", sessionID, "type", envelope.Type)
			gw.sendError(sessionID, conn, codeUnknownType, "unknown message type: "+envelope.Type)
			continue
		}

		if err := handler.HandleIntent(ctx, sessionID, envelope.Payload); err != nil {
			gw.logger.Error("Intent failed", "sessionId", sessionID, "type", envelope.Type, "error", err)
			gw.sendError(sessionID, conn, codeIntentFailed, err.Error())
		}
	}
}

func (gw *Gateway) sendError(sessionID string, conn *websocket.Conn, code int, message string) {
	gw.connectionMgr.Send(sessionID, conn, defs.MsgError, defs.ErrorData{Code: code, Message: message})
}

// Shutdown closes every live connection
func (gw *Gateway) Shutdown() {
	gw.connectionMgr.CloseAll()
}
