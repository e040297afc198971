// Package ws upgrades arcade websocket sessions and pumps client messages
// into the hub.
package ws

import (
	"encoding/json"
	"log"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	server "tipdex/server"
)

type clientMessage struct {
	Ver    int    `json:"ver,omitempty"`
	Type   string `json:"type"`
	Up     bool   `json:"up"`
	Down   bool   `json:"down"`
	SentAt int64  `json:"sentAt"`
}

type startAckMessage struct {
	Ver  int    `json:"ver"`
	Type string `json:"type"`
}

type startRejectMessage struct {
	Ver    int    `json:"ver"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type heartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

type HandlerConfig struct {
	Logger *log.Logger
}

// Handler coordinates websocket sessions for the hub.
type Handler struct {
	hub      *server.Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a websocket session handler for the given hub.
func NewHandler(hub *server.Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}
	return &Handler{hub: hub, logger: logger, upgrader: upgrader}
}

// Handle upgrades the connection and runs the session read loop until the
// client goes away.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	sessionID := r.URL.Query().Get("id")
	if sessionID == "" {
		nethttp.Error(w, "missing id", nethttp.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", sessionID, err)
		return
	}

	sub, initial, ok := h.hub.Subscribe(sessionID, conn)
	if !ok {
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown session")
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}

	writeJSON := func(payload any) bool {
		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Printf("failed to marshal response for %s: %v", sessionID, err)
			return true
		}
		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			h.hub.Disconnect(sessionID)
			return false
		}
		return true
	}

	if !writeJSON(initial) {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.Disconnect(sessionID)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", sessionID, err)
			continue
		}

		switch msg.Type {
		case "input":
			if ok, reason := h.hub.UpdateInput(sessionID, msg.Up, msg.Down); !ok {
				if reason == server.CommandRejectUnknownSession {
					h.logger.Printf("input ignored for unknown session %s", sessionID)
				}
			}
		case "start":
			if ok, reason := h.hub.StartMatch(sessionID); ok {
				if !writeJSON(startAckMessage{Ver: server.ProtocolVersion, Type: "startAck"}) {
					return
				}
			} else {
				if !writeJSON(startRejectMessage{Ver: server.ProtocolVersion, Type: "startReject", Reason: reason}) {
					return
				}
			}
		case "heartbeat":
			now := time.Now()
			rtt, ok := h.hub.UpdateHeartbeat(sessionID, now, msg.SentAt)
			if !ok {
				continue
			}
			ack := heartbeatMessage{
				Ver:        server.ProtocolVersion,
				Type:       "heartbeat",
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  rtt.Milliseconds(),
			}
			if !writeJSON(ack) {
				return
			}
		default:
			h.logger.Printf("unknown message type %q from %s", msg.Type, sessionID)
		}
	}
}
