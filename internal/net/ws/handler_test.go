package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	server "tipdex/server"
	"tipdex/server/internal/catalog"
)

func websocketURL(t *testing.T, raw, sessionID string) string {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}
	u.Scheme = "ws"
	q := u.Query()
	q.Set("id", sessionID)
	u.RawQuery = q.Encode()
	return u.String()
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var frame map[string]any
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	return frame
}

func TestHandlerSendsInitialState(t *testing.T) {
	hub := server.NewHub(server.DefaultHubConfig(), server.HubDeps{})
	handler := NewHandler(hub, HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	defer srv.Close()

	join := hub.Join()
	conn, _, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, join.ID), nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	frame := readFrame(t, conn)
	if frame["type"] != "state" {
		t.Fatalf("expected state frame, got %v", frame["type"])
	}
	if _, hasMatch := frame["match"]; hasMatch {
		t.Fatalf("expected no match before start, got %v", frame["match"])
	}
}

func TestHandlerRejectsUnknownSession(t *testing.T) {
	hub := server.NewHub(server.DefaultHubConfig(), server.HubDeps{})
	handler := NewHandler(hub, HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, "session-404"), nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected connection to close for unknown session")
	}
}

func TestHandlerStartWithoutTokens(t *testing.T) {
	hub := server.NewHub(server.DefaultHubConfig(), server.HubDeps{})
	handler := NewHandler(hub, HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	defer srv.Close()

	join := hub.Join()
	conn, _, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, join.ID), nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	readFrame(t, conn)

	if err := conn.WriteJSON(map[string]any{"type": "start"}); err != nil {
		t.Fatalf("failed to send start: %v", err)
	}
	frame := readFrame(t, conn)
	if frame["type"] != "startReject" {
		t.Fatalf("expected startReject, got %v", frame["type"])
	}
	if frame["reason"] != server.CommandRejectNoTokens {
		t.Fatalf("expected no_tokens reason, got %v", frame["reason"])
	}
}

func TestHandlerStartWithToken(t *testing.T) {
	ledger := catalog.NewLedger()
	for i := 0; i < catalog.CatalogBatchSize; i++ {
		ledger.RecordEntry()
	}
	hub := server.NewHub(server.DefaultHubConfig(), server.HubDeps{Ledger: ledger})
	handler := NewHandler(hub, HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	defer srv.Close()

	join := hub.Join()
	conn, _, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, join.ID), nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	readFrame(t, conn)

	if err := conn.WriteJSON(map[string]any{"type": "start"}); err != nil {
		t.Fatalf("failed to send start: %v", err)
	}
	frame := readFrame(t, conn)
	if frame["type"] != "startAck" {
		t.Fatalf("expected startAck, got %v", frame["type"])
	}
}

func TestHandlerHeartbeatAck(t *testing.T) {
	hub := server.NewHub(server.DefaultHubConfig(), server.HubDeps{})
	handler := NewHandler(hub, HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	defer srv.Close()

	join := hub.Join()
	conn, _, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, join.ID), nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	readFrame(t, conn)

	sentAt := time.Now().UnixMilli()
	if err := conn.WriteJSON(map[string]any{"type": "heartbeat", "sentAt": sentAt}); err != nil {
		t.Fatalf("failed to send heartbeat: %v", err)
	}
	frame := readFrame(t, conn)
	if frame["type"] != "heartbeat" {
		t.Fatalf("expected heartbeat ack, got %v", frame["type"])
	}
	if got := int64(frame["clientTime"].(float64)); got != sentAt {
		t.Fatalf("expected clientTime %d echoed, got %d", sentAt, got)
	}
}
