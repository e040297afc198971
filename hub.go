// Package server owns the session hub: the single tick loop that advances
// every live arcade match, spends reward tokens when matches finish, and
// streams state frames to subscribed clients.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"tipdex/server/internal/arcade"
	"tipdex/server/internal/catalog"
	"tipdex/server/internal/telemetry"
	"tipdex/server/logging"
	logarcade "tipdex/server/logging/arcade"
	logeconomy "tipdex/server/logging/economy"
)

const (
	// CommandRejectUnknownSession indicates the session id is not registered.
	CommandRejectUnknownSession = "unknown_session"
	// CommandRejectNoTokens indicates no reward token is banked.
	CommandRejectNoTokens = "no_tokens"
	// CommandRejectMatchActive indicates a match is already running.
	CommandRejectMatchActive = "match_active"
)

// HubConfig tunes the tick loop.
type HubConfig struct {
	TickRate int
	Logger   telemetry.Logger
}

// DefaultHubConfig returns the production tick rate.
func DefaultHubConfig() HubConfig {
	return HubConfig{TickRate: tickRate}
}

// HubDeps carries the collaborators the hub drives.
type HubDeps struct {
	Publisher logging.Publisher
	Metrics   *logging.Metrics
	Ledger    *catalog.Ledger
	Rand      arcade.Rand
}

type sessionState struct {
	id            string
	match         arcade.Match
	active        bool
	input         arcade.Input
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteMessage serializes writes to the underlying connection.
func (s *subscriber) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// Hub owns all live sessions and the authoritative match state for each.
// Only the tick loop mutates match values; everything else stages inputs or
// reads snapshots under the mutex.
type Hub struct {
	mu          sync.Mutex
	sessions    map[string]*sessionState
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
	tick        atomic.Uint64

	cfg       HubConfig
	logger    telemetry.Logger
	metrics   *logging.Metrics
	publisher logging.Publisher
	ledger    *catalog.Ledger
	rng       arcade.Rand
}

// NewHub constructs a hub, filling in nop or default collaborators.
func NewHub(cfg HubConfig, deps HubDeps) *Hub {
	if cfg.TickRate <= 0 {
		cfg.TickRate = tickRate
	}
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(log.Default())
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = logging.NewMetrics()
	}
	ledger := deps.Ledger
	if ledger == nil {
		ledger = catalog.NewLedger()
	}
	rng := deps.Rand
	if rng == nil {
		rng = arcade.NewRand()
	}
	return &Hub{
		sessions:    make(map[string]*sessionState),
		subscribers: make(map[string]*subscriber),
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
		publisher:   publisher,
		ledger:      ledger,
		rng:         rng,
	}
}

// Ledger exposes the token ledger shared with the catalog handlers.
func (h *Hub) Ledger() *catalog.Ledger {
	return h.ledger
}

// Join registers a new session and returns the handshake response.
func (h *Hub) Join() JoinResponse {
	id := fmt.Sprintf("session-%d", h.nextID.Add(1))
	now := time.Now()

	h.mu.Lock()
	h.sessions[id] = &sessionState{id: id, lastHeartbeat: now}
	h.mu.Unlock()

	h.metrics.TelemetryAdd("hub.sessions_joined", 1)
	return JoinResponse{
		Ver:       ProtocolVersion,
		ID:        id,
		Tokens:    h.ledger.Snapshot(),
		CourtW:    arcade.CourtWidth,
		CourtH:    arcade.CourtHeight,
		PaddleH:   arcade.PaddleHeight,
		PaddleW:   arcade.PaddleWidth,
		BallSize:  arcade.BallSize,
		PlayerX:   arcade.PlayerPaddleX,
		AIPaddleX: arcade.AIPaddleX,
	}
}

// Subscribe associates a websocket connection with an existing session and
// returns the initial state frame.
func (h *Hub) Subscribe(sessionID string, conn *websocket.Conn) (*subscriber, StateMessage, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.sessions[sessionID]
	if !ok {
		return nil, StateMessage{}, false
	}
	state.lastHeartbeat = time.Now()

	if existing, ok := h.subscribers[sessionID]; ok {
		existing.conn.Close()
	}
	sub := &subscriber{conn: conn}
	h.subscribers[sessionID] = sub

	return sub, h.stateMessageLocked(state), true
}

// Disconnect removes a session and closes any active connection.
func (h *Hub) Disconnect(sessionID string) bool {
	h.mu.Lock()
	sub, subOK := h.subscribers[sessionID]
	if subOK {
		delete(h.subscribers, sessionID)
	}
	_, sessionOK := h.sessions[sessionID]
	if sessionOK {
		delete(h.sessions, sessionID)
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	return sessionOK
}

// UpdateInput stores the latest control snapshot for a session. The tick
// loop reads it on the next advance.
func (h *Hub) UpdateInput(sessionID string, up, down bool) (bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.sessions[sessionID]
	if !ok {
		return false, CommandRejectUnknownSession
	}
	state.input = arcade.Input{Up: up, Down: down}
	return true, ""
}

// StartMatch begins a new countdown for a session. Starting requires a
// banked reward token; the token itself is spent when the match finishes.
func (h *Hub) StartMatch(sessionID string) (bool, string) {
	h.mu.Lock()
	state, ok := h.sessions[sessionID]
	if !ok {
		h.mu.Unlock()
		return false, CommandRejectUnknownSession
	}
	if state.active && state.match.Phase != arcade.PhaseFinished {
		h.mu.Unlock()
		return false, CommandRejectMatchActive
	}
	if h.ledger.Balance() == 0 {
		h.mu.Unlock()
		logarcade.MatchRefused(context.Background(), h.publisher, h.tick.Load(),
			logging.EntityRef{ID: sessionID, Kind: logging.EntityKindSession},
			logarcade.MatchRefusedPayload{Reason: CommandRejectNoTokens}, nil)
		return false, CommandRejectNoTokens
	}
	state.match = arcade.NewMatch()
	state.active = true
	state.input = arcade.Input{}
	h.mu.Unlock()

	h.metrics.TelemetryAdd("arcade.matches_started", 1)
	logarcade.MatchStarted(context.Background(), h.publisher, h.tick.Load(),
		logging.EntityRef{ID: sessionID, Kind: logging.EntityKindSession},
		logarcade.MatchStartedPayload{TokensRemaining: h.ledger.Balance()}, nil)
	return true, ""
}

// UpdateHeartbeat records the most recent heartbeat time and RTT.
func (h *Hub) UpdateHeartbeat(sessionID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.sessions[sessionID]
	if !ok {
		return 0, false
	}
	state.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			state.lastRTT = rtt
		}
	}
	return state.lastRTT, true
}

type sessionFrame struct {
	id  string
	msg StateMessage
}

// advance runs one tick for every session and returns the frames to push
// plus stale subscribers to close.
func (h *Hub) advance(now time.Time, dt float64) ([]sessionFrame, []*subscriber) {
	tick := h.tick.Add(1)

	h.mu.Lock()
	toClose := make([]*subscriber, 0)
	frames := make([]sessionFrame, 0, len(h.sessions))

	for id, state := range h.sessions {
		if now.Sub(state.lastHeartbeat) > disconnectAfter {
			if sub, ok := h.subscribers[id]; ok {
				toClose = append(toClose, sub)
				delete(h.subscribers, id)
			}
			delete(h.sessions, id)
			h.logger.Printf("disconnecting %s due to heartbeat timeout", id)
			continue
		}

		if state.active {
			wasFinished := state.match.Phase == arcade.PhaseFinished
			state.match = arcade.Advance(state.match, dt, state.input, h.rng)
			if !wasFinished && state.match.Phase == arcade.PhaseFinished {
				h.finishMatchLocked(id, state, tick)
			}
		}

		if _, subscribed := h.subscribers[id]; subscribed {
			frames = append(frames, sessionFrame{id: id, msg: h.stateMessageLocked(state)})
		}
	}
	h.mu.Unlock()

	return frames, toClose
}

// finishMatchLocked settles the token economy for a finished match and stops
// advancing it. Called with the hub mutex held.
func (h *Hub) finishMatchLocked(id string, state *sessionState, tick uint64) {
	state.active = false

	if !h.ledger.Spend() {
		// Another session spent the last token mid-match. The result stands;
		// only the bookkeeping comes up short.
		h.logger.Printf("no token left to spend for finished match %s", id)
	} else {
		h.metrics.TelemetryAdd("economy.tokens_spent", 1)
		logeconomy.TokenSpent(context.Background(), h.publisher, tick,
			logging.EntityRef{ID: id, Kind: logging.EntityKindSession},
			logeconomy.TokenSpentPayload{Balance: h.ledger.Balance()}, nil)
	}

	winner := "ai"
	if result, won := arcade.Winner(state.match.Score); won && result == arcade.PointPlayer {
		winner = "player"
	}
	h.metrics.TelemetryAdd("arcade.matches_finished", 1)
	logarcade.MatchFinished(context.Background(), h.publisher, tick,
		logging.EntityRef{ID: id, Kind: logging.EntityKindSession},
		logarcade.MatchFinishedPayload{
			PlayerScore: state.match.Score.Player,
			AIScore:     state.match.Score.AI,
			Winner:      winner,
		}, nil)
}

func (h *Hub) stateMessageLocked(state *sessionState) StateMessage {
	msg := StateMessage{
		Ver:        ProtocolVersion,
		Type:       "state",
		Tick:       h.tick.Load(),
		Tokens:     h.ledger.Snapshot(),
		ServerTime: time.Now().UnixMilli(),
	}
	if state.active || state.match.Phase == arcade.PhaseFinished {
		msg.Match = matchView(state.match)
	}
	return msg
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	rate := h.cfg.TickRate
	if rate <= 0 {
		rate = tickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(rate)
			}
			last = now

			frames, toClose := h.advance(now, dt)
			for _, sub := range toClose {
				sub.conn.Close()
			}
			h.pushFrames(frames)
		}
	}
}

func (h *Hub) pushFrames(frames []sessionFrame) {
	for _, frame := range frames {
		h.mu.Lock()
		sub, ok := h.subscribers[frame.id]
		h.mu.Unlock()
		if !ok {
			continue
		}

		data, err := json.Marshal(frame.msg)
		if err != nil {
			h.logger.Printf("failed to marshal state for %s: %v", frame.id, err)
			continue
		}
		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Printf("failed to send update to %s: %v", frame.id, err)
			h.Disconnect(frame.id)
		}
	}
}

// DiagnosticsSnapshot exposes session data for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []DiagnosticsSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := make([]DiagnosticsSession, 0, len(h.sessions))
	for _, state := range h.sessions {
		phase := ""
		if state.active || state.match.Phase == arcade.PhaseFinished {
			phase = state.match.Phase.String()
		}
		sessions = append(sessions, DiagnosticsSession{
			ID:            state.id,
			Phase:         phase,
			LastHeartbeat: state.lastHeartbeat.UnixMilli(),
			RTTMillis:     state.lastRTT.Milliseconds(),
		})
	}
	return sessions
}

// TelemetrySnapshot copies the hub's counters for diagnostics.
func (h *Hub) TelemetrySnapshot() map[string]uint64 {
	return h.metrics.TelemetrySnapshot()
}
