// Package net wires the HTTP surface: join handshake, catalog CRUD,
// diagnostics, and the websocket upgrade path.
package net

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	server "tipdex/server"
	"tipdex/server/internal/catalog"
	"tipdex/server/internal/net/ws"
	"tipdex/server/internal/stats"
	"tipdex/server/logging"
	logeconomy "tipdex/server/logging/economy"
)

// HTTPHandlerConfig wires the handler dependencies.
type HTTPHandlerConfig struct {
	ClientDir string
	Logger    *log.Logger
	Store     *catalog.Store
	Ledger    *catalog.Ledger
	Publisher logging.Publisher
}

// NewHTTPHandler builds the full route table for the service.
func NewHTTPHandler(hub *server.Hub, cfg HTTPHandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	store := cfg.Store
	if store == nil {
		store = catalog.NewStore()
	}
	ledger := cfg.Ledger
	if ledger == nil {
		ledger = hub.Ledger()
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	wsHandler := ws.NewHandler(hub, ws.HandlerConfig{Logger: logger})

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, logger, map[string]any{"status": "ok"})
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, logger, map[string]any{
			"status":          "ok",
			"serverTime":      time.Now().UnixMilli(),
			"tickRate":        server.TickRate(),
			"heartbeatMillis": server.HeartbeatInterval().Milliseconds(),
			"sessions":        hub.DiagnosticsSnapshot(),
			"telemetry":       hub.TelemetrySnapshot(),
			"tokens":          ledger.Snapshot(),
		})
	})

	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httpError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, logger, hub.Join())
	})

	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, logger, catalogListResponse{
				Entries: store.List(),
				Tokens:  ledger.Snapshot(),
			})
		case http.MethodPost:
			handleCatalogAdd(w, r, logger, store, ledger, publisher)
		default:
			httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/catalog/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, logger, stats.Summarize(store.List()))
	})

	mux.HandleFunc("/catalog/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			httpError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/catalog/")
		if id == "" || strings.Contains(id, "/") {
			httpError(w, http.StatusBadRequest, "invalid entry id")
			return
		}
		if !store.Remove(id) {
			httpError(w, http.StatusNotFound, "entry not found")
			return
		}
		writeJSON(w, logger, map[string]any{"removed": id, "count": store.Count()})
	})

	mux.HandleFunc("/ws", wsHandler.Handle)

	if cfg.ClientDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.ClientDir)))
	}

	return mux
}

type catalogListResponse struct {
	Entries []catalog.Entry        `json:"entries"`
	Tokens  catalog.LedgerSnapshot `json:"tokens"`
}

type catalogAddResponse struct {
	Entry       catalog.Entry          `json:"entry"`
	TokenEarned bool                   `json:"tokenEarned"`
	Tokens      catalog.LedgerSnapshot `json:"tokens"`
}

func handleCatalogAdd(w http.ResponseWriter, r *http.Request, logger *log.Logger, store *catalog.Store, ledger *catalog.Ledger, publisher logging.Publisher) {
	var def catalog.EntryDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		httpError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	entry, err := store.Add(def)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	earned := ledger.RecordEntry()
	if earned {
		snapshot := ledger.Snapshot()
		logeconomy.TokenEarned(context.Background(), publisher,
			logging.EntityRef{ID: entry.ID, Kind: logging.EntityKindCatalog},
			logeconomy.TokenEarnedPayload{
				EntriesCatalogued: snapshot.Entries,
				Balance:           snapshot.Balance,
			}, nil)
		logger.Printf("catalog batch complete, token earned (balance %d)", snapshot.Balance)
	}

	writeJSON(w, logger, catalogAddResponse{
		Entry:       entry,
		TokenEarned: earned,
		Tokens:      ledger.Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Printf("failed to encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
