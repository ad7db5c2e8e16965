package websocket

import (
	"chat-live/domain"
	"chat-live/observability"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const ChatPath = "/api/v1/ws/chat/"

// Presence is the read side of the registry needed by diagnostics.
type Presence interface {
	OnlineCount() int
	Snapshot() []domain.UserID
}

type statsResponse struct {
	observability.MonitoringStats
	Online []domain.UserID `json:"online"`
}

// NewRouter mounts the live chat endpoint and the diagnostics routes.
// Extra handlers are mounted as given, e.g. a store inspector.
func NewRouter(log *slog.Logger, chat http.Handler, presence Presence,
	monitor *observability.MonitoringManager, extra map[string]http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(ChatPath, chat)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, map[string]any{"status": "ok", "online": presence.OnlineCount()})
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, statsResponse{MonitoringStats: monitor.GetLatest(), Online: presence.Snapshot()})
	})
	mux.Handle("/metrics", monitor.Handler())
	for path, handler := range extra {
		mux.Handle(path, handler)
	}
	return mux
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("Error writing response", "error", err)
	}
}

// CreateServer returns an http.Server with production timeouts.
// Hijacked websocket connections manage their own deadlines.
func CreateServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Shutdown stops accepting connections and waits for plain HTTP requests.
// Live sessions are closed by the caller through the registry.
func Shutdown(log *slog.Logger, server *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	log.Info("Shutting down HTTP server")
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		return err
	}
	log.Info("HTTP server shutdown completed")
	return nil
}
