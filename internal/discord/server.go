package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lunareth/FarfinderBot_Go/internal/announce"
)

// HTTPServer handles internal HTTP requests from the core API
type HTTPServer struct {
	server *http.Server
	bot    *Bot
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(port string, bot *Bot) *HTTPServer {
	mux := http.NewServeMux()

	srv := &HTTPServer{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		bot: bot,
	}

	mux.HandleFunc("/internal/status-announce", srv.handleStatusAnnounce)
	return srv
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting Discord internal HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Discord internal HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Discord internal HTTP server shutdown failed", "error", err)
	}
}

// handleStatusAnnounce applies the guild role matching the announced status.
// The transition is already committed on the core side, so failures here are
// reported back but change nothing in the ledger.
func (s *HTTPServer) handleStatusAnnounce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req announce.Payload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ActorID == "" || req.Status == "" {
		http.Error(w, "actor_id and status are required", http.StatusBadRequest)
		return
	}

	if err := s.bot.ApplyStatusRole(req.ActorID, req.Status); err != nil {
		slog.Error("Failed to apply status role", "actor_id", req.ActorID, "status", req.Status, "error", err)
		http.Error(w, "Failed to update Discord roles", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
