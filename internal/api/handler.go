// Package api provides HTTP handlers for the mind-os API.
package api

import (
	"context"
	"encoding/json"
	"iter"
	"net"
	"net/http"

	"github.com/emptyteabot/mind-os/internal/agents"
	"github.com/emptyteabot/mind-os/internal/config"
	"github.com/emptyteabot/mind-os/internal/domain"
	"github.com/emptyteabot/mind-os/internal/fanout"
	"github.com/emptyteabot/mind-os/internal/history"
	"github.com/emptyteabot/mind-os/internal/usage"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodySize caps chat request bodies (1MB).
const maxRequestBodySize = 1 << 20

// Streamer is the token-streaming surface of the upstream client, used
// by the single-assistant deployment.
type Streamer interface {
	Stream(ctx context.Context, messages []domain.Message) iter.Seq2[string, error]
}

// Handler serves the quota, chat, and content-generation endpoints.
type Handler struct {
	cfg          *config.Config
	gate         *usage.Gate
	orch         *fanout.Orchestrator
	streamer     Streamer
	history      *history.Store
	reviewPanel  []domain.AgentSpec
	contentPanel []domain.AgentSpec
}

// NewHandler creates the API handler. hist may be nil outside converse
// mode; streamer is only used in converse mode.
func NewHandler(cfg *config.Config, gate *usage.Gate, orch *fanout.Orchestrator, streamer Streamer, hist *history.Store) *Handler {
	return &Handler{
		cfg:          cfg,
		gate:         gate,
		orch:         orch,
		streamer:     streamer,
		history:      hist,
		reviewPanel:  agents.ReviewPanel(cfg.ChatMode == config.ModeAggregate),
		contentPanel: agents.ContentPanel(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/quota", h.HandleQuota)
	r.Post("/chat", h.HandleChat)
	r.Post("/api/generate-content", h.HandleGenerateContent)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// clientKey derives the quota key for a request: the remote IP, already
// rewritten from X-Forwarded-For by chi's RealIP middleware.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP leaves a bare IP without a port.
		host = r.RemoteAddr
	}
	if host == "" {
		host = "127.0.0.1"
	}
	return host
}

// HandleQuota handles GET /api/quota.
func (h *Handler) HandleQuota(w http.ResponseWriter, r *http.Request) {
	key := clientKey(r)
	JSON(w, http.StatusOK, map[string]interface{}{
		"remaining": h.gate.Remaining(key),
		"limit":     h.gate.Limit(),
		"is_pro":    h.gate.IsPro(key),
	})
}
