package api

import (
	"log/slog"
	"net/http"

	"github.com/emptyteabot/mind-os/internal/agents"
)

// HandleGenerateContent handles POST /api/generate-content: an SSE
// fan-out over the marketing content panel. It does not touch the user
// quota.
func (h *Handler) HandleGenerateContent(w http.ResponseWriter, r *http.Request) {
	flusher, ok := sseHeaders(w)
	if !ok {
		return
	}

	for res := range h.orch.Run(r.Context(), h.contentPanel, agents.ContentInput) {
		event := map[string]string{"platform": res.Agent, "content": res.Verdict}
		if err := writeSSE(w, flusher, event); err != nil {
			slog.Warn("failed to write content event", "platform", res.Agent, "error", err)
			continue
		}
	}

	if err := writeSSE(w, flusher, map[string]bool{"done": true}); err != nil {
		slog.Warn("failed to write done event", "error", err)
	}
}
