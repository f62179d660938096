package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/emptyteabot/mind-os/internal/agents"
	"github.com/emptyteabot/mind-os/internal/config"
	"github.com/emptyteabot/mind-os/internal/domain"
	"github.com/emptyteabot/mind-os/internal/llm"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// HandleChat handles POST /chat. Delivery depends on the configured
// chat mode: SSE fan-out, buffered aggregate review, or single-assistant
// token streaming with persisted history.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	key := clientKey(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	allowed, remaining := h.gate.CheckAndIncrement(key)
	if !allowed {
		Error(w, http.StatusTooManyRequests, "quota_exceeded")
		return
	}

	slog.Info("chat request",
		"client", key,
		"mode", h.cfg.ChatMode,
		"remaining", remaining,
		"message_length", len(req.Message),
	)

	switch h.cfg.ChatMode {
	case config.ModeAggregate:
		review := h.orch.Aggregate(r.Context(), h.reviewPanel, req.Message)
		review.Remaining = remaining
		JSON(w, http.StatusOK, review)
	case config.ModeConverse:
		h.streamConverse(w, r, remaining, req.Message)
	default:
		h.streamFanout(w, r, remaining, req.Message)
	}
}

// streamFanout emits one SSE event per completed agent, in completion
// order, between a leading quota event and a terminal done event.
func (h *Handler) streamFanout(w http.ResponseWriter, r *http.Request, remaining int, input string) {
	flusher, ok := sseHeaders(w)
	if !ok {
		return
	}

	if err := writeSSE(w, flusher, map[string]int{"quota": remaining}); err != nil {
		slog.Warn("failed to write quota event", "error", err)
		return
	}

	for res := range h.orch.Run(r.Context(), h.reviewPanel, input) {
		if err := writeSSE(w, flusher, res); err != nil {
			slog.Warn("failed to write agent event", "agent", res.Agent, "error", err)
			// Keep draining so every worker can finish and the batch
			// still completes exactly once per agent.
			continue
		}
	}

	if err := writeSSE(w, flusher, map[string]bool{"done": true}); err != nil {
		slog.Warn("failed to write done event", "error", err)
	}
}

// streamConverse streams a single assistant reply token by token,
// persisting the user and assistant turns around the stream.
func (h *Handler) streamConverse(w http.ResponseWriter, r *http.Request, remaining int, input string) {
	ctx := r.Context()

	if err := h.history.Append(ctx, domain.RoleUser, input); err != nil {
		slog.Warn("failed to persist user turn", "error", err)
	}

	messages, err := h.history.Messages(ctx)
	if err != nil {
		// Degrade to a historyless exchange rather than failing the request.
		slog.Warn("failed to load conversation history", "error", err)
		messages = []domain.Message{
			{Role: domain.RoleSystem, Content: agents.ConversePrompt},
			{Role: domain.RoleUser, Content: input},
		}
	}

	flusher, ok := sseHeaders(w)
	if !ok {
		return
	}

	if err := writeSSE(w, flusher, map[string]int{"quota": remaining}); err != nil {
		slog.Warn("failed to write quota event", "error", err)
		return
	}

	var reply strings.Builder
	for fragment, err := range h.streamer.Stream(ctx, messages) {
		if err != nil {
			slog.Warn("assistant stream failed", "error", err)
			break
		}
		reply.WriteString(fragment)
		if err := writeSSE(w, flusher, map[string]string{"content": fragment}); err != nil {
			slog.Warn("failed to write content event", "error", err)
			break
		}
	}

	if reply.Len() == 0 {
		// Nothing streamed: surface the sentinel instead of silence.
		reply.WriteString(llm.SentinelVerdict)
		if err := writeSSE(w, flusher, map[string]string{"content": llm.SentinelVerdict}); err != nil {
			slog.Warn("failed to write sentinel event", "error", err)
		}
	}

	if err := h.history.Append(ctx, domain.RoleAssistant, reply.String()); err != nil {
		slog.Warn("failed to persist assistant turn", "error", err)
	}

	if err := writeSSE(w, flusher, map[string]bool{"done": true}); err != nil {
		slog.Warn("failed to write done event", "error", err)
	}
}
