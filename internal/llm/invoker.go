package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/emptyteabot/mind-os/internal/domain"
)

// SentinelVerdict is substituted for a failed agent invocation so the
// fan-out is never blocked by one bad upstream call.
const SentinelVerdict = "analysis timed out"

// Completer is the single-call surface the invoker needs from the client.
type Completer interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

// Invoker runs one agent against the upstream model. It never returns an
// error: every failure mode collapses to a sentinel result.
type Invoker struct {
	completer Completer
}

// NewInvoker creates an invoker over the given completer.
func NewInvoker(completer Completer) *Invoker {
	return &Invoker{completer: completer}
}

// Invoke submits the agent's system prompt plus the user input and
// returns exactly one result, success or sentinel failure.
func (i *Invoker) Invoke(ctx context.Context, spec domain.AgentSpec, userInput string) domain.AgentResult {
	content, err := i.completer.Complete(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: spec.SystemPrompt},
		{Role: domain.RoleUser, Content: userInput},
	})
	if err != nil {
		slog.Warn("agent invocation failed", "agent", spec.Name, "error", err)
		return domain.AgentResult{Agent: spec.Name, Kind: domain.KindText, Verdict: SentinelVerdict}
	}

	if !spec.Structured {
		return domain.AgentResult{Agent: spec.Name, Kind: domain.KindText, Verdict: content}
	}

	return parseStructured(spec.Name, content)
}

// parseStructured decodes a JSON agent body, tolerating markdown code
// fences. A body that is not valid JSON degrades to a plain text result;
// it must never abort sibling agents.
func parseStructured(agent, content string) domain.AgentResult {
	var body struct {
		Verdict string   `json:"verdict"`
		Score   float64  `json:"score"`
		Actions []string `json:"actions"`
		Tag     string   `json:"tag"`
	}

	raw := StripCodeFence(content)
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		slog.Warn("agent returned malformed JSON, keeping raw text", "agent", agent, "error", err)
		return domain.AgentResult{Agent: agent, Kind: domain.KindText, Verdict: content}
	}

	return domain.AgentResult{
		Agent:   agent,
		Kind:    domain.KindScored,
		Verdict: body.Verdict,
		Score:   body.Score,
		Actions: body.Actions,
		Tag:     body.Tag,
	}
}

// StripCodeFence removes a wrapping markdown code fence (``` or
// ```json) from a model response, returning the inner body unchanged
// when no fence is present.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, including any language tag.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		return strings.Trim(s, "`")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
