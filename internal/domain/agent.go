package domain

// AgentSpec describes one reviewer persona: a fixed system prompt
// submitted alongside the user's input. Specs are defined at startup and
// never mutated.
type AgentSpec struct {
	Name         string
	SystemPrompt string
	// Structured marks agents whose body is JSON (score/actions/tag)
	// rather than free text.
	Structured bool
}

// ResultKind tags the variant carried by an AgentResult.
type ResultKind int

const (
	// KindText is a plain-text verdict.
	KindText ResultKind = iota
	// KindScored carries a numeric score plus optional actions and tag.
	KindScored
)

// AgentResult is the outcome of one agent invocation. Exactly one result
// is produced per spec per fan-out, success or sentinel failure. Score,
// Actions and Tag are meaningful only when Kind is KindScored.
type AgentResult struct {
	Agent   string     `json:"agent"`
	Kind    ResultKind `json:"-"`
	Verdict string     `json:"verdict"`
	Score   float64    `json:"score,omitempty"`
	Actions []string   `json:"actions,omitempty"`
	Tag     string     `json:"tag,omitempty"`
}

// Review is the buffered aggregate of one fan-out: a BLUF summary line,
// the average of reported scores, and the per-agent verdicts.
type Review struct {
	BLUF      string        `json:"bluf"`
	AvgScore  float64       `json:"avg_score"`
	Agents    []AgentResult `json:"agents"`
	Actions   []string      `json:"actions"`
	Tag       string        `json:"tag,omitempty"`
	Remaining int           `json:"remaining"`
}

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
