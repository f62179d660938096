package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/emptyteabot/mind-os/internal/domain"
)

type fakeCompleter struct {
	content string
	err     error
}

func (f *fakeCompleter) Complete(_ context.Context, _ []domain.Message) (string, error) {
	return f.content, f.err
}

func TestInvokeTextAgent(t *testing.T) {
	inv := NewInvoker(&fakeCompleter{content: "a blunt verdict"})

	res := inv.Invoke(context.Background(), domain.AgentSpec{Name: "business"}, "my idea")

	if res.Agent != "business" {
		t.Errorf("Expected agent business, got %s", res.Agent)
	}
	if res.Kind != domain.KindText {
		t.Errorf("Expected text kind, got %v", res.Kind)
	}
	if res.Verdict != "a blunt verdict" {
		t.Errorf("Expected verdict passthrough, got %q", res.Verdict)
	}
}

func TestInvokeFailureReturnsSentinel(t *testing.T) {
	inv := NewInvoker(&fakeCompleter{err: errors.New("timeout")})

	res := inv.Invoke(context.Background(), domain.AgentSpec{Name: "technical", Structured: true}, "my idea")

	if res.Verdict != SentinelVerdict {
		t.Errorf("Expected sentinel verdict, got %q", res.Verdict)
	}
	if res.Kind != domain.KindText {
		t.Errorf("Expected text kind for sentinel, got %v", res.Kind)
	}
}

func TestInvokeStructuredAgent(t *testing.T) {
	body := "```json\n" +
		`{"verdict":"solid plan","score":7.5,"actions":["ship it","measure"],"tag":"go"}` +
		"\n```"
	inv := NewInvoker(&fakeCompleter{content: body})

	res := inv.Invoke(context.Background(), domain.AgentSpec{Name: "execution", Structured: true}, "my idea")

	if res.Kind != domain.KindScored {
		t.Fatalf("Expected scored kind, got %v", res.Kind)
	}
	if res.Score != 7.5 {
		t.Errorf("Expected score 7.5, got %v", res.Score)
	}
	if len(res.Actions) != 2 || res.Actions[0] != "ship it" {
		t.Errorf("Unexpected actions: %v", res.Actions)
	}
	if res.Tag != "go" {
		t.Errorf("Expected tag go, got %q", res.Tag)
	}
	if res.Verdict != "solid plan" {
		t.Errorf("Expected verdict from body, got %q", res.Verdict)
	}
}

func TestInvokeStructuredParseFailureKeepsRawText(t *testing.T) {
	inv := NewInvoker(&fakeCompleter{content: "sorry, I cannot produce JSON"})

	res := inv.Invoke(context.Background(), domain.AgentSpec{Name: "execution", Structured: true}, "my idea")

	if res.Kind != domain.KindText {
		t.Errorf("Expected text kind on parse failure, got %v", res.Kind)
	}
	if res.Verdict != "sorry, I cannot produce JSON" {
		t.Errorf("Expected raw body kept, got %q", res.Verdict)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare body", `{"score":5}`, `{"score":5}`},
		{"plain fence", "```\n{\"score\":5}\n```", `{"score":5}`},
		{"json fence", "```json\n{\"score\":5}\n```", `{"score":5}`},
		{"leading whitespace", "  ```json\n{\"score\":5}\n```  ", `{"score":5}`},
		{"single line fence", "```{\"score\":5}```", `{"score":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
