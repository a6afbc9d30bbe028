package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/pattarad/relaydesk/agent/contract"
)

type fakeCompleter struct {
	output string
	err    error

	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.output, f.err
}

type recordingObserver struct {
	contractx.NopObserver
	decisions []contractx.RoutingDecision
}

func (r *recordingObserver) RoutingDecided(decision contractx.RoutingDecision) {
	r.decisions = append(r.decisions, decision)
}

func TestClassifyParsesStructuredOutput(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		output: `Here is my analysis: {"intent": "order", "confidence": 0.92, "reasoning": "Customer asks about shipment", "delegateTo": "order"}`,
	}
	observer := &recordingObserver{}
	r := New(completer, WithObserver(observer))

	decision := r.Classify(context.Background(), "Where is my package?", "")
	if decision.AgentType != contractx.AgentTypeOrder {
		t.Fatalf("agent = %s, want order", decision.AgentType)
	}
	if decision.Confidence != 0.92 {
		t.Fatalf("confidence = %v, want 0.92", decision.Confidence)
	}
	if decision.Reasoning != "Customer asks about shipment" {
		t.Fatalf("unexpected reasoning: %q", decision.Reasoning)
	}
	if len(observer.decisions) != 1 {
		t.Fatalf("observer saw %d decisions, want 1", len(observer.decisions))
	}
}

func TestClassifyIncludesConversationContext(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{output: `{"intent": "support", "confidence": 0.8, "reasoning": "ok"}`}
	r := New(completer)

	r.Classify(context.Background(), "and what about that?", "USER: hi\nASSISTANT: hello")
	if completer.lastSystem == "" {
		t.Fatal("system prompt was empty")
	}
	if !strings.Contains(completer.lastUser, "Recent conversation context:") {
		t.Fatalf("context block missing from prompt: %q", completer.lastUser)
	}

	r.Classify(context.Background(), "hello", "")
	if strings.Contains(completer.lastUser, "Recent conversation context:") {
		t.Fatalf("context block present without context: %q", completer.lastUser)
	}
}

func TestClassifyUnknownIntentFallsBack(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		output: `{"intent": "fraud", "confidence": 0.9, "reasoning": "made up a category"}`,
	}
	r := New(completer)

	decision := r.Classify(context.Background(), "hello", "")
	if decision.AgentType != contractx.AgentTypeSupport {
		t.Fatalf("agent = %s, want support", decision.AgentType)
	}
	if decision.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", decision.Confidence)
	}
	if decision.Reasoning != "Fallback: Could not parse response, defaulting to Support Agent" {
		t.Fatalf("unexpected reasoning: %q", decision.Reasoning)
	}
}

func TestClassifyMalformedOutputKeywordLadder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		output     string
		wantAgent  contractx.AgentType
		wantConf   float64
		wantReason string
	}{
		{
			name:       "order keywords in prose",
			output:     "The customer wants order tracking, I cannot produce JSON today.",
			wantAgent:  contractx.AgentTypeOrder,
			wantConf:   0.6,
			wantReason: "Fallback: Text contained order/tracking keywords",
		},
		{
			name:       "billing keywords in prose",
			output:     "This looks like a refund question about a payment.",
			wantAgent:  contractx.AgentTypeBilling,
			wantConf:   0.6,
			wantReason: "Fallback: Text contained billing/refund keywords",
		},
		{
			name:       "no keywords",
			output:     "I have no idea.",
			wantAgent:  contractx.AgentTypeSupport,
			wantConf:   0.5,
			wantReason: "Fallback: Could not parse response, defaulting to Support Agent",
		},
		{
			name:       "truncated object",
			output:     `{"intent": "order", "confidence":`,
			wantAgent:  contractx.AgentTypeOrder,
			wantConf:   0.6,
			wantReason: "Fallback: Text contained order/tracking keywords",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := New(&fakeCompleter{output: tc.output})
			decision := r.Classify(context.Background(), "irrelevant", "")
			if decision.AgentType != tc.wantAgent {
				t.Fatalf("agent = %s, want %s", decision.AgentType, tc.wantAgent)
			}
			if decision.Confidence != tc.wantConf {
				t.Fatalf("confidence = %v, want %v", decision.Confidence, tc.wantConf)
			}
			if decision.Reasoning != tc.wantReason {
				t.Fatalf("reasoning = %q, want %q", decision.Reasoning, tc.wantReason)
			}
		})
	}
}

func TestClassifyCompleterErrorUsesMessageKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		message   string
		wantAgent contractx.AgentType
		wantConf  float64
	}{
		{"order keyword", "Where is my ORDER #1002?", contractx.AgentTypeOrder, 0.6},
		{"tracking keyword", "tracking number please", contractx.AgentTypeOrder, 0.6},
		{"refund keyword", "I want a refund", contractx.AgentTypeBilling, 0.6},
		{"payment keyword", "my payment failed", contractx.AgentTypeBilling, 0.6},
		{"no keyword", "hello there", contractx.AgentTypeSupport, 0.5},
		{"empty message", "", contractx.AgentTypeSupport, 0.5},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := New(&fakeCompleter{err: errors.New("upstream 503")})
			decision := r.Classify(context.Background(), tc.message, "")
			if decision.AgentType != tc.wantAgent {
				t.Fatalf("agent = %s, want %s", decision.AgentType, tc.wantAgent)
			}
			if decision.Confidence != tc.wantConf {
				t.Fatalf("confidence = %v, want %v", decision.Confidence, tc.wantConf)
			}
		})
	}
}

func TestClassifyCompleterErrorDefaultReason(t *testing.T) {
	t.Parallel()

	r := New(&fakeCompleter{err: errors.New("boom")})
	decision := r.Classify(context.Background(), "good morning", "")
	if decision.Reasoning != "Fallback: Error in routing, defaulting to Support Agent" {
		t.Fatalf("unexpected reasoning: %q", decision.Reasoning)
	}
}

func TestClassifyRejectsOutOfRangeConfidence(t *testing.T) {
	t.Parallel()

	r := New(&fakeCompleter{output: `{"intent": "billing", "confidence": 7.5, "reasoning": "sure"}`})
	decision := r.Classify(context.Background(), "hello", "")
	if decision.AgentType != contractx.AgentTypeBilling {
		t.Fatalf("agent = %s, want billing via keyword ladder", decision.AgentType)
	}
	if decision.Confidence != 0.6 {
		t.Fatalf("confidence = %v, want 0.6", decision.Confidence)
	}
}
