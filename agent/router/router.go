// Package router classifies inbound customer messages into one of the fixed
// specialist agents. Classification degrades through a fallback ladder
// (structured model output, then keyword heuristics, then the support
// default) so Classify always returns a decision.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	extractx "github.com/pattarad/relaydesk/agent/extract"
	promptx "github.com/pattarad/relaydesk/agent/prompt"
)

const (
	keywordConfidence = 0.6
	defaultConfidence = 0.5

	orderKeywordReason   = "Fallback: Text contained order/tracking keywords"
	billingKeywordReason = "Fallback: Text contained billing/refund keywords"
	parseFailureReason   = "Fallback: Could not parse response, defaulting to Support Agent"
	invokeFailureReason  = "Fallback: Error in routing, defaulting to Support Agent"
)

var (
	orderKeywords   = []string{"order", "tracking"}
	billingKeywords = []string{"billing", "refund", "payment"}
)

type Router struct {
	completer    contractx.Completer
	systemPrompt string
	observer     contractx.Observer
}

type Option func(*Router)

func WithObserver(observer contractx.Observer) Option {
	return func(r *Router) {
		if observer != nil {
			r.observer = observer
		}
	}
}

func New(completer contractx.Completer, opts ...Option) *Router {
	r := &Router{
		completer:    completer,
		systemPrompt: promptx.LoadPromptSet().Router,
		observer:     contractx.NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// classifierOutput is the shape the router prompt asks the model for.
type classifierOutput struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	DelegateTo string  `json:"delegateTo"`
}

// Classify routes one message. It never returns an error: a failed or
// unparseable classifier call falls through the keyword ladder, ending at the
// support default.
func (r *Router) Classify(ctx context.Context, message, conversationContext string) contractx.RoutingDecision {
	decision := r.classify(ctx, message, conversationContext)
	r.observer.RoutingDecided(decision)
	return decision
}

func (r *Router) classify(ctx context.Context, message, conversationContext string) contractx.RoutingDecision {
	raw, err := r.completer.Complete(ctx, r.systemPrompt, buildUserPrompt(message, conversationContext))
	if err != nil {
		// No model output to scan; the ladder runs over the message itself.
		return keywordFallback(message, invokeFailureReason)
	}

	if decision, ok := parseDecision(raw); ok {
		return decision
	}
	return keywordFallback(raw, parseFailureReason)
}

func buildUserPrompt(message, conversationContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this customer query and determine which agent should handle it:\n\nCustomer Query: %q", message)
	if conversationContext != "" {
		fmt.Fprintf(&b, "\n\nRecent conversation context:\n%s", conversationContext)
	}
	b.WriteString("\n\nReturn the classification in JSON format.")
	return b.String()
}

// parseDecision extracts the first balanced JSON object from raw model output
// and decodes it strictly. Output naming an agent outside the closed set is a
// parse failure, not a new category.
func parseDecision(raw string) (contractx.RoutingDecision, bool) {
	fragment, ok := extractx.FirstObject(raw)
	if !ok {
		return contractx.RoutingDecision{}, false
	}

	var out classifierOutput
	if err := json.Unmarshal([]byte(fragment), &out); err != nil {
		return contractx.RoutingDecision{}, false
	}

	agentType := contractx.AgentType(strings.TrimSpace(out.Intent))
	if agentType == "" {
		agentType = contractx.AgentType(strings.TrimSpace(out.DelegateTo))
	}
	if !agentType.Known() {
		return contractx.RoutingDecision{}, false
	}

	confidence := out.Confidence
	if confidence < 0 || confidence > 1 {
		return contractx.RoutingDecision{}, false
	}

	return contractx.RoutingDecision{
		AgentType:  agentType,
		Confidence: confidence,
		Reasoning:  out.Reasoning,
	}, true
}

// keywordFallback is the degraded ladder: order/tracking signals first, then
// billing signals, then the support default with defaultReason.
func keywordFallback(text, defaultReason string) contractx.RoutingDecision {
	lower := strings.ToLower(text)

	if containsAny(lower, orderKeywords) {
		return contractx.RoutingDecision{
			AgentType:  contractx.AgentTypeOrder,
			Confidence: keywordConfidence,
			Reasoning:  orderKeywordReason,
		}
	}
	if containsAny(lower, billingKeywords) {
		return contractx.RoutingDecision{
			AgentType:  contractx.AgentTypeBilling,
			Confidence: keywordConfidence,
			Reasoning:  billingKeywordReason,
		}
	}
	return contractx.RoutingDecision{
		AgentType:  contractx.AgentTypeSupport,
		Confidence: defaultConfidence,
		Reasoning:  defaultReason,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
