package contract

import "context"

// Completer is the opaque text-completion service. It may be slow, may fail,
// and may return malformed output; callers must parse defensively.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Router classifies an inbound message into a specialist. It never fails:
// every input, including classifier outages, yields a well-formed decision.
type Router interface {
	Classify(ctx context.Context, message, conversationContext string) RoutingDecision
}

// Delegator runs one delegation cycle for the chosen specialist. It never
// fails: model or tool errors degrade into the response text.
type Delegator interface {
	Execute(ctx context.Context, agentType AgentType, message, userID, conversationContext string) SubAgentResponse
}

// Observer receives discrete events emitted by the router and delegation
// engine. The core holds no logging dependency; callers inject an
// implementation (or leave the default no-op).
type Observer interface {
	RoutingDecided(decision RoutingDecision)
	ToolInvoked(agentType AgentType, tool string)
	ToolFailed(agentType AgentType, tool, reason string)
	ResponseGenerated(agentType AgentType, chars int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) RoutingDecided(RoutingDecision)       {}
func (NopObserver) ToolInvoked(AgentType, string)        {}
func (NopObserver) ToolFailed(AgentType, string, string) {}
func (NopObserver) ResponseGenerated(AgentType, int)     {}
