// Package delegate runs one delegation cycle for a routed specialist: decide
// which tools to use, execute them in order, then generate the final response.
package delegate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	extractx "github.com/pattarad/relaydesk/agent/extract"
	registryx "github.com/pattarad/relaydesk/agent/registry"
	toolx "github.com/pattarad/relaydesk/agent/tool"
)

// FallbackResponse is returned verbatim whenever a model call inside the
// cycle fails. Tool failures do not trigger it; they are surfaced to the
// model as failed results instead.
const FallbackResponse = "I apologize, but I encountered an issue while processing your request. Please try again or contact support if the problem persists."

// Engine executes delegation cycles. Execute never returns an error: model
// failures degrade into FallbackResponse and tool failures into failed
// results inside the envelope.
type Engine struct {
	completer contractx.Completer
	executors map[contractx.AgentType]toolx.Executor
	users     toolx.UserResolver
	observer  contractx.Observer
}

type Option func(*Engine)

func WithObserver(observer contractx.Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// WithUserResolver enables email-to-identifier resolution before tool
// execution. Without it, the user identifier is passed through as given.
func WithUserResolver(users toolx.UserResolver) Option {
	return func(e *Engine) {
		e.users = users
	}
}

func New(completer contractx.Completer, deps toolx.Deps, opts ...Option) *Engine {
	e := &Engine{
		completer: completer,
		executors: map[contractx.AgentType]toolx.Executor{
			contractx.AgentTypeSupport: toolx.NewExecutor(contractx.AgentTypeSupport, deps),
			contractx.AgentTypeOrder:   toolx.NewExecutor(contractx.AgentTypeOrder, deps),
			contractx.AgentTypeBilling: toolx.NewExecutor(contractx.AgentTypeBilling, deps),
		},
		observer: contractx.NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the three-phase cycle for agentType: tool decision, sequential
// tool execution, final response. An unknown agentType fails closed to the
// support specialist.
func (e *Engine) Execute(ctx context.Context, agentType contractx.AgentType, message, userID, conversationContext string) contractx.SubAgentResponse {
	spec := registryx.Lookup(agentType)
	agentType = spec.Type

	calls, err := e.decideTools(ctx, spec, message, conversationContext)
	if err != nil {
		return e.fallback(agentType)
	}

	results := e.runTools(ctx, agentType, calls, userID)

	response, err := e.respond(ctx, spec, message, conversationContext, results)
	if err != nil {
		return e.fallback(agentType)
	}

	e.observer.ResponseGenerated(agentType, len(response))
	return contractx.SubAgentResponse{
		Response:    response,
		AgentType:   agentType,
		ToolCalls:   calls,
		ToolResults: results,
	}
}

// decideTools is phase one. Malformed or absent tool output is an empty plan,
// not an error; only a failed model call propagates.
func (e *Engine) decideTools(ctx context.Context, spec registryx.Specialist, message, conversationContext string) ([]contractx.ToolRequest, error) {
	raw, err := e.completer.Complete(ctx, toolDecisionPrompt(spec), userPrompt(message, conversationContext))
	if err != nil {
		return nil, fmt.Errorf("%w: tool decision: %v", contractx.ErrModelInvoke, err)
	}
	return parseToolRequests(raw), nil
}

// runTools is phase two: strictly sequential execution in plan order, one
// result per request. A failing tool never aborts the rest of the plan.
func (e *Engine) runTools(ctx context.Context, agentType contractx.AgentType, calls []contractx.ToolRequest, userID string) []contractx.ToolResult {
	if len(calls) == 0 {
		return nil
	}

	executor := e.executors[agentType]
	userID = e.resolveUserID(ctx, userID)

	results := make([]contractx.ToolResult, 0, len(calls))
	for _, call := range calls {
		e.observer.ToolInvoked(agentType, call.Name)
		result := executor(ctx, call.Name, userID, call.Args)
		if result.Failed() {
			e.observer.ToolFailed(agentType, call.Name, result.Error)
		}
		results = append(results, result)
	}
	return results
}

const incorporateInstruction = "Incorporate any tool results naturally into your reply. Never expose tool names, raw JSON, or internal identifiers to the customer."

// respond is phase three. It always runs, with or without tool results. The
// specialist's system prompt is extended with the incorporation instruction
// and the user prompt names the responding specialist.
func (e *Engine) respond(ctx context.Context, spec registryx.Specialist, message, conversationContext string, results []contractx.ToolResult) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are responding as the %s.\n\n", spec.Name)
	b.WriteString(userPrompt(message, conversationContext))
	if len(results) > 0 {
		b.WriteString("\n\nTool results:\n")
		b.WriteString(serializeResults(results))
	}

	systemPrompt := spec.SystemPrompt + "\n\n" + incorporateInstruction
	response, err := e.completer.Complete(ctx, systemPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("%w: final response: %v", contractx.ErrModelInvoke, err)
	}
	return strings.TrimSpace(response), nil
}

func (e *Engine) fallback(agentType contractx.AgentType) contractx.SubAgentResponse {
	e.observer.ResponseGenerated(agentType, len(FallbackResponse))
	return contractx.SubAgentResponse{
		Response:  FallbackResponse,
		AgentType: agentType,
	}
}

// resolveUserID swaps an email address for the internal identifier when a
// resolver is wired. A resolution miss leaves the identifier unset so
// user-scoped operations fail with a missing-identifier outcome instead of
// querying with a bogus value.
func (e *Engine) resolveUserID(ctx context.Context, userID string) string {
	if e.users == nil || !strings.Contains(userID, "@") {
		return userID
	}
	resolved, err := e.users.ResolveUserID(ctx, userID)
	if err != nil {
		return ""
	}
	return resolved
}

func toolDecisionPrompt(spec registryx.Specialist) string {
	var b strings.Builder
	b.WriteString(spec.SystemPrompt)
	b.WriteString("\n\nYou have access to the following tools:\n")
	for _, info := range spec.Tools {
		fmt.Fprintf(&b, "- %s: %s\n", info.Name, info.Desc)
		for _, p := range info.Params {
			required := "optional"
			if p.Required {
				required = "required"
			}
			fmt.Fprintf(&b, "    %s (%s, %s): %s\n", p.Name, p.Type, required, p.Desc)
		}
	}
	b.WriteString("\nDecide which tools you need to answer the customer. Respond with ONLY a JSON array of tool calls, each an object with \"name\" and \"arguments\" fields. Respond with an empty array [] if no tools are needed.")
	return b.String()
}

func userPrompt(message, conversationContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer message: %s", message)
	if conversationContext != "" {
		fmt.Fprintf(&b, "\n\nRecent conversation context:\n%s", conversationContext)
	}
	return b.String()
}

// parseToolRequests extracts the first balanced JSON array from raw model
// output and keeps the well-formed entries: non-empty name plus an arguments
// object (empty is fine, absent or null is not). Anything unparseable yields
// an empty plan.
func parseToolRequests(raw string) []contractx.ToolRequest {
	fragment, ok := extractx.FirstArray(raw)
	if !ok {
		return nil
	}

	var decoded []contractx.ToolRequest
	if err := json.Unmarshal([]byte(fragment), &decoded); err != nil {
		return nil
	}

	requests := make([]contractx.ToolRequest, 0, len(decoded))
	for _, req := range decoded {
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Args == nil {
			continue
		}
		requests = append(requests, req)
	}
	if len(requests) == 0 {
		return nil
	}
	return requests
}

func serializeResults(results []contractx.ToolResult) string {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
