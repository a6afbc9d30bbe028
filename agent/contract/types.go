package contract

// AgentType identifies one of the fixed specialist agents. The set is closed;
// routing output outside this set is treated as a parse failure, never as a
// new category.
type AgentType string

const (
	AgentTypeSupport AgentType = "support"
	AgentTypeOrder   AgentType = "order"
	AgentTypeBilling AgentType = "billing"
)

// Known reports whether a is one of the closed specialist set.
func (a AgentType) Known() bool {
	switch a {
	case AgentTypeSupport, AgentTypeOrder, AgentTypeBilling:
		return true
	}
	return false
}

// RoutingDecision is produced once per inbound message by the router and
// consumed immediately by the delegation engine.
type RoutingDecision struct {
	AgentType  AgentType `json:"agent_type"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
}

// ToolRequest is a single tool invocation parsed from model output. It lives
// for one delegation cycle and is validated against the specialist's permitted
// tool set before execution.
type ToolRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// ToolResult is the uniform envelope returned by every data lookup operation.
// Error is set on failure; Result is set on success.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Failed reports whether the invocation ended in a failure outcome.
func (r ToolResult) Failed() bool {
	return r.Error != ""
}

// SubAgentResponse is the terminal output of one delegation cycle. ToolCalls
// and ToolResults are kept for audit alongside the assistant message.
type SubAgentResponse struct {
	Response    string        `json:"response"`
	AgentType   AgentType     `json:"agent_type"`
	ToolCalls   []ToolRequest `json:"tool_calls,omitempty"`
	ToolResults []ToolResult  `json:"tool_results,omitempty"`
}
