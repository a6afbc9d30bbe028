package delegate

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	toolx "github.com/pattarad/relaydesk/agent/tool"
	storex "github.com/pattarad/relaydesk/store"
)

// scriptedCompleter returns one scripted step per call, in order. A step with
// err set fails that call.
type scriptedCompleter struct {
	steps []completerStep
	calls int

	systems []string
	prompts []string
}

type completerStep struct {
	output string
	err    error
}

func (s *scriptedCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.systems = append(s.systems, systemPrompt)
	s.prompts = append(s.prompts, userPrompt)
	if s.calls >= len(s.steps) {
		return "", errors.New("unscripted completer call")
	}
	step := s.steps[s.calls]
	s.calls++
	return step.output, step.err
}

type recordingObserver struct {
	contractx.NopObserver
	invoked   []string
	failed    []string
	generated int
}

func (r *recordingObserver) ToolInvoked(_ contractx.AgentType, tool string) {
	r.invoked = append(r.invoked, tool)
}

func (r *recordingObserver) ToolFailed(_ contractx.AgentType, tool, _ string) {
	r.failed = append(r.failed, tool)
}

func (r *recordingObserver) ResponseGenerated(_ contractx.AgentType, _ int) {
	r.generated++
}

func seededDeps() (toolx.Deps, *storex.MemStore) {
	s := storex.SeedMemStore()
	return toolx.Deps{Support: s, Order: s, Billing: s}, s
}

func TestExecuteFullCycle(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[{"name": "getOrderDetails", "arguments": {"orderNumber": "ORD-1002"}}]`},
		{output: "Your order ORD-1002 is processing and out for delivery."},
	}}
	observer := &recordingObserver{}
	engine := New(completer, deps, WithObserver(observer))

	out := engine.Execute(context.Background(), contractx.AgentTypeOrder, "Where is ORD-1002?", "user_alice", "")
	if out.AgentType != contractx.AgentTypeOrder {
		t.Fatalf("agent = %s, want order", out.AgentType)
	}
	if out.Response != "Your order ORD-1002 is processing and out for delivery." {
		t.Fatalf("unexpected response: %q", out.Response)
	}
	if len(out.ToolCalls) != 1 || out.ToolCalls[0].Name != toolx.ToolGetOrderDetails {
		t.Fatalf("unexpected tool calls: %#v", out.ToolCalls)
	}
	if len(out.ToolResults) != 1 || out.ToolResults[0].Failed() {
		t.Fatalf("unexpected tool results: %#v", out.ToolResults)
	}
	if len(observer.invoked) != 1 || observer.generated != 1 {
		t.Fatalf("observer: invoked=%v generated=%d", observer.invoked, observer.generated)
	}
	if len(completer.prompts) != 2 {
		t.Fatalf("completer called %d times, want 2", len(completer.prompts))
	}
	if !strings.Contains(completer.prompts[1], "Tool results:") {
		t.Fatalf("final prompt missing tool results: %q", completer.prompts[1])
	}
	if !strings.Contains(completer.prompts[1], "Order Agent") {
		t.Fatalf("final prompt missing specialist name: %q", completer.prompts[1])
	}
	if !strings.Contains(completer.systems[1], "Incorporate any tool results naturally") {
		t.Fatalf("final system prompt missing incorporation instruction: %q", completer.systems[1])
	}
	if !strings.HasPrefix(completer.systems[1], completer.systems[0][:40]) {
		t.Fatal("final system prompt does not extend the specialist prompt")
	}
}

func TestExecuteMalformedPlanSkipsTools(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: "I do not feel like emitting JSON."},
		{output: "Happy to help with anything else."},
	}}
	engine := New(completer, deps)

	out := engine.Execute(context.Background(), contractx.AgentTypeSupport, "hi", "user_alice", "")
	if out.Response != "Happy to help with anything else." {
		t.Fatalf("unexpected response: %q", out.Response)
	}
	if out.ToolCalls != nil || out.ToolResults != nil {
		t.Fatalf("expected empty plan, got calls=%#v results=%#v", out.ToolCalls, out.ToolResults)
	}
	if strings.Contains(completer.prompts[1], "Tool results:") {
		t.Fatalf("final prompt has tool results without tools: %q", completer.prompts[1])
	}
}

func TestExecuteToolDecisionFailure(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{err: errors.New("upstream 502")},
	}}
	observer := &recordingObserver{}
	engine := New(completer, deps, WithObserver(observer))

	out := engine.Execute(context.Background(), contractx.AgentTypeBilling, "refund please", "user_carol", "")
	if out.Response != FallbackResponse {
		t.Fatalf("unexpected response: %q", out.Response)
	}
	if out.AgentType != contractx.AgentTypeBilling {
		t.Fatalf("agent = %s, want billing", out.AgentType)
	}
	if len(out.ToolCalls) != 0 || len(out.ToolResults) != 0 {
		t.Fatalf("fallback must carry no tool activity: %#v", out)
	}
	if observer.generated != 1 {
		t.Fatalf("generated = %d, want 1", observer.generated)
	}
}

func TestExecuteFinalResponseFailure(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[]`},
		{err: errors.New("context deadline exceeded")},
	}}
	engine := New(completer, deps)

	out := engine.Execute(context.Background(), contractx.AgentTypeSupport, "hello", "user_alice", "")
	if out.Response != FallbackResponse {
		t.Fatalf("unexpected response: %q", out.Response)
	}
}

func TestExecuteToolFailureIsolation(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[{"name": "cancelOrder", "arguments": {"orderId": "order_5"}}, {"name": "getUserOrders", "arguments": {}}]`},
		{output: "Your Smart Watch order was already refunded, so it cannot be cancelled."},
	}}
	observer := &recordingObserver{}
	engine := New(completer, deps, WithObserver(observer))

	out := engine.Execute(context.Background(), contractx.AgentTypeOrder, "cancel my watch order", "user_carol", "")
	if len(out.ToolResults) != 2 {
		t.Fatalf("results = %d, want 2", len(out.ToolResults))
	}
	if out.ToolResults[0].Error != "Cannot cancel a refunded order" {
		t.Fatalf("unexpected failure reason: %q", out.ToolResults[0].Error)
	}
	if out.ToolResults[1].Failed() {
		t.Fatalf("second tool should succeed: %s", out.ToolResults[1].Error)
	}
	if len(observer.failed) != 1 || observer.failed[0] != toolx.ToolCancelOrder {
		t.Fatalf("unexpected failed events: %v", observer.failed)
	}
}

func TestExecuteForeignToolRejected(t *testing.T) {
	t.Parallel()

	deps, store := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[{"name": "cancelOrder", "arguments": {"orderId": "order_7"}}]`},
		{output: "I cannot do that from here."},
	}}
	engine := New(completer, deps)

	out := engine.Execute(context.Background(), contractx.AgentTypeSupport, "cancel order_7", "user_carol", "")
	if len(out.ToolResults) != 1 {
		t.Fatalf("results = %d, want 1", len(out.ToolResults))
	}
	if !strings.Contains(out.ToolResults[0].Error, "not permitted") {
		t.Fatalf("unexpected reason: %q", out.ToolResults[0].Error)
	}

	order, err := store.Order(context.Background(), "user_carol", storex.KeyByID("order_7"))
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	if order.OrderStatus != storex.OrderProcessing {
		t.Fatalf("rejected tool must not mutate state: %s", order.OrderStatus)
	}
}

func TestExecuteResolvesEmailToUserID(t *testing.T) {
	t.Parallel()

	deps, store := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[{"name": "getUserOrders", "arguments": {}}]`},
		{output: "You have a few recent orders."},
	}}
	engine := New(completer, deps, WithUserResolver(store))

	out := engine.Execute(context.Background(), contractx.AgentTypeOrder, "show my orders", "Carol@Example.com", "")
	if out.ToolResults[0].Failed() {
		t.Fatalf("unexpected failure: %s", out.ToolResults[0].Error)
	}
	orders, ok := out.ToolResults[0].Result.([]storex.Order)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.ToolResults[0].Result)
	}
	if len(orders) == 0 {
		t.Fatal("expected carol's orders via email resolution")
	}
	for _, o := range orders {
		if o.UserID != "user_carol" {
			t.Fatalf("order %s belongs to %s", o.ID, o.UserID)
		}
	}
}

func TestExecuteUnresolvedEmailLeavesUserUnset(t *testing.T) {
	t.Parallel()

	deps, store := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[{"name": "getUserOrders", "arguments": {}}]`},
		{output: "I could not find an account for that email."},
	}}
	engine := New(completer, deps, WithUserResolver(store))

	out := engine.Execute(context.Background(), contractx.AgentTypeOrder, "show my orders", "nobody@example.com", "")
	if len(out.ToolResults) != 1 || !out.ToolResults[0].Failed() {
		t.Fatalf("unexpected results: %#v", out.ToolResults)
	}
	if out.ToolResults[0].Error != "userId is required" {
		t.Fatalf("unexpected reason: %q", out.ToolResults[0].Error)
	}
}

func TestExecuteSecondCancellationReportsAlreadyCancelled(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[{"name": "cancelOrder", "arguments": {"orderId": "order_7"}}]`},
		{output: "Done, your Desk Lamp order is cancelled."},
		{output: `[{"name": "cancelOrder", "arguments": {"orderId": "order_7"}}]`},
		{output: "That order was already cancelled earlier, so there is nothing to do."},
	}}
	engine := New(completer, deps)
	ctx := context.Background()

	first := engine.Execute(ctx, contractx.AgentTypeOrder, "cancel my desk lamp order", "user_carol", "")
	if first.ToolResults[0].Failed() {
		t.Fatalf("first cancel failed: %s", first.ToolResults[0].Error)
	}

	second := engine.Execute(ctx, contractx.AgentTypeOrder, "cancel my desk lamp order", "user_carol", "")
	if second.ToolResults[0].Error != "Order is already cancelled" {
		t.Fatalf("unexpected reason: %q", second.ToolResults[0].Error)
	}
	if second.Response == "" || strings.Contains(second.Response, "Done,") {
		t.Fatalf("unexpected response: %q", second.Response)
	}
}

func TestExecuteUnknownAgentFailsClosed(t *testing.T) {
	t.Parallel()

	deps, _ := seededDeps()
	completer := &scriptedCompleter{steps: []completerStep{
		{output: `[]`},
		{output: "General support here."},
	}}
	engine := New(completer, deps)

	out := engine.Execute(context.Background(), contractx.AgentType("fraud"), "hello", "user_alice", "")
	if out.AgentType != contractx.AgentTypeSupport {
		t.Fatalf("agent = %s, want support", out.AgentType)
	}
	if out.Response != "General support here." {
		t.Fatalf("unexpected response: %q", out.Response)
	}
}

func TestParseToolRequestsDropsMalformedEntries(t *testing.T) {
	t.Parallel()

	raw := `Sure: [
		{"name": "  ", "arguments": {}},
		{"name": "getUserProfile", "arguments": {}},
		{"name": "getRecentActivity"},
		{"name": "getConversationHistory", "arguments": null},
		{"arguments": {"x": 1}}
	]`
	requests := parseToolRequests(raw)
	if len(requests) != 1 {
		t.Fatalf("requests = %#v, want 1", requests)
	}
	if requests[0].Name != "getUserProfile" {
		t.Fatalf("unexpected name: %q", requests[0].Name)
	}
	if requests[0].Args == nil {
		t.Fatal("kept entry lost its arguments object")
	}
}
