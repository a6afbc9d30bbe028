package tool

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	storex "github.com/pattarad/relaydesk/store"
)

func seededDeps() Deps {
	s := storex.SeedMemStore()
	return Deps{Support: s, Order: s, Billing: s}
}

func TestInfosForClosedSets(t *testing.T) {
	t.Parallel()

	if n := len(InfosFor(contractx.AgentTypeSupport)); n != 5 {
		t.Fatalf("support tools = %d, want 5", n)
	}
	if n := len(InfosFor(contractx.AgentTypeOrder)); n != 5 {
		t.Fatalf("order tools = %d, want 5", n)
	}
	if n := len(InfosFor(contractx.AgentTypeBilling)); n != 5 {
		t.Fatalf("billing tools = %d, want 5", n)
	}
	if infos := InfosFor(contractx.AgentType("router")); infos != nil {
		t.Fatalf("unknown agent must have no tools, got %#v", infos)
	}
}

func TestAllowedMatchesDispatchTable(t *testing.T) {
	t.Parallel()

	for _, agentType := range []contractx.AgentType{
		contractx.AgentTypeSupport,
		contractx.AgentTypeOrder,
		contractx.AgentTypeBilling,
	} {
		allowed := Allowed(agentType)
		table := operationsFor(agentType, Deps{})
		if len(allowed) != len(table) {
			t.Fatalf("%s: allowed=%d table=%d", agentType, len(allowed), len(table))
		}
		for name := range table {
			if _, ok := allowed[name]; !ok {
				t.Fatalf("%s: %s dispatchable but not in allowed set", agentType, name)
			}
		}
	}
}

func TestExecutorRejectsForeignTool(t *testing.T) {
	t.Parallel()

	// Empty deps: a rejected tool must never reach the data layer, so nil
	// backends are safe here.
	executor := NewExecutor(contractx.AgentTypeSupport, Deps{})
	out := executor(context.Background(), ToolCancelOrder, "user_alice", nil)
	if !out.Failed() {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(out.Error, "not permitted") {
		t.Fatalf("unexpected reason: %s", out.Error)
	}
}

func TestExecutorRejectsUnknownTool(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeBilling, Deps{})
	out := executor(context.Background(), "dropAllTables", "user_alice", nil)
	if !out.Failed() {
		t.Fatal("expected failure result")
	}
}

func TestGetOrderDetailsByNumber(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeOrder, seededDeps())
	out := executor(context.Background(), ToolGetOrderDetails, "user_alice", map[string]any{
		"orderNumber": "ORD-1002",
	})
	if out.Failed() {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	order, ok := out.Result.(*storex.Order)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if order.ID != "order_2" {
		t.Fatalf("unexpected order: %s", order.ID)
	}
}

func TestGetOrderDetailsMissingUserID(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeOrder, seededDeps())
	out := executor(context.Background(), ToolGetOrderDetails, "", map[string]any{
		"orderNumber": "ORD-1002",
	})
	if !out.Failed() {
		t.Fatal("expected failure result")
	}
	if out.Error != "userId is required" {
		t.Fatalf("unexpected reason: %s", out.Error)
	}
}

func TestGetOrderDetailsMissingKey(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeOrder, seededDeps())
	out := executor(context.Background(), ToolGetOrderDetails, "user_alice", nil)
	if !out.Failed() {
		t.Fatal("expected failure result")
	}
	if out.Error != "orderId or orderNumber is required" {
		t.Fatalf("unexpected reason: %s", out.Error)
	}
}

func TestCancelOrderReasonStrings(t *testing.T) {
	t.Parallel()

	deps := seededDeps()
	executor := NewExecutor(contractx.AgentTypeOrder, deps)
	ctx := context.Background()

	first := executor(ctx, ToolCancelOrder, "user_carol", map[string]any{"orderId": "order_7"})
	if first.Failed() {
		t.Fatalf("first cancel failed: %s", first.Error)
	}

	second := executor(ctx, ToolCancelOrder, "user_carol", map[string]any{"orderId": "order_7"})
	if second.Error != "Order is already cancelled" {
		t.Fatalf("second cancel: unexpected reason %q", second.Error)
	}

	refunded := executor(ctx, ToolCancelOrder, "user_carol", map[string]any{"orderId": "order_5"})
	if refunded.Error != "Cannot cancel a refunded order" {
		t.Fatalf("refunded: unexpected reason %q", refunded.Error)
	}

	shipped := executor(ctx, ToolCancelOrder, "user_alice", map[string]any{"orderId": "order_2"})
	if shipped.Error != "Cannot cancel an order that has already been shipped" {
		t.Fatalf("shipped: unexpected reason %q", shipped.Error)
	}
}

func TestGetOrderByTrackingNeedsNoUser(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeOrder, seededDeps())
	out := executor(context.Background(), ToolGetOrderByTracking, "", map[string]any{
		"trackingNumber": "TRK-UPS-00200456",
	})
	if out.Failed() {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	delivery, ok := out.Result.(*storex.Delivery)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if delivery.OrderID != "order_2" {
		t.Fatalf("unexpected order: %s", delivery.OrderID)
	}
}

func TestGetBillingSummaryScoped(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeBilling, seededDeps())
	out := executor(context.Background(), ToolGetBillingSummary, "user_carol", nil)
	if out.Failed() {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	summary, ok := out.Result.(*storex.BillingSummary)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if summary.RefundSummary.Completed != 1 {
		t.Fatalf("unexpected completed refunds: %d", summary.RefundSummary.Completed)
	}
}

func TestGetCompanyInfoStatic(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeSupport, Deps{})
	out := executor(context.Background(), ToolGetCompanyInfo, "", nil)
	if out.Failed() {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	info, ok := out.Result.(CompanyInfo)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if info.BusinessHours["sunday"] != "Closed" {
		t.Fatalf("unexpected hours: %#v", info.BusinessHours)
	}
}
