package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/pattarad/relaydesk/agent/contract"
)

// Executor runs one tool invocation for its specialist. Every outcome is a
// uniform ToolResult; an executor never returns a Go error for expected
// failures (unknown tool, missing record, bad arguments).
type Executor func(ctx context.Context, tool, userID string, args map[string]any) contractx.ToolResult

// operation is one entry in a specialist's dispatch table.
type operation func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult

// NewExecutor builds the dispatch table for one specialist. The permission
// check runs against the declared catalog set, so a tool name outside it
// yields a not-permitted failure without touching the data layer.
func NewExecutor(agentType contractx.AgentType, deps Deps) Executor {
	allowed := Allowed(agentType)
	table := operationsFor(agentType, deps)
	return func(ctx context.Context, tool, userID string, args map[string]any) contractx.ToolResult {
		if _, ok := allowed[tool]; !ok {
			return failure(tool, fmt.Sprintf("%v: tool=%s agent=%s", contractx.ErrToolNotPermitted, tool, agentType))
		}
		op, ok := table[tool]
		if !ok {
			return failure(tool, fmt.Sprintf("%v: tool=%s agent=%s", contractx.ErrToolNotPermitted, tool, agentType))
		}
		return op(ctx, userID, args)
	}
}

func operationsFor(agentType contractx.AgentType, deps Deps) map[string]operation {
	switch agentType {
	case contractx.AgentTypeSupport:
		return map[string]operation{
			ToolGetConversationHistory: opGetConversationHistory(deps.Support),
			ToolGetUserProfile:         opGetUserProfile(deps.Support),
			ToolGetRecentActivity:      opGetRecentActivity(deps.Support),
			ToolGetProductInfo:         opGetProductInfo(),
			ToolGetCompanyInfo:         opGetCompanyInfo(),
		}
	case contractx.AgentTypeOrder:
		return map[string]operation{
			ToolGetOrderDetails:    opGetOrderDetails(deps.Order),
			ToolGetDeliveryStatus:  opGetDeliveryStatus(deps.Order),
			ToolGetUserOrders:      opGetUserOrders(deps.Order),
			ToolCancelOrder:        opCancelOrder(deps.Order),
			ToolGetOrderByTracking: opGetOrderByTracking(deps.Order),
		}
	case contractx.AgentTypeBilling:
		return map[string]operation{
			ToolGetInvoiceDetails: opGetInvoiceDetails(deps.Billing),
			ToolGetUserInvoices:   opGetUserInvoices(deps.Billing),
			ToolGetRefundStatus:   opGetRefundStatus(deps.Billing),
			ToolGetUserRefunds:    opGetUserRefunds(deps.Billing),
			ToolGetBillingSummary: opGetBillingSummary(deps.Billing),
		}
	default:
		return nil
	}
}

func success(tool string, result any) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Result: result}
}

func failure(tool, reason string) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Error: reason}
}

func missingUserID(tool string) contractx.ToolResult {
	return failure(tool, contractx.ErrMissingUserID.Error())
}

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// intArg tolerates the number representations a JSON decode can hand back.
func intArg(args map[string]any, key string, def int) int {
	if args == nil {
		return def
	}
	switch v := args[key].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return def
}
