package tool

import (
	contractx "github.com/pattarad/relaydesk/agent/contract"
)

const (
	ToolGetConversationHistory = "getConversationHistory"
	ToolGetUserProfile         = "getUserProfile"
	ToolGetRecentActivity      = "getRecentActivity"
	ToolGetProductInfo         = "getProductInfo"
	ToolGetCompanyInfo         = "getCompanyInfo"

	ToolGetOrderDetails    = "getOrderDetails"
	ToolGetDeliveryStatus  = "getDeliveryStatus"
	ToolGetUserOrders      = "getUserOrders"
	ToolCancelOrder        = "cancelOrder"
	ToolGetOrderByTracking = "getOrderByTracking"

	ToolGetInvoiceDetails = "getInvoiceDetails"
	ToolGetUserInvoices   = "getUserInvoices"
	ToolGetRefundStatus   = "getRefundStatus"
	ToolGetUserRefunds    = "getUserRefunds"
	ToolGetBillingSummary = "getBillingSummary"
)

// Param describes one argument in a tool's parameter schema.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Desc     string `json:"description"`
	Required bool   `json:"required"`
}

// Info is the typed descriptor for one tool: its name, what it does, and its
// parameter schema. Descriptors drive both prompt rendering and validation of
// parsed tool names.
type Info struct {
	Name   string  `json:"name"`
	Desc   string  `json:"description"`
	Params []Param `json:"parameters,omitempty"`
}

// InfosFor returns the permitted tool descriptors for one specialist. The
// tables are static; an unknown agent type has no tools.
func InfosFor(agentType contractx.AgentType) []Info {
	switch agentType {
	case contractx.AgentTypeSupport:
		return []Info{
			{
				Name: ToolGetConversationHistory,
				Desc: "Fetch the user's recent support conversations.",
				Params: []Param{
					{Name: "limit", Type: "number", Desc: "Max conversations to return"},
				},
			},
			{
				Name: ToolGetUserProfile,
				Desc: "Fetch the user's profile with order and invoice counts.",
			},
			{
				Name: ToolGetRecentActivity,
				Desc: "Fetch the user's recent orders, invoices, and refunds in one aggregate.",
			},
			{
				Name: ToolGetProductInfo,
				Desc: "Look up product information by name or SKU.",
				Params: []Param{
					{Name: "productName", Type: "string", Desc: "Product name"},
					{Name: "sku", Type: "string", Desc: "Product SKU"},
				},
			},
			{
				Name: ToolGetCompanyInfo,
				Desc: "Fetch company details: business hours, contact info, shipping and return policies.",
			},
		}
	case contractx.AgentTypeOrder:
		return []Info{
			{
				Name: ToolGetOrderDetails,
				Desc: "Fetch one order with items, delivery, and shipping address.",
				Params: []Param{
					{Name: "orderId", Type: "string", Desc: "Order identifier"},
					{Name: "orderNumber", Type: "string", Desc: "Human-readable order number, e.g. ORD-1002"},
				},
			},
			{
				Name: ToolGetDeliveryStatus,
				Desc: "Fetch the delivery record for an order.",
				Params: []Param{
					{Name: "orderId", Type: "string", Desc: "Order identifier", Required: true},
				},
			},
			{
				Name: ToolGetUserOrders,
				Desc: "List the user's orders, newest first.",
				Params: []Param{
					{Name: "limit", Type: "number", Desc: "Max orders to return"},
				},
			},
			{
				Name: ToolCancelOrder,
				Desc: "Cancel an order that has not shipped yet.",
				Params: []Param{
					{Name: "orderId", Type: "string", Desc: "Order identifier", Required: true},
					{Name: "reason", Type: "string", Desc: "Cancellation reason"},
				},
			},
			{
				Name: ToolGetOrderByTracking,
				Desc: "Look an order up by tracking number alone.",
				Params: []Param{
					{Name: "trackingNumber", Type: "string", Desc: "Carrier tracking number", Required: true},
				},
			},
		}
	case contractx.AgentTypeBilling:
		return []Info{
			{
				Name: ToolGetInvoiceDetails,
				Desc: "Fetch one invoice with its linked order.",
				Params: []Param{
					{Name: "invoiceId", Type: "string", Desc: "Invoice identifier"},
					{Name: "invoiceNumber", Type: "string", Desc: "Human-readable invoice number"},
				},
			},
			{
				Name: ToolGetUserInvoices,
				Desc: "List the user's invoices, newest first, optionally filtered by status.",
				Params: []Param{
					{Name: "status", Type: "string", Desc: "PENDING, PAID, or OVERDUE"},
					{Name: "limit", Type: "number", Desc: "Max invoices to return"},
				},
			},
			{
				Name: ToolGetRefundStatus,
				Desc: "Fetch one refund by id, refund number, or order id.",
				Params: []Param{
					{Name: "refundId", Type: "string", Desc: "Refund identifier"},
					{Name: "refundNumber", Type: "string", Desc: "Human-readable refund number"},
					{Name: "orderId", Type: "string", Desc: "Parent order identifier"},
				},
			},
			{
				Name: ToolGetUserRefunds,
				Desc: "List the user's refunds, newest first, optionally filtered by status.",
				Params: []Param{
					{Name: "status", Type: "string", Desc: "REQUESTED, APPROVED, COMPLETED, or REJECTED"},
				},
			},
			{
				Name: ToolGetBillingSummary,
				Desc: "Aggregate invoice and refund counts by status.",
			},
		}
	default:
		return nil
	}
}

// Allowed returns the permitted tool-name set for one specialist.
func Allowed(agentType contractx.AgentType) map[string]struct{} {
	infos := InfosFor(agentType)
	allowed := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		allowed[info.Name] = struct{}{}
	}
	return allowed
}
