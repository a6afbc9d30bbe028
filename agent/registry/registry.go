// Package registry is the static catalog of specialist agents. Lookup is a
// pure mapping over the closed agent set; it is not runtime-extensible.
package registry

import (
	contractx "github.com/pattarad/relaydesk/agent/contract"
	promptx "github.com/pattarad/relaydesk/agent/prompt"
	toolx "github.com/pattarad/relaydesk/agent/tool"
)

// Capability describes one thing a specialist can do. Used for introspection
// and UI only; runtime behavior is driven by the tool tables.
type Capability struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Specialist is one entry in the catalog: the behavior contract for a single
// agent.
type Specialist struct {
	Type         contractx.AgentType `json:"type"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	SystemPrompt string              `json:"-"`
	Capabilities []Capability        `json:"capabilities"`
	Tools        []toolx.Info        `json:"tools"`
}

// Lookup returns the catalog entry for agentType. Unknown identifiers fail
// closed to the support specialist: the router already guarantees closed-set
// output, but the registry defends the invariant for direct callers too.
func Lookup(agentType contractx.AgentType) Specialist {
	if !agentType.Known() {
		agentType = contractx.AgentTypeSupport
	}

	prompts := promptx.LoadPromptSet()

	switch agentType {
	case contractx.AgentTypeOrder:
		return Specialist{
			Type:         contractx.AgentTypeOrder,
			Name:         "Order Agent",
			Description:  "Handles order status, tracking, modifications, cancellations, and delivery inquiries",
			SystemPrompt: prompts.Order,
			Capabilities: orderCapabilities,
			Tools:        toolx.InfosFor(contractx.AgentTypeOrder),
		}
	case contractx.AgentTypeBilling:
		return Specialist{
			Type:         contractx.AgentTypeBilling,
			Name:         "Billing Agent",
			Description:  "Handles payment issues, refunds, invoices, subscriptions, and billing matters",
			SystemPrompt: prompts.Billing,
			Capabilities: billingCapabilities,
			Tools:        toolx.InfosFor(contractx.AgentTypeBilling),
		}
	default:
		return Specialist{
			Type:         contractx.AgentTypeSupport,
			Name:         "Support Agent",
			Description:  "Handles general inquiries, FAQs, troubleshooting, and customer service questions",
			SystemPrompt: prompts.Support,
			Capabilities: supportCapabilities,
			Tools:        toolx.InfosFor(contractx.AgentTypeSupport),
		}
	}
}

// All lists the full catalog in a stable order.
func All() []Specialist {
	return []Specialist{
		Lookup(contractx.AgentTypeSupport),
		Lookup(contractx.AgentTypeOrder),
		Lookup(contractx.AgentTypeBilling),
	}
}

var supportCapabilities = []Capability{
	{
		Name:        "General Inquiries",
		Description: "Answer general questions about products, services, and policies",
		Examples:    []string{"What is your return policy?", "What are your business hours?"},
	},
	{
		Name:        "Troubleshooting",
		Description: "Help troubleshoot common issues and technical problems",
		Examples:    []string{"I cannot log in", "The website is not loading"},
	},
	{
		Name:        "Account Guidance",
		Description: "Provide basic account and login assistance",
		Examples:    []string{"How do I reset my password?", "Update my email address"},
	},
	{
		Name:        "FAQ Assistance",
		Description: "Answer frequently asked questions",
		Examples:    []string{"FAQs about shipping", "Product information"},
	},
}

var orderCapabilities = []Capability{
	{
		Name:        "Order Status",
		Description: "Check and provide order status information",
		Examples:    []string{"Where is my order?", "What is my order status?"},
	},
	{
		Name:        "Tracking",
		Description: "Provide tracking information and delivery updates",
		Examples:    []string{"Track my order", "What is my tracking number?"},
	},
	{
		Name:        "Order Modifications",
		Description: "Help modify orders (address, delivery date)",
		Examples:    []string{"Change my shipping address", "Update delivery date"},
	},
	{
		Name:        "Order Cancellations",
		Description: "Process order cancellations",
		Examples:    []string{"Cancel my order", "I want to cancel"},
	},
}

var billingCapabilities = []Capability{
	{
		Name:        "Payment Issues",
		Description: "Resolve payment failures and declines",
		Examples:    []string{"My payment failed", "Card was declined"},
	},
	{
		Name:        "Refund Status",
		Description: "Check and explain refund status",
		Examples:    []string{"Where is my refund?", "Status of my refund"},
	},
	{
		Name:        "Invoices",
		Description: "Provide invoice details and billing history",
		Examples:    []string{"Invoice please", "Show my invoices"},
	},
	{
		Name:        "Subscriptions",
		Description: "Manage subscription inquiries and cancellations",
		Examples:    []string{"Cancel my subscription", "Upgrade my plan"},
	},
}
