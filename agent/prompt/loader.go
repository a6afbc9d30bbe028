package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/router.txt
	routerRaw string

	//go:embed template/support.txt
	supportRaw string

	//go:embed template/order.txt
	orderRaw string

	//go:embed template/billing.txt
	billingRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Router  string
	Support string
	Order   string
	Billing string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Router:  strings.TrimSpace(routerRaw),
		Support: strings.TrimSpace(supportRaw),
		Order:   strings.TrimSpace(orderRaw),
		Billing: strings.TrimSpace(billingRaw),
	}
}
