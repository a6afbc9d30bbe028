package tool

import (
	"context"

	contractx "github.com/pattarad/relaydesk/agent/contract"
)

// ProductInfo is the static product lookup payload. The catalog service is
// not wired up yet, so the answer carries policy data only.
type ProductInfo struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Description  string `json:"description"`
	ReturnPolicy string `json:"return_policy"`
	Warranty     string `json:"warranty"`
}

// CompanyInfo is static company data: hours, contact, and policies.
type CompanyInfo struct {
	CompanyName    string            `json:"company_name"`
	BusinessHours  map[string]string `json:"business_hours"`
	Contact        map[string]string `json:"contact"`
	ShippingPolicy map[string]string `json:"shipping_policy"`
	ReturnPolicy   string            `json:"return_policy"`
	PaymentMethods []string          `json:"payment_methods"`
}

func opGetProductInfo() operation {
	return func(_ context.Context, _ string, args map[string]any) contractx.ToolResult {
		name := stringArg(args, "productName")
		if name == "" {
			name = "Product"
		}
		sku := stringArg(args, "sku")
		if sku == "" {
			sku = "N/A"
		}

		return success(ToolGetProductInfo, ProductInfo{
			Name:         name,
			SKU:          sku,
			Description:  "Product information is temporarily unavailable.",
			ReturnPolicy: "30-day return policy for unused items in original packaging",
			Warranty:     "Standard 1-year warranty",
		})
	}
}

func opGetCompanyInfo() operation {
	return func(_ context.Context, _ string, _ map[string]any) contractx.ToolResult {
		return success(ToolGetCompanyInfo, CompanyInfo{
			CompanyName: "Our Company",
			BusinessHours: map[string]string{
				"monday":    "9:00 AM - 6:00 PM",
				"tuesday":   "9:00 AM - 6:00 PM",
				"wednesday": "9:00 AM - 6:00 PM",
				"thursday":  "9:00 AM - 6:00 PM",
				"friday":    "9:00 AM - 6:00 PM",
				"saturday":  "10:00 AM - 4:00 PM",
				"sunday":    "Closed",
			},
			Contact: map[string]string{
				"email":   "support@example.com",
				"phone":   "1-800-SUPPORT",
				"website": "https://www.example.com",
			},
			ShippingPolicy: map[string]string{
				"standard":       "5-7 business days",
				"express":        "2-3 business days",
				"free_threshold": "$50",
			},
			ReturnPolicy:   "30-day return policy for unused items in original packaging",
			PaymentMethods: []string{"Credit Cards", "PayPal", "Apple Pay", "Google Pay"},
		})
	}
}
