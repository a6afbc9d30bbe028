package tool

import (
	"context"

	storex "github.com/pattarad/relaydesk/store"
)

// UserResolver maps an email address onto a user identifier. Misses come back
// as store.ErrNotFound, never as a raised infrastructure error.
type UserResolver interface {
	ResolveUserID(ctx context.Context, email string) (string, error)
}

// SupportData is the slice of the data lookup layer the support agent may
// touch.
type SupportData interface {
	ConversationHistory(ctx context.Context, userID string, limit int) ([]storex.Conversation, error)
	UserProfile(ctx context.Context, userID string) (*storex.UserProfile, error)
	RecentActivity(ctx context.Context, userID string) (*storex.ActivitySummary, error)
}

// OrderData is the slice of the data lookup layer the order agent may touch.
type OrderData interface {
	Order(ctx context.Context, userID string, key storex.LookupKey) (*storex.Order, error)
	DeliveryStatus(ctx context.Context, userID, orderID string) (*storex.Delivery, error)
	UserOrders(ctx context.Context, userID string, limit int) ([]storex.Order, error)
	CancelOrder(ctx context.Context, userID, orderID, reason string) (*storex.CancelledOrder, error)
	OrderByTracking(ctx context.Context, trackingNumber string) (*storex.Delivery, error)
}

// BillingData is the slice of the data lookup layer the billing agent may
// touch.
type BillingData interface {
	Invoice(ctx context.Context, userID string, key storex.LookupKey) (*storex.Invoice, error)
	UserInvoices(ctx context.Context, userID string, status storex.InvoiceStatus, limit int) ([]storex.Invoice, error)
	Refund(ctx context.Context, userID string, key storex.LookupKey) (*storex.Refund, error)
	UserRefunds(ctx context.Context, userID string, status storex.RefundStatus) ([]storex.Refund, error)
	BillingSummary(ctx context.Context, userID string) (*storex.BillingSummary, error)
}

// Deps bundles the backing data slices handed to NewExecutor.
type Deps struct {
	Support SupportData
	Order   OrderData
	Billing BillingData
}
