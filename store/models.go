package store

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type OrderStatus string

const (
	OrderSuccess    OrderStatus = "SUCCESS"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

type DeliveryStatus string

const (
	DeliveryDispatched     DeliveryStatus = "DISPATCHED"
	DeliveryInTransit      DeliveryStatus = "IN_TRANSIT"
	DeliveryOutForDelivery DeliveryStatus = "OUT_FOR_DELIVERY"
	DeliveryDelivered      DeliveryStatus = "DELIVERED"
	DeliveryReturned       DeliveryStatus = "RETURNED"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

type RefundStatus string

const (
	RefundRequested RefundStatus = "REQUESTED"
	RefundApproved  RefundStatus = "APPROVED"
	RefundCompleted RefundStatus = "COMPLETED"
	RefundRejected  RefundStatus = "REJECTED"
)

type MessageRole string

const (
	RoleUser      MessageRole = "USER"
	RoleAssistant MessageRole = "ASSISTANT"
	RoleSystem    MessageRole = "SYSTEM"
)

// RefundTimelineNote is attached to every successful cancellation result.
const RefundTimelineNote = "Refunds will be processed within 5-7 business days"

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	Phone     string    `bun:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Orders []*Order `bun:"rel:has-many,join:id=user_id" json:"-"`
}

type Address struct {
	bun.BaseModel `bun:"table:addresses,alias:a"`

	ID        string `bun:"id,pk" json:"id"`
	UserID    string `bun:"user_id,notnull" json:"user_id"`
	House     string `bun:"house" json:"house"`
	Street    string `bun:"street" json:"street"`
	District  string `bun:"district" json:"district"`
	Pincode   string `bun:"pincode" json:"pincode"`
	State     string `bun:"state" json:"state"`
	Country   string `bun:"country" json:"country"`
	IsDefault bool   `bun:"is_default" json:"is_default"`
}

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID          string      `bun:"id,pk" json:"id"`
	OrderNumber string      `bun:"order_number,notnull,unique" json:"order_number"`
	UserID      string      `bun:"user_id,notnull" json:"user_id"`
	AddressID   string      `bun:"address_id" json:"address_id,omitempty"`
	Description string      `bun:"description" json:"description,omitempty"`
	OrderStatus OrderStatus `bun:"order_status,notnull" json:"order_status"`
	Price       float64     `bun:"price,notnull" json:"price"`
	CreatedAt   time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Items    []*OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
	Delivery *Delivery    `bun:"rel:has-one,join:id=order_id" json:"delivery,omitempty"`
	Address  *Address     `bun:"rel:belongs-to,join:address_id=id" json:"address,omitempty"`
	User     *User        `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID         string  `bun:"id,pk" json:"id"`
	OrderID    string  `bun:"order_id,notnull" json:"order_id"`
	Name       string  `bun:"name,notnull" json:"name"`
	Quantity   int     `bun:"quantity,notnull" json:"quantity"`
	TotalPrice float64 `bun:"total_price,notnull" json:"total_price"`
}

// TrackingUpdate is one checkpoint in a delivery's history. Stored as jsonb,
// matching how the carrier feed delivers it.
type TrackingUpdate struct {
	Location  string `json:"location"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type Delivery struct {
	bun.BaseModel `bun:"table:deliveries,alias:d"`

	ID             string           `bun:"id,pk" json:"id"`
	OrderID        string           `bun:"order_id,notnull,unique" json:"order_id"`
	TrackingNumber string           `bun:"tracking_number,notnull,unique" json:"tracking_number"`
	Carrier        string           `bun:"carrier" json:"carrier,omitempty"`
	Status         DeliveryStatus   `bun:"status,notnull" json:"status"`
	Updates        []TrackingUpdate `bun:"updates,type:jsonb" json:"updates,omitempty"`

	Order *Order `bun:"rel:belongs-to,join:order_id=id" json:"order,omitempty"`
}

type Invoice struct {
	bun.BaseModel `bun:"table:invoices,alias:i"`

	ID            string        `bun:"id,pk" json:"id"`
	InvoiceNumber string        `bun:"invoice_number,notnull,unique" json:"invoice_number"`
	UserID        string        `bun:"user_id,notnull" json:"user_id"`
	OrderID       string        `bun:"order_id" json:"order_id,omitempty"`
	Amount        float64       `bun:"amount,notnull" json:"amount"`
	Tax           float64       `bun:"tax" json:"tax"`
	Total         float64       `bun:"total,notnull" json:"total"`
	Status        InvoiceStatus `bun:"status,notnull" json:"status"`
	CreatedAt     time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Order *Order `bun:"rel:belongs-to,join:order_id=id" json:"order,omitempty"`
}

type Refund struct {
	bun.BaseModel `bun:"table:refunds,alias:r"`

	ID           string       `bun:"id,pk" json:"id"`
	RefundNumber string       `bun:"refund_number,notnull,unique" json:"refund_number"`
	UserID       string       `bun:"user_id,notnull" json:"user_id"`
	OrderID      string       `bun:"order_id" json:"order_id,omitempty"`
	Amount       float64      `bun:"amount,notnull" json:"amount"`
	Status       RefundStatus `bun:"status,notnull" json:"status"`
	Reason       string       `bun:"reason" json:"reason,omitempty"`
	RequestedAt  time.Time    `bun:"requested_at,nullzero,notnull,default:current_timestamp" json:"requested_at"`

	Order *Order `bun:"rel:belongs-to,join:order_id=id" json:"order,omitempty"`
}

type Conversation struct {
	bun.BaseModel `bun:"table:conversations,alias:c"`

	ID            string    `bun:"id,pk" json:"id"`
	UserID        string    `bun:"user_id,notnull" json:"user_id"`
	Title         string    `bun:"title" json:"title"`
	LastAgentType string    `bun:"last_agent_type" json:"last_agent_type,omitempty"`
	AgentsUsed    []string  `bun:"agents_used,type:jsonb" json:"agents_used,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Messages []*Message `bun:"rel:has-many,join:id=conversation_id" json:"messages,omitempty"`
}

type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID             string          `bun:"id,pk" json:"id"`
	ConversationID string          `bun:"conversation_id,notnull" json:"conversation_id"`
	Role           MessageRole     `bun:"role,notnull" json:"role"`
	Content        string          `bun:"content,notnull" json:"content"`
	AgentType      string          `bun:"agent_type" json:"agent_type,omitempty"`
	ToolCalls      json.RawMessage `bun:"tool_calls,type:jsonb" json:"tool_calls,omitempty"`
	ToolResults    json.RawMessage `bun:"tool_results,type:jsonb" json:"tool_results,omitempty"`
	CreatedAt      time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// UserProfile is the trimmed user view returned to the support agent.
type UserProfile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	OrderCount   int       `json:"order_count"`
	InvoiceCount int       `json:"invoice_count"`
}

// ActivitySummary aggregates a user's most recent orders, invoices, and
// refunds for the support agent's grounding context.
type ActivitySummary struct {
	RecentOrders   []Order   `json:"recent_orders"`
	RecentInvoices []Invoice `json:"recent_invoices"`
	RecentRefunds  []Refund  `json:"recent_refunds"`
}

// BillingSummary aggregates invoice and refund counts by status.
type BillingSummary struct {
	InvoiceSummary struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
		Paid    int `json:"paid"`
	} `json:"invoice_summary"`
	RefundSummary struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
	} `json:"refund_summary"`
}

// CancelledOrder is the result of a successful cancellation.
type CancelledOrder struct {
	Order            Order  `json:"order"`
	CancellationNote string `json:"cancellation_note"`
	RefundTimeline   string `json:"refund_timeline"`
}

// cancelPrecondition enforces the cancellation state machine: an order may be
// cancelled only while it is neither CANCELLED nor REFUNDED, and only before
// its delivery is DISPATCHED or OUT_FOR_DELIVERY.
func cancelPrecondition(o *Order) error {
	switch o.OrderStatus {
	case OrderCancelled:
		return ErrAlreadyCancelled
	case OrderRefunded:
		return ErrOrderRefunded
	}
	if o.Delivery != nil {
		switch o.Delivery.Status {
		case DeliveryDispatched, DeliveryOutForDelivery:
			return ErrOrderShipped
		}
	}
	return nil
}
