package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is a volatile implementation of the data lookup layer storing
// records in process-local maps. It is safe for concurrent access and best
// suited for tests or ephemeral demo runs. Returned records are copies so
// callers cannot mutate internal state.
type MemStore struct {
	mu            sync.RWMutex
	users         map[string]User
	orders        map[string]Order
	deliveries    map[string]Delivery // keyed by order id
	invoices      map[string]Invoice
	refunds       map[string]Refund
	conversations map[string]Conversation
	messages      map[string][]Message // keyed by conversation id
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[string]User),
		orders:        make(map[string]Order),
		deliveries:    make(map[string]Delivery),
		invoices:      make(map[string]Invoice),
		refunds:       make(map[string]Refund),
		conversations: make(map[string]Conversation),
		messages:      make(map[string][]Message),
	}
}

func (s *MemStore) PutUser(u User)         { s.mu.Lock(); s.users[u.ID] = u; s.mu.Unlock() }
func (s *MemStore) PutOrder(o Order)       { s.mu.Lock(); s.orders[o.ID] = o; s.mu.Unlock() }
func (s *MemStore) PutDelivery(d Delivery) { s.mu.Lock(); s.deliveries[d.OrderID] = d; s.mu.Unlock() }
func (s *MemStore) PutInvoice(i Invoice)   { s.mu.Lock(); s.invoices[i.ID] = i; s.mu.Unlock() }
func (s *MemStore) PutRefund(r Refund)     { s.mu.Lock(); s.refunds[r.ID] = r; s.mu.Unlock() }

func (s *MemStore) ResolveUserID(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			return u.ID, nil
		}
	}
	return "", ErrNotFound
}

func (s *MemStore) UserProfile(ctx context.Context, userID string) (*UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	profile := &UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
	for _, o := range s.orders {
		if o.UserID == userID {
			profile.OrderCount++
		}
	}
	for _, i := range s.invoices {
		if i.UserID == userID {
			profile.InvoiceCount++
		}
	}
	return profile, nil
}

func (s *MemStore) RecentActivity(ctx context.Context, userID string) (*ActivitySummary, error) {
	const recentTake = 3

	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &ActivitySummary{
		RecentOrders:   s.ordersByUserLocked(userID),
		RecentInvoices: s.invoicesByUserLocked(userID, ""),
		RecentRefunds:  s.refundsByUserLocked(userID, ""),
	}
	if len(summary.RecentOrders) > recentTake {
		summary.RecentOrders = summary.RecentOrders[:recentTake]
	}
	if len(summary.RecentInvoices) > recentTake {
		summary.RecentInvoices = summary.RecentInvoices[:recentTake]
	}
	if len(summary.RecentRefunds) > recentTake {
		summary.RecentRefunds = summary.RecentRefunds[:recentTake]
	}
	return summary, nil
}

func (s *MemStore) Order(ctx context.Context, userID string, key LookupKey) (*Order, error) {
	if key.IsZero() || key.Kind == ByOrderID {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.UserID != userID {
			continue
		}
		if (key.Kind == ByID && o.ID == key.Value) ||
			(key.Kind == ByNumber && o.OrderNumber == key.Value) {
			return s.orderWithDeliveryLocked(o), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) DeliveryStatus(ctx context.Context, userID, orderID string) (*Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, ErrNotFound
	}
	d, ok := s.deliveries[orderID]
	if !ok {
		return nil, ErrNoDelivery
	}
	out := d
	return &out, nil
}

func (s *MemStore) UserOrders(ctx context.Context, userID string, limit int) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := s.ordersByUserLocked(userID)
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *MemStore) CancelOrder(ctx context.Context, userID, orderID, reason string) (*CancelledOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, ErrNotFound
	}

	withDelivery := s.orderWithDeliveryLocked(o)
	if err := cancelPrecondition(withDelivery); err != nil {
		return nil, err
	}

	o.OrderStatus = OrderCancelled
	s.orders[orderID] = o

	note := reason
	if note == "" {
		note = "Order cancelled by customer"
	}
	withDelivery.OrderStatus = OrderCancelled

	return &CancelledOrder{
		Order:            *withDelivery,
		CancellationNote: note,
		RefundTimeline:   RefundTimelineNote,
	}, nil
}

func (s *MemStore) OrderByTracking(ctx context.Context, trackingNumber string) (*Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.deliveries {
		if d.TrackingNumber != trackingNumber {
			continue
		}
		out := d
		if o, ok := s.orders[d.OrderID]; ok {
			order := o
			if u, ok := s.users[o.UserID]; ok {
				order.User = &User{ID: u.ID, Name: u.Name, Email: u.Email}
			}
			out.Order = &order
		}
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *MemStore) Invoice(ctx context.Context, userID string, key LookupKey) (*Invoice, error) {
	if key.IsZero() || key.Kind == ByOrderID {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, i := range s.invoices {
		if i.UserID != userID {
			continue
		}
		if (key.Kind == ByID && i.ID == key.Value) ||
			(key.Kind == ByNumber && i.InvoiceNumber == key.Value) {
			out := i
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) UserInvoices(ctx context.Context, userID string, status InvoiceStatus, limit int) ([]Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := s.invoicesByUserLocked(userID, status)
	if limit > 0 && len(invoices) > limit {
		invoices = invoices[:limit]
	}
	return invoices, nil
}

func (s *MemStore) Refund(ctx context.Context, userID string, key LookupKey) (*Refund, error) {
	if key.IsZero() {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.refunds {
		if r.UserID != userID {
			continue
		}
		switch key.Kind {
		case ByID:
			if r.ID != key.Value {
				continue
			}
		case ByNumber:
			if r.RefundNumber != key.Value {
				continue
			}
		case ByOrderID:
			if r.OrderID != key.Value {
				continue
			}
		}
		out := r
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *MemStore) UserRefunds(ctx context.Context, userID string, status RefundStatus) ([]Refund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refundsByUserLocked(userID, status), nil
}

func (s *MemStore) BillingSummary(ctx context.Context, userID string) (*BillingSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := new(BillingSummary)
	for _, i := range s.invoices {
		if i.UserID != userID {
			continue
		}
		summary.InvoiceSummary.Total++
		switch i.Status {
		case InvoicePending:
			summary.InvoiceSummary.Pending++
		case InvoicePaid:
			summary.InvoiceSummary.Paid++
		}
	}
	for _, r := range s.refunds {
		if r.UserID != userID {
			continue
		}
		summary.RefundSummary.Total++
		if r.Status == RefundCompleted {
			summary.RefundSummary.Completed++
		}
	}
	return summary, nil
}

func (s *MemStore) ConversationHistory(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conversations []Conversation
	for _, c := range s.conversations {
		if c.UserID != userID {
			continue
		}
		conversations = append(conversations, s.conversationWithMessagesLocked(c, 5))
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}
	return conversations, nil
}

func (s *MemStore) Conversation(ctx context.Context, conversationID, userID string, messageLimit int) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	if c.UserID != userID {
		return nil, ErrAccessDenied
	}
	out := s.conversationWithMessagesLocked(c, messageLimit)
	return &out, nil
}

func (s *MemStore) CreateConversation(ctx context.Context, conversation *Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = time.Now().UTC()
	}
	conversation.UpdatedAt = conversation.CreatedAt
	stored := *conversation
	stored.Messages = nil
	s.conversations[conversation.ID] = stored
	return nil
}

func (s *MemStore) AddMessage(ctx context.Context, message *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[message.ConversationID]; !ok {
		return ErrNotFound
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	s.messages[message.ConversationID] = append(s.messages[message.ConversationID], *message)
	return nil
}

func (s *MemStore) TouchConversation(ctx context.Context, conversationID, agentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[conversationID]
	if !ok {
		return ErrNotFound
	}
	c.LastAgentType = agentType
	c.AgentsUsed = append(c.AgentsUsed, agentType)
	c.UpdatedAt = time.Now().UTC()
	s.conversations[conversationID] = c
	return nil
}

func (s *MemStore) ListConversations(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conversations []Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			conversations = append(conversations, c)
		}
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}
	return conversations, nil
}

func (s *MemStore) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[conversationID]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(s.conversations, conversationID)
	delete(s.messages, conversationID)
	return nil
}

func (s *MemStore) ordersByUserLocked(userID string) []Order {
	var orders []Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, *s.orderWithDeliveryLocked(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (s *MemStore) invoicesByUserLocked(userID string, status InvoiceStatus) []Invoice {
	var invoices []Invoice
	for _, i := range s.invoices {
		if i.UserID != userID {
			continue
		}
		if status != "" && i.Status != status {
			continue
		}
		invoices = append(invoices, i)
	}
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	return invoices
}

func (s *MemStore) refundsByUserLocked(userID string, status RefundStatus) []Refund {
	var refunds []Refund
	for _, r := range s.refunds {
		if r.UserID != userID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		refunds = append(refunds, r)
	}
	sort.Slice(refunds, func(i, j int) bool {
		return refunds[i].RequestedAt.After(refunds[j].RequestedAt)
	})
	return refunds
}

func (s *MemStore) orderWithDeliveryLocked(o Order) *Order {
	out := o
	if d, ok := s.deliveries[o.ID]; ok {
		delivery := d
		out.Delivery = &delivery
	}
	return &out
}

func (s *MemStore) conversationWithMessagesLocked(c Conversation, messageLimit int) Conversation {
	out := c
	msgs := s.messages[c.ID]
	sorted := make([]Message, len(msgs))
	copy(sorted, msgs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if messageLimit > 0 && len(sorted) > messageLimit {
		sorted = sorted[:messageLimit]
	}
	out.Messages = make([]*Message, len(sorted))
	for i := range sorted {
		m := sorted[i]
		out.Messages[i] = &m
	}
	return out
}
