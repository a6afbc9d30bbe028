package store

import (
	"context"

	"github.com/uptrace/bun"
)

// Order fetches a single order scoped to its owner. The key selects lookup by
// opaque id or by human-readable order number.
func (s *Store) Order(ctx context.Context, userID string, key LookupKey) (*Order, error) {
	if key.IsZero() || key.Kind == ByOrderID {
		return nil, ErrNotFound
	}

	order := new(Order)
	q := s.db.NewSelect().
		Model(order).
		Relation("Items").
		Relation("Delivery").
		Relation("Address").
		Where("o.user_id = ?", userID)

	switch key.Kind {
	case ByID:
		q = q.Where("o.id = ?", key.Value)
	case ByNumber:
		q = q.Where("o.order_number = ?", key.Value)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

// DeliveryStatus returns the delivery record for an owned order. A matching
// order without a delivery record yields ErrNoDelivery.
func (s *Store) DeliveryStatus(ctx context.Context, userID, orderID string) (*Delivery, error) {
	order := new(Order)
	err := s.db.NewSelect().
		Model(order).
		Relation("Delivery").
		Where("o.id = ?", orderID).
		Where("o.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	if order.Delivery == nil {
		return nil, ErrNoDelivery
	}
	return order.Delivery, nil
}

func (s *Store) UserOrders(ctx context.Context, userID string, limit int) ([]Order, error) {
	var orders []Order
	err := s.db.NewSelect().
		Model(&orders).
		Relation("Items").
		Relation("Delivery").
		Where("o.user_id = ?", userID).
		OrderExpr("o.created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder transitions an owned order to CANCELLED when the state machine
// allows it. Violated preconditions come back as the distinct sentinels
// ErrAlreadyCancelled, ErrOrderRefunded, and ErrOrderShipped.
func (s *Store) CancelOrder(ctx context.Context, userID, orderID, reason string) (*CancelledOrder, error) {
	order := new(Order)
	err := s.db.NewSelect().
		Model(order).
		Relation("Delivery").
		Where("o.id = ?", orderID).
		Where("o.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	if err := cancelPrecondition(order); err != nil {
		return nil, err
	}

	_, err = s.db.NewUpdate().
		Model((*Order)(nil)).
		Set("order_status = ?", OrderCancelled).
		Where("o.id = ?", orderID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	order.OrderStatus = OrderCancelled

	note := reason
	if note == "" {
		note = "Order cancelled by customer"
	}

	return &CancelledOrder{
		Order:            *order,
		CancellationNote: note,
		RefundTimeline:   RefundTimelineNote,
	}, nil
}

// OrderByTracking looks a delivery up by tracking number alone. This is
// deliberately unscoped by user identity so unauthenticated tracking checks
// keep working; every other order operation enforces ownership.
func (s *Store) OrderByTracking(ctx context.Context, trackingNumber string) (*Delivery, error) {
	delivery := new(Delivery)
	err := s.db.NewSelect().
		Model(delivery).
		Relation("Order").
		Relation("Order.User", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "name", "email")
		}).
		Where("d.tracking_number = ?", trackingNumber).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return delivery, nil
}
