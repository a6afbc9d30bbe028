package store

import "context"

// Invoice fetches a single invoice scoped to its owner, by id or by invoice
// number.
func (s *Store) Invoice(ctx context.Context, userID string, key LookupKey) (*Invoice, error) {
	if key.IsZero() || key.Kind == ByOrderID {
		return nil, ErrNotFound
	}

	invoice := new(Invoice)
	q := s.db.NewSelect().
		Model(invoice).
		Relation("Order").
		Where("i.user_id = ?", userID)

	switch key.Kind {
	case ByID:
		q = q.Where("i.id = ?", key.Value)
	case ByNumber:
		q = q.Where("i.invoice_number = ?", key.Value)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return invoice, nil
}

func (s *Store) UserInvoices(ctx context.Context, userID string, status InvoiceStatus, limit int) ([]Invoice, error) {
	var invoices []Invoice
	q := s.db.NewSelect().
		Model(&invoices).
		Relation("Order").
		Where("i.user_id = ?", userID).
		OrderExpr("i.created_at DESC").
		Limit(limit)
	if status != "" {
		q = q.Where("i.status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Refund fetches a single refund scoped to its owner. Refunds are reachable
// by id, by refund number, or through their parent order.
func (s *Store) Refund(ctx context.Context, userID string, key LookupKey) (*Refund, error) {
	if key.IsZero() {
		return nil, ErrNotFound
	}

	refund := new(Refund)
	q := s.db.NewSelect().
		Model(refund).
		Relation("Order").
		Where("r.user_id = ?", userID)

	switch key.Kind {
	case ByID:
		q = q.Where("r.id = ?", key.Value)
	case ByNumber:
		q = q.Where("r.refund_number = ?", key.Value)
	case ByOrderID:
		q = q.Where("r.order_id = ?", key.Value)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return refund, nil
}

func (s *Store) UserRefunds(ctx context.Context, userID string, status RefundStatus) ([]Refund, error) {
	var refunds []Refund
	q := s.db.NewSelect().
		Model(&refunds).
		Relation("Order").
		Where("r.user_id = ?", userID).
		OrderExpr("r.requested_at DESC")
	if status != "" {
		q = q.Where("r.status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return refunds, nil
}

// BillingSummary aggregates invoice and refund counts by status for one user.
func (s *Store) BillingSummary(ctx context.Context, userID string) (*BillingSummary, error) {
	summary := new(BillingSummary)

	var err error
	summary.InvoiceSummary.Total, err = s.db.NewSelect().
		Model((*Invoice)(nil)).
		Where("i.user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	summary.InvoiceSummary.Pending, err = s.db.NewSelect().
		Model((*Invoice)(nil)).
		Where("i.user_id = ?", userID).
		Where("i.status = ?", InvoicePending).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	summary.InvoiceSummary.Paid, err = s.db.NewSelect().
		Model((*Invoice)(nil)).
		Where("i.user_id = ?", userID).
		Where("i.status = ?", InvoicePaid).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	summary.RefundSummary.Total, err = s.db.NewSelect().
		Model((*Refund)(nil)).
		Where("r.user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	summary.RefundSummary.Completed, err = s.db.NewSelect().
		Model((*Refund)(nil)).
		Where("r.user_id = ?", userID).
		Where("r.status = ?", RefundCompleted).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
