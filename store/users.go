package store

import (
	"context"
	"strings"
)

// ResolveUserID looks a user identifier up by email. Returns ErrNotFound when
// no user matches; never raises for a plain miss.
func (s *Store) ResolveUserID(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrNotFound
	}

	var id string
	err := s.db.NewSelect().
		Model((*User)(nil)).
		Column("id").
		Where("lower(u.email) = ?", email).
		Scan(ctx, &id)
	if err != nil {
		return "", notFound(err)
	}
	return id, nil
}

func (s *Store) UserProfile(ctx context.Context, userID string) (*UserProfile, error) {
	user := new(User)
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	orderCount, err := s.db.NewSelect().
		Model((*Order)(nil)).
		Where("o.user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	invoiceCount, err := s.db.NewSelect().
		Model((*Invoice)(nil)).
		Where("i.user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		CreatedAt:    user.CreatedAt,
		OrderCount:   orderCount,
		InvoiceCount: invoiceCount,
	}, nil
}

// RecentActivity returns the user's three most recent orders, invoices, and
// refunds in one aggregate.
func (s *Store) RecentActivity(ctx context.Context, userID string) (*ActivitySummary, error) {
	const recentTake = 3

	summary := new(ActivitySummary)

	err := s.db.NewSelect().
		Model(&summary.RecentOrders).
		Where("o.user_id = ?", userID).
		OrderExpr("o.created_at DESC").
		Limit(recentTake).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	err = s.db.NewSelect().
		Model(&summary.RecentInvoices).
		Where("i.user_id = ?", userID).
		OrderExpr("i.created_at DESC").
		Limit(recentTake).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	err = s.db.NewSelect().
		Model(&summary.RecentRefunds).
		Where("r.user_id = ?", userID).
		OrderExpr("r.requested_at DESC").
		Limit(recentTake).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
