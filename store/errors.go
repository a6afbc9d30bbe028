package store

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrNoDelivery       = errors.New("no delivery information available")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
	ErrOrderRefunded    = errors.New("cannot cancel a refunded order")
	ErrOrderShipped     = errors.New("order has already been shipped")
	ErrAccessDenied     = errors.New("access denied")
)
