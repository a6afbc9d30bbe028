package contract

import "errors"

var (
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrToolNotPermitted = errors.New("tool not permitted")
	ErrMissingUserID    = errors.New("userId is required")
	ErrValidation       = errors.New("validation failed")
)
