package billing

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrPricingNotFound      = errors.New("pricing not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrForbidden            = errors.New("subscription belongs to another user")
	ErrSubscriptionExists   = errors.New("user already has a live subscription")
)
