package domain

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderCompleted = errors.New("order is already done")
	ErrOrderNotPaid   = errors.New("order has not been paid")

	// Pricing upstream failures, surfaced unchanged to the caller so the
	// transport layer can mark them retryable.
	ErrPricingTimeout     = errors.New("pricing service timed out")
	ErrPricingUnavailable = errors.New("pricing service unavailable")
)
