package payment

import "errors"

var (
	ErrNotFound      = errors.New("booking not found")
	ErrNothingToPay  = errors.New("booking has no outstanding balance")
	ErrNotConfigured = errors.New("payment provider is not configured")
)
