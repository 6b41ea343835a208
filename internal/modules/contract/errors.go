package contract

import "errors"

var (
	ErrValidation      = errors.New("invalid contract")
	ErrNotFound        = errors.New("contract not found")
	ErrBookingNotFound = errors.New("booking not found")
)
