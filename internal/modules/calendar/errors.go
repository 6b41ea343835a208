package calendar

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("availability block not found")
	ErrUnknownUnit = errors.New("unknown unit")
)
