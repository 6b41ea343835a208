package booking

import (
	"errors"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/availability"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("booking not found")
	ErrUnknownUnit = errors.New("unknown unit")
	ErrConflict    = errors.New("booking conflicts with existing reservations")
	ErrOverbooking = errors.New("overbooking constraint violation")
)

// ConflictError carries the checker result that refused a write.
type ConflictError struct {
	Result availability.Result
}

func (e *ConflictError) Error() string { return e.Result.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

func (e *ConflictError) Details() interface{} { return e.Result.Conflicts }
