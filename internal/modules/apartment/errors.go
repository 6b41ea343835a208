package apartment

import "errors"

var (
	ErrNotFound   = errors.New("apartment not found")
	ErrUnitExists = errors.New("unit already registered")
)
