package schedule

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("schedule not found")
	ErrNoSender   = errors.New("no sender for channel")
)
