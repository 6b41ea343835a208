package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrForbidden          = errors.New("only an admin can register users")
	ErrNotFound           = errors.New("user not found")
)
