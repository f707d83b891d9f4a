package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("admin not found")
	ErrInactive           = errors.New("admin account is disabled")
)
