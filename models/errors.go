package models

import "errors"

// Shared domain errors. Handlers match these with errors.Is and decide
// whether to flash+redirect (pages) or answer with a JSON status (API).
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
