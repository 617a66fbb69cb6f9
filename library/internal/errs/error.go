package errs

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyPayload = errors.New("request body is required")
	ErrIDMismatch   = errors.New("id in path does not match id in body")
	ErrConflict     = errors.New("row was modified concurrently")
	ErrInvalid      = errors.New("entity violates a table constraint")

	ErrBookUnavailable  = errors.New("book not available for reservation")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAlreadyReserved  = errors.New("customer already has a reservation for this book")
)

type ErrorResponse struct {
	Message string `json:"message"`
}
