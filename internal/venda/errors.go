package venda

import (
	"errors"
	"fmt"
)

// ErrInvalidItem is returned when an item draft fails local validation.
var ErrInvalidItem = errors.New("invalid item")

// ErrNoItems is returned when an operation requires at least one item in
// the current sale.
var ErrNoItems = errors.New("sale has no items")

// ErrBusy is returned when a mutating operation is invoked while another
// one is still in flight.
var ErrBusy = errors.New("operation already in flight")

// ErrNoCurrentSale is returned when the current-sale slot could not be
// filled during initialization.
var ErrNoCurrentSale = errors.New("no current sale")

// APIError is a non-success response from the sale service. Message holds
// the server's "erro" field when the body carried one.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"erro"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("sale service returned status %d", e.StatusCode)
}
