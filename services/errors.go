package services

import (
	"errors"
	"fmt"
)

// Penolakan business-rule. Dipulangkan sebagai nilai, bukan panic, supaya
// controller bisa membedakan "jangan retry" dari "boleh retry nanti".
var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be greater than zero")
	ErrVendorUnavailable = errors.New("vendor is not active or canteen is closed")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderClosed       = errors.New("order is already in a terminal state")
	ErrItemNotFound      = errors.New("inventory item not found for this vendor")
	ErrInvalidStatus     = errors.New("invalid status value")
)

// ItemUnavailableError -> item tidak ada atau statusnya Unavailable.
// Membatalkan seluruh order, tidak ada partial order.
type ItemUnavailableError struct {
	InventoryItemID uint
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("inventory item %d is not available", e.InventoryItemID)
}

// InsufficientStockError -> conditional decrement kena nol baris:
// stok kurang atau item bukan milik vendor ini.
type InsufficientStockError struct {
	InventoryItemID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for inventory item %d", e.InventoryItemID)
}

// TransientError membungkus kegagalan infrastruktur (storage/network).
// Caller boleh retry, dengan catatan retry membuat order BARU - tidak ada
// idempotency key untuk PlaceOrder.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsRejection melaporkan apakah err adalah penolakan business-rule
// (bukan kegagalan infrastruktur).
func IsRejection(err error) bool {
	var itemErr *ItemUnavailableError
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrVendorUnavailable),
		errors.Is(err, ErrVendorNotFound),
		errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrOrderClosed),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrInvalidStatus):
		return true
	case errors.As(err, &itemErr), errors.As(err, &stockErr):
		return true
	}
	return false
}

// wrapTransient membungkus error yang belum terklasifikasi sebagai
// TransientError. Penolakan dan TransientError yang sudah jadi lewat apa adanya.
func wrapTransient(err error) error {
	if err == nil {
		return nil
	}
	if IsRejection(err) {
		return err
	}
	var te *TransientError
	if errors.As(err, &te) {
		return te
	}
	return &TransientError{Err: err}
}
