package service

import "errors"

// Business error taxonomy. Handlers map these onto HTTP statuses; nothing here
// is ever fatal to the process.
var (
	// Validation failures (422): malformed or out-of-range client input.
	ErrInvalidInput     = errors.New("invalid input")
	ErrNegativeBalance  = errors.New("balance cannot be negative")
	ErrEmptyCart        = errors.New("sale must contain at least one valid line")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrNegativeDiscount = errors.New("discount cannot be negative")

	// Business-rule conflicts (409).
	ErrSessionAlreadyOpen   = errors.New("an open cashier session already exists for this user")
	ErrSessionAlreadyClosed = errors.New("cashier session is already closed")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrBarcodeExists        = errors.New("barcode already exists")

	// Lookups (404).
	ErrProductNotFound  = errors.New("product not found")
	ErrBarcodeNotFound  = errors.New("barcode not found")
	ErrMovementNotFound = errors.New("stock movement not found")
	ErrSessionNotFound  = errors.New("cashier session not found")
	ErrNoOpenSession    = errors.New("no open cashier session")
	ErrShiftNotFound    = errors.New("shift not found")

	// Capability failures (403). Only cashier-role actors are required to
	// have an open session; admin and manager bypass the check.
	ErrSessionRequired = errors.New("an open cashier session is required to commit a sale")
)

func isStockError(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
