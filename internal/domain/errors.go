package domain

import (
	"errors"
	"fmt"

	"github.com/ssilapps/billbook-api/pkg/money"
)

// Domain errors (no external dependencies beyond the money type).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrEmptyInvoice: an invoice draft carried no line items.
	ErrEmptyInvoice = errors.New("invoice has no line items")

	// ErrInvalidLineItem: quantity ≤ 0 or rate < 0 on a line item.
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrInvalidTaxConfig: CGST/SGST and IGST supplied together. Intra-state
	// and inter-state GST are mutually exclusive on a single invoice.
	ErrInvalidTaxConfig = errors.New("cgst/sgst and igst are mutually exclusive")

	// ErrUnknownRef: a referenced party or invoice id is absent from the
	// snapshot the caller supplied.
	ErrUnknownRef = errors.New("referenced party or invoice not found")
)

// OverpaymentError rejects a payment exceeding the linked invoice's due
// amount. Max is the largest amount the invoice can still absorb.
type OverpaymentError struct {
	InvoiceID string
	Max       money.Money
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds invoice due: maximum admissible amount is %s", e.Max)
}
