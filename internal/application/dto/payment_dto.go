package dto

import "github.com/ssilapps/billbook-api/pkg/money"

// PaymentRequest creates or updates a payment.
type PaymentRequest struct {
	Direction string      `json:"type"` // "in" | "out"
	PartyID   string      `json:"partyId"`
	Amount    money.Money `json:"amount"`
	Mode      string      `json:"mode"`
	Note      string      `json:"note"`
	Date      string      `json:"date"` // YYYY-MM-DD, default today
	InvoiceID string      `json:"invoiceId"`
}

// PaymentResponse is a committed payment plus the balances it left behind,
// so the client can refresh without a second round trip.
type PaymentResponse struct {
	ID             string      `json:"id"`
	Direction      string      `json:"type"`
	PartyID        string      `json:"partyId"`
	Amount         money.Money `json:"amount"`
	Mode           string      `json:"mode"`
	Note           string      `json:"note,omitempty"`
	Date           string      `json:"date"`
	InvoiceID      string      `json:"invoiceId,omitempty"`
	InvoiceBalance money.Money `json:"invoiceBalance"`
	PartyBalance   money.Money `json:"partyBalance"`
}
