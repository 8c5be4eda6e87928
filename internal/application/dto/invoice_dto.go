package dto

import (
	"github.com/shopspring/decimal"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// InvoiceLineRequest is one raw line of an invoice draft.
type InvoiceLineRequest struct {
	ID         string          `json:"id"` // set when editing an existing line
	ItemID     string          `json:"itemId"`
	Particular string          `json:"particular"`
	HSNCode    string          `json:"hsnSac"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Rate       money.Money     `json:"rate"`
}

// CreateInvoiceRequest carries the raw draft; every derived field is
// computed server-side.
type CreateInvoiceRequest struct {
	Kind       string               `json:"type"` // "sale" | "purchase"
	PartyID    string               `json:"partyId"`
	Date       string               `json:"date"` // YYYY-MM-DD, default today
	SiteName   string               `json:"siteName"`
	Particular string               `json:"particular"`
	Lines      []InvoiceLineRequest `json:"items"`
	Discount   money.Money          `json:"discount"`
	CGSTRate   decimal.Decimal      `json:"cgstRate"`
	SGSTRate   decimal.Decimal      `json:"sgstRate"`
	IGSTRate   decimal.Decimal      `json:"igstRate"`
	PaidAmount money.Money          `json:"paidAmount"`
}

// InvoiceLineResponse is one invoice line with its recomputed amount.
type InvoiceLineResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"itemId,omitempty"`
	Particular string          `json:"particular"`
	HSNCode    string          `json:"hsnSac,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Rate       money.Money     `json:"rate"`
	Amount     money.Money     `json:"amount"`
}

// InvoiceResponse is a full invoice with derived totals.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"invoiceNumber"`
	Kind           string                `json:"type"`
	PartyID        string                `json:"partyId"`
	PartyName      string                `json:"partyName,omitempty"`
	Date           string                `json:"date"`
	SiteName       string                `json:"siteName,omitempty"`
	Particular     string                `json:"particular,omitempty"`
	Lines          []InvoiceLineResponse `json:"items"`
	Discount       money.Money           `json:"discount"`
	CGSTRate       decimal.Decimal       `json:"cgstRate"`
	SGSTRate       decimal.Decimal       `json:"sgstRate"`
	IGSTRate       decimal.Decimal       `json:"igstRate"`
	PaidAtCreation money.Money           `json:"paidAmount"`
	Subtotal       money.Money           `json:"subtotal"`
	CGSTAmount     money.Money           `json:"cgstAmount"`
	SGSTAmount     money.Money           `json:"sgstAmount"`
	IGSTAmount     money.Money           `json:"igstAmount"`
	RoundOff       money.Money           `json:"roundOff"`
	GrandTotal     money.Money           `json:"grandTotal"`
	Balance        money.Money           `json:"balance"`
}
