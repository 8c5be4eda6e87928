package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// Invoice kinds. A sale increases what the party owes the business; a
// purchase increases what the business owes the party.
const (
	InvoiceSale     = "sale"
	InvoicePurchase = "purchase"
)

// Invoice is a GST invoice header. Subtotal through Balance are derived
// fields: they are recomputed from the lines and rates on every create or
// edit, never patched incrementally.
//
// Invariants: Balance = GrandTotal − Σ payments applied to this invoice;
// GrandTotal is the whole-rupee rounding of Subtotal + taxes − Discount;
// RoundOff = GrandTotal − (Subtotal + taxes − Discount), signed.
type Invoice struct {
	ID             string
	Number         string // service-assigned, e.g. INV-1717170000
	Kind           string
	PartyID        string
	Date           time.Time
	SiteName       string
	Particular     string // invoice title, e.g. "JCB Rent - November 2025"
	Lines          []LineItem
	Discount       money.Money
	CGSTRate       decimal.Decimal // percentages; CGST/SGST xor IGST
	SGSTRate       decimal.Decimal
	IGSTRate       decimal.Decimal
	PaidAtCreation money.Money

	Subtotal   money.Money
	CGSTAmount money.Money
	SGSTAmount money.Money
	IGSTAmount money.Money
	RoundOff   money.Money // signed, may be negative
	GrandTotal money.Money
	Balance    money.Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem is one invoice line. Amount is quantity × rate and is always
// recomputed on read so stored data cannot drift from the formula.
type LineItem struct {
	ID         string
	InvoiceID  string
	ItemID     string // optional catalogue reference
	Particular string
	HSNCode    string
	Quantity   decimal.Decimal
	Unit       string
	Rate       money.Money
}

// Amount returns quantity × rate at full precision.
func (l LineItem) Amount() money.Money {
	return l.Rate.Mul(l.Quantity)
}
