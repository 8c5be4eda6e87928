package entity

import (
	"time"

	"github.com/ssilapps/billbook-api/pkg/money"
)

// Payment directions: "in" money received from the party, "out" money paid
// to the party.
const (
	PaymentIn  = "in"
	PaymentOut = "out"
)

// Payment modes accepted by the mobile client.
const (
	ModeCash = "cash"
	ModeBank = "bank"
	ModeUPI  = "upi"
)

// Payment records money moving against a party, optionally settling a
// specific invoice. When InvoiceID is set the amount was validated against
// that invoice's balance at creation time.
type Payment struct {
	ID        string
	Direction string
	PartyID   string
	Amount    money.Money // always > 0
	Mode      string
	Note      string
	Date      time.Time
	InvoiceID string // optional linked invoice
	CreatedAt time.Time
	UpdatedAt time.Time
}
