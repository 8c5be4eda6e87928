package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// Item is a catalogue entry used to prefill invoice lines. Invoice lines
// keep their own copy of particular/rate, so editing an item never rewrites
// history.
type Item struct {
	ID           string
	Name         string
	HSNCode      string // HSN/SAC classification code for GST reporting
	Unit         string // "Month", "Nos", "Hr", ...
	SaleRate     money.Money
	PurchaseRate money.Money
	GSTRate      decimal.Decimal // percentage, e.g. 18
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
