package entity

import (
	"time"

	"github.com/ssilapps/billbook-api/pkg/money"
)

// Party kinds. Sign convention for balances: positive means the party owes
// the business (receivable), negative means the business owes the party
// (payable), regardless of kind.
const (
	PartyCustomer = "customer"
	PartySupplier = "supplier"
)

// Party is a trading counterparty (customer or supplier).
// CurrentBalance is never stored; it is derived on read from the party's
// invoices and payments.
type Party struct {
	ID             string
	Name           string
	Kind           string
	GSTIN          string
	Contact        string
	Address        string
	OpeningBalance money.Money // signed
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
