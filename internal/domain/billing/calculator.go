// Package billing holds the invoice arithmetic and payment validation rules.
// Everything here is a pure function over snapshot data: no storage, no
// clock, no hidden state. The application layer feeds it records fetched
// from Postgres and persists whatever it returns.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// Draft is the input to the total calculation: the raw line items and rates
// of an invoice being created or edited. LinkedPayments carries the amounts
// of payments already applied to the invoice (empty on create).
type Draft struct {
	Lines          []entity.LineItem
	Discount       money.Money
	CGSTRate       decimal.Decimal
	SGSTRate       decimal.Decimal
	IGSTRate       decimal.Decimal
	PaidAtCreation money.Money
	LinkedPayments []money.Money
}

// Totals are the derived invoice fields. Balance may be negative when an
// edit shrinks the grand total below what was already paid; that means
// "overpaid", not an error, and is resolved by the caller editing payments.
type Totals struct {
	Subtotal   money.Money
	CGSTAmount money.Money
	SGSTAmount money.Money
	IGSTAmount money.Money
	RoundOff   money.Money
	GrandTotal money.Money
	Balance    money.Money
}

// CalculateTotals derives all invoice totals from a draft:
//
//	subtotal   = Σ quantity × rate            (full precision)
//	gst        = subtotal × rate ⁄ 100        (full precision)
//	preRound   = subtotal + gst − discount
//	grandTotal = round(preRound)              (half away from zero, whole ₹)
//	roundOff   = grandTotal − preRound        (signed)
//	balance    = grandTotal − paidAtCreation − Σ linked payments
//
// The grand total is the only rounding point. A discount larger than the
// taxed subtotal legitimately drives the grand total negative; the
// calculator does not clamp; rejecting that is a caller-level decision.
func CalculateTotals(d Draft) (Totals, error) {
	if len(d.Lines) == 0 {
		return Totals{}, domain.ErrEmptyInvoice
	}
	if err := validateTaxRates(d.CGSTRate, d.SGSTRate, d.IGSTRate); err != nil {
		return Totals{}, err
	}
	if err := money.RequireNonNegative("discount", d.Discount); err != nil {
		return Totals{}, err
	}
	if err := money.RequireNonNegative("paid amount", d.PaidAtCreation); err != nil {
		return Totals{}, err
	}

	subtotal := money.Zero()
	for i, line := range d.Lines {
		if !line.Quantity.IsPositive() {
			return Totals{}, fmt.Errorf("%w: line %d: quantity must be greater than zero", domain.ErrInvalidLineItem, i+1)
		}
		if line.Rate.IsNegative() {
			return Totals{}, fmt.Errorf("%w: line %d: rate must not be negative", domain.ErrInvalidLineItem, i+1)
		}
		subtotal = subtotal.Add(line.Amount())
	}

	cgst := subtotal.PercentOf(d.CGSTRate)
	sgst := subtotal.PercentOf(d.SGSTRate)
	igst := subtotal.PercentOf(d.IGSTRate)

	preRound := subtotal.Add(cgst).Add(sgst).Add(igst).Sub(d.Discount)
	grandTotal := preRound.RoundToWhole()
	roundOff := grandTotal.Sub(preRound)

	balance := grandTotal.Sub(d.PaidAtCreation)
	for _, p := range d.LinkedPayments {
		balance = balance.Sub(p)
	}

	return Totals{
		Subtotal:   subtotal,
		CGSTAmount: cgst,
		SGSTAmount: sgst,
		IGSTAmount: igst,
		RoundOff:   roundOff,
		GrandTotal: grandTotal,
		Balance:    balance,
	}, nil
}

// validateTaxRates enforces the GST exclusivity rule: an invoice is either
// intra-state (CGST+SGST) or inter-state (IGST), never both. All-zero is
// allowed (exempt supplies).
func validateTaxRates(cgst, sgst, igst decimal.Decimal) error {
	if cgst.IsNegative() || sgst.IsNegative() || igst.IsNegative() {
		return fmt.Errorf("%w: tax rates must not be negative", domain.ErrInvalidInput)
	}
	intra := !cgst.IsZero() || !sgst.IsZero()
	inter := !igst.IsZero()
	if intra && inter {
		return domain.ErrInvalidTaxConfig
	}
	return nil
}
