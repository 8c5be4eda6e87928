// Package ledger derives party balances and chronological statements from
// invoice and payment snapshots. Nothing here keeps state between calls:
// balances are recomputed in full from the records passed in, which makes
// them self-healing against any missed incremental update and trivially
// order-independent.
package ledger

import (
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// CurrentBalance folds a party's full history into its net balance:
//
//	opening + Σ sale grand totals − Σ purchase grand totals
//	        − Σ payments in      + Σ payments out
//
// Positive = the party owes the business (receivable); negative = the
// business owes the party (payable). The result is a plain sum, so the
// ordering of the slices never matters.
func CurrentBalance(opening money.Money, invoices []entity.Invoice, payments []entity.Payment) money.Money {
	balance := opening
	for _, inv := range invoices {
		switch inv.Kind {
		case entity.InvoiceSale:
			balance = balance.Add(inv.GrandTotal)
		case entity.InvoicePurchase:
			balance = balance.Sub(inv.GrandTotal)
		}
	}
	for _, p := range payments {
		switch p.Direction {
		case entity.PaymentIn:
			balance = balance.Sub(p.Amount)
		case entity.PaymentOut:
			balance = balance.Add(p.Amount)
		}
	}
	return balance
}

// InvoiceBalance rederives an invoice's outstanding amount from its grand
// total and the payments linked to it. Used after payment edits and deletes
// so the stored balance can always be reconstructed from first principles.
func InvoiceBalance(inv entity.Invoice, linked []entity.Payment) money.Money {
	balance := inv.GrandTotal.Sub(inv.PaidAtCreation)
	for _, p := range linked {
		if p.InvoiceID == inv.ID {
			balance = balance.Sub(p.Amount)
		}
	}
	return balance
}
