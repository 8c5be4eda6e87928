// Package billing wires the invoice and payment arithmetic to persistence:
// it loads snapshots, runs the domain calculators over them and commits the
// results in a single transaction.
package billing

import (
	"context"

	"github.com/ssilapps/billbook-api/internal/domain/repository"
)

// TxRunner executes a callback against repositories bound to one Postgres
// transaction. Every balance-affecting mutation (invoice or payment create,
// edit, delete) goes through here so reversal and reapply can never be torn
// apart by a concurrent write.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		partyRepo repository.PartyRepository,
	) error) error
}
