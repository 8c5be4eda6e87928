package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/ledger"
	"github.com/ssilapps/billbook-api/pkg/money"
)

func sale(id string, total int64) entity.Invoice {
	return entity.Invoice{ID: id, Kind: entity.InvoiceSale, PartyID: "party-1", GrandTotal: money.FromInt(total)}
}

func purchase(id string, total int64) entity.Invoice {
	return entity.Invoice{ID: id, Kind: entity.InvoicePurchase, PartyID: "party-1", GrandTotal: money.FromInt(total)}
}

func paymentIn(id string, amount int64, invoiceID string) entity.Payment {
	return entity.Payment{ID: id, Direction: entity.PaymentIn, PartyID: "party-1", Amount: money.FromInt(amount), InvoiceID: invoiceID}
}

func paymentOut(id string, amount int64) entity.Payment {
	return entity.Payment{ID: id, Direction: entity.PaymentOut, PartyID: "party-1", Amount: money.FromInt(amount)}
}

// One unpaid sale of 10000 and a linked receipt of 4000 leave the party
// owing 6000 and the invoice due 6000.
func TestCurrentBalance_SaleWithPartialReceipt(t *testing.T) {
	invoices := []entity.Invoice{sale("inv-1", 10000)}
	payments := []entity.Payment{paymentIn("pay-1", 4000, "inv-1")}

	got := ledger.CurrentBalance(money.Zero(), invoices, payments)
	assert.True(t, got.Equal(money.FromInt(6000)), "want 6000 receivable, got %s", got)

	due := ledger.InvoiceBalance(invoices[0], payments)
	assert.True(t, due.Equal(money.FromInt(6000)), "invoice due 6000, got %s", due)
}

// Deleting the receipt restores both balances to the full invoice amount:
// the fold only ever sees live records, so removal is automatic healing.
func TestCurrentBalance_DeletedPaymentRestoresBalance(t *testing.T) {
	invoices := []entity.Invoice{sale("inv-1", 10000)}

	got := ledger.CurrentBalance(money.Zero(), invoices, nil)
	assert.True(t, got.Equal(money.FromInt(10000)))

	due := ledger.InvoiceBalance(invoices[0], nil)
	assert.True(t, due.Equal(money.FromInt(10000)))
}

func TestCurrentBalance_MixedHistory(t *testing.T) {
	opening := money.FromInt(-500) // business owed the party 500 to begin with
	invoices := []entity.Invoice{
		sale("inv-1", 10000),
		purchase("inv-2", 3000),
		sale("inv-3", 250),
	}
	payments := []entity.Payment{
		paymentIn("pay-1", 4000, "inv-1"),
		paymentOut("pay-2", 3000),
		paymentIn("pay-3", 250, ""),
	}

	// -500 + 10000 - 3000 + 250 - 4000 + 3000 - 250 = 5500
	got := ledger.CurrentBalance(opening, invoices, payments)
	assert.True(t, got.Equal(money.FromInt(5500)), "got %s", got)
}

// The balance is a sum, so shuffling the input slices can never change it.
func TestCurrentBalance_OrderIndependent(t *testing.T) {
	invoices := []entity.Invoice{
		sale("a", 100), purchase("b", 40), sale("c", 7),
		purchase("d", 1), sale("e", 9999),
	}
	payments := []entity.Payment{
		paymentIn("p1", 55, ""), paymentOut("p2", 20), paymentIn("p3", 4000, "e"),
	}
	want := ledger.CurrentBalance(money.FromInt(123), invoices, payments)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(invoices), func(a, b int) { invoices[a], invoices[b] = invoices[b], invoices[a] })
		rng.Shuffle(len(payments), func(a, b int) { payments[a], payments[b] = payments[b], payments[a] })
		got := ledger.CurrentBalance(money.FromInt(123), invoices, payments)
		assert.True(t, got.Equal(want), "iteration %d: got %s, want %s", i, got, want)
	}
}

// InvoiceBalance honours paidAtCreation and ignores payments linked to
// other invoices.
func TestInvoiceBalance_FiltersByInvoice(t *testing.T) {
	inv := sale("inv-1", 10000)
	inv.PaidAtCreation = money.FromInt(1000)
	payments := []entity.Payment{
		paymentIn("pay-1", 4000, "inv-1"),
		paymentIn("pay-2", 9999, "inv-other"),
	}
	got := ledger.InvoiceBalance(inv, payments)
	assert.True(t, got.Equal(money.FromInt(5000)), "got %s", got)
}
