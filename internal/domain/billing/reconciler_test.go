package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/billing"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// Paying exactly the due amount drives the invoice balance to zero.
func TestReconcile_ExactSettlementAccepted(t *testing.T) {
	rec, err := billing.Reconcile(billing.ProposedPayment{
		Direction:     entity.PaymentIn,
		Amount:        money.FromInt(5000),
		InvoiceID:     "inv-1",
		Linked:        true,
		LinkedBalance: money.FromInt(5000),
	})
	require.NoError(t, err)
	assert.True(t, rec.InvoiceBalance.IsZero(), "invoice must be fully settled, got %s", rec.InvoiceBalance)
	assert.True(t, rec.PartyDelta.Equal(money.FromInt(-5000)))
}

// One rupee over the due amount is rejected, and the error names the
// maximum the invoice can still absorb.
func TestReconcile_OverpaymentRejectedWithMax(t *testing.T) {
	_, err := billing.Reconcile(billing.ProposedPayment{
		Direction:     entity.PaymentIn,
		Amount:        money.FromInt(5001),
		InvoiceID:     "inv-1",
		Linked:        true,
		LinkedBalance: money.FromInt(5000),
	})
	require.Error(t, err)

	var over *domain.OverpaymentError
	require.ErrorAs(t, err, &over)
	assert.Equal(t, "inv-1", over.InvoiceID)
	assert.True(t, over.Max.Equal(money.FromInt(5000)))
}

func TestReconcile_PartialPayment(t *testing.T) {
	rec, err := billing.Reconcile(billing.ProposedPayment{
		Direction:     entity.PaymentIn,
		Amount:        money.FromInt(4000),
		InvoiceID:     "inv-1",
		Linked:        true,
		LinkedBalance: money.FromInt(10000),
	})
	require.NoError(t, err)
	assert.True(t, rec.InvoiceBalance.Equal(money.FromInt(6000)))
	assert.True(t, rec.PartyDelta.Equal(money.FromInt(-4000)))
}

// Unlinked payments only need a positive amount; no invoice is involved.
func TestReconcile_UnlinkedPayment(t *testing.T) {
	rec, err := billing.Reconcile(billing.ProposedPayment{
		Direction: entity.PaymentOut,
		Amount:    money.FromInt(750),
	})
	require.NoError(t, err)
	assert.True(t, rec.PartyDelta.Equal(money.FromInt(750)), "out payments raise the party balance")
}

func TestReconcile_RejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []money.Money{money.Zero(), money.FromInt(-100)} {
		_, err := billing.Reconcile(billing.ProposedPayment{
			Direction: entity.PaymentIn,
			Amount:    amount,
		})
		assert.ErrorIs(t, err, money.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestReconcile_RejectsUnknownDirection(t *testing.T) {
	_, err := billing.Reconcile(billing.ProposedPayment{
		Direction: "sideways",
		Amount:    money.FromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Reverse is the exact inverse of a committed payment: the invoice gets its
// amount back and the party delta flips sign. Deleting the 4000 payment from
// the partial-payment case restores both balances to the pre-payment values.
func TestReverse_RestoresInvoiceAndPartyBalance(t *testing.T) {
	committed := entity.Payment{
		ID:        "pay-1",
		Direction: entity.PaymentIn,
		PartyID:   "party-1",
		Amount:    money.FromInt(4000),
		InvoiceID: "inv-1",
	}
	rec := billing.Reverse(committed, money.FromInt(6000))

	assert.True(t, rec.InvoiceBalance.Equal(money.FromInt(10000)), "invoice balance restored")
	assert.True(t, rec.PartyDelta.Equal(money.FromInt(4000)), "party delta negated")
}

func TestReverse_UnlinkedPaymentTouchesNoInvoice(t *testing.T) {
	rec := billing.Reverse(entity.Payment{
		Direction: entity.PaymentOut,
		Amount:    money.FromInt(300),
	}, money.Zero())
	assert.True(t, rec.InvoiceBalance.IsZero())
	assert.True(t, rec.PartyDelta.Equal(money.FromInt(-300)))
}

// Reverse-then-reapply must be a no-op when the edit does not change the
// payment. Applying the reversal delta and then reconciling the same
// payment again lands on the original balances.
func TestEditByReversal_IdentityEdit(t *testing.T) {
	invoiceBalance := money.FromInt(6000)
	partyBalance := money.FromInt(6000)
	payment := entity.Payment{
		ID: "pay-1", Direction: entity.PaymentIn,
		Amount: money.FromInt(4000), InvoiceID: "inv-1",
	}

	rev := billing.Reverse(payment, invoiceBalance)
	invoiceBalance = rev.InvoiceBalance
	partyBalance = partyBalance.Add(rev.PartyDelta)

	rec, err := billing.Reconcile(billing.ProposedPayment{
		Direction:     payment.Direction,
		Amount:        payment.Amount,
		InvoiceID:     payment.InvoiceID,
		Linked:        true,
		LinkedBalance: invoiceBalance,
	})
	require.NoError(t, err)

	assert.True(t, rec.InvoiceBalance.Equal(money.FromInt(6000)))
	assert.True(t, partyBalance.Add(rec.PartyDelta).Equal(money.FromInt(6000)))
}
