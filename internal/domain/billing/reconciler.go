package billing

import (
	"fmt"

	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// ProposedPayment is a payment before it is committed. LinkedBalance is the
// linked invoice's balance at the moment of validation; Linked reports
// whether an invoice reference was supplied at all.
type ProposedPayment struct {
	Direction     string
	Amount        money.Money
	InvoiceID     string
	Linked        bool
	LinkedBalance money.Money
}

// Reconciliation is the validated effect of a payment: the linked invoice's
// new balance (meaningful only when the payment was linked) and the signed
// delta to apply to the party's current balance. An "in" payment shrinks a
// receivable, so its delta is −amount; an "out" payment is +amount.
type Reconciliation struct {
	InvoiceBalance money.Money
	PartyDelta     money.Money
}

// Reconcile validates a proposed payment against the supplied snapshot.
// Linked payments must satisfy 0 < amount ≤ invoice balance; exceeding the
// balance fails with *domain.OverpaymentError naming the maximum admissible
// amount. Unlinked payments only require amount > 0 and leave every invoice
// untouched. Validation never mutates anything: a rejected payment leaves
// all balances exactly as they were.
func Reconcile(p ProposedPayment) (Reconciliation, error) {
	if err := money.RequirePositive("payment amount", p.Amount); err != nil {
		return Reconciliation{}, err
	}
	if p.Direction != entity.PaymentIn && p.Direction != entity.PaymentOut {
		return Reconciliation{}, fmt.Errorf("%w: direction must be %q or %q", domain.ErrInvalidInput, entity.PaymentIn, entity.PaymentOut)
	}

	rec := Reconciliation{PartyDelta: partyDelta(p.Direction, p.Amount)}
	if !p.Linked {
		return rec, nil
	}

	if p.Amount.Cmp(p.LinkedBalance) > 0 {
		return Reconciliation{}, &domain.OverpaymentError{InvoiceID: p.InvoiceID, Max: p.LinkedBalance}
	}
	rec.InvoiceBalance = p.LinkedBalance.Sub(p.Amount)
	return rec, nil
}

// Reverse undoes a committed payment: the linked invoice gets its amount
// back and the party delta flips sign. Editing a payment is always
// reverse-then-reapply through Reconcile; patching balances with a raw
// difference compounds drift when direction, amount and link change together.
func Reverse(p entity.Payment, linkedBalance money.Money) Reconciliation {
	rec := Reconciliation{PartyDelta: partyDelta(p.Direction, p.Amount).Neg()}
	if p.InvoiceID != "" {
		rec.InvoiceBalance = linkedBalance.Add(p.Amount)
	}
	return rec
}

func partyDelta(direction string, amount money.Money) money.Money {
	if direction == entity.PaymentIn {
		return amount.Neg()
	}
	return amount
}
