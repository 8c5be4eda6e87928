package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// Entry source kinds.
const (
	SourceInvoice = "invoice"
	SourcePayment = "payment"
)

// Closing balance labels.
const (
	LabelReceivable = "Receivable"
	LabelPayable    = "Payable"
	LabelSettled    = "Settled"
)

// Entry is one statement row. Debit and Credit are always ≥ 0 and exactly
// one of them is non-zero. Running is the balance after this row. Entries
// are derived on every request and never persisted.
type Entry struct {
	Date        time.Time
	Description string
	Debit       money.Money
	Credit      money.Money
	Running     money.Money
	SourceKind  string
	SourceRef   string
}

// Statement is a chronological debit/credit ledger with a totals row.
type Statement struct {
	Entries      []Entry
	TotalDebit   money.Money
	TotalCredit  money.Money
	Closing      money.Money
	ClosingLabel string
}

// Filter selects the records that enter a statement. Zero From/To mean an
// open-ended range; an empty PartyID covers all parties.
type Filter struct {
	From    time.Time
	To      time.Time
	PartyID string
}

// Build merges invoice and payment snapshots into a single statement.
// Sales and payments out debit the ledger; purchases and payments in credit
// it. Rows sort by date ascending, stable on insertion order for same-day
// entries, and the running column folds debit − credit starting from
// `opening` (the party's opening balance for a single-party statement, zero
// for the all-parties ledger). Identical snapshots always produce identical
// rows: the builder reads nothing but its arguments.
func Build(opening money.Money, f Filter, invoices []entity.Invoice, payments []entity.Payment) Statement {
	entries := make([]Entry, 0, len(invoices)+len(payments))

	for _, inv := range invoices {
		if !f.matches(inv.PartyID, inv.Date) {
			continue
		}
		e := Entry{
			Date:        inv.Date,
			Description: invoiceDescription(inv),
			SourceKind:  SourceInvoice,
			SourceRef:   inv.ID,
		}
		if inv.Kind == entity.InvoicePurchase {
			e.Credit = inv.GrandTotal
		} else {
			e.Debit = inv.GrandTotal
		}
		entries = append(entries, e)
	}
	for _, p := range payments {
		if !f.matches(p.PartyID, p.Date) {
			continue
		}
		e := Entry{
			Date:        p.Date,
			Description: paymentDescription(p),
			SourceKind:  SourcePayment,
			SourceRef:   p.ID,
		}
		if p.Direction == entity.PaymentOut {
			e.Debit = p.Amount
		} else {
			e.Credit = p.Amount
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	st := Statement{Entries: entries}
	running := opening
	for i := range st.Entries {
		running = running.Add(st.Entries[i].Debit).Sub(st.Entries[i].Credit)
		st.Entries[i].Running = running
		st.TotalDebit = st.TotalDebit.Add(st.Entries[i].Debit)
		st.TotalCredit = st.TotalCredit.Add(st.Entries[i].Credit)
	}
	st.Closing = running
	st.ClosingLabel = closingLabel(running)
	return st
}

func (f Filter) matches(partyID string, date time.Time) bool {
	if f.PartyID != "" && partyID != f.PartyID {
		return false
	}
	if !f.From.IsZero() && date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && date.After(f.To) {
		return false
	}
	return true
}

func closingLabel(balance money.Money) string {
	switch {
	case balance.IsPositive():
		return LabelReceivable
	case balance.IsNegative():
		return LabelPayable
	default:
		return LabelSettled
	}
}

func invoiceDescription(inv entity.Invoice) string {
	kind := "Sale"
	if inv.Kind == entity.InvoicePurchase {
		kind = "Purchase"
	}
	if inv.Particular != "" {
		return fmt.Sprintf("%s %s: %s", kind, inv.Number, inv.Particular)
	}
	return fmt.Sprintf("%s %s", kind, inv.Number)
}

func paymentDescription(p entity.Payment) string {
	verb := "Payment received"
	if p.Direction == entity.PaymentOut {
		verb = "Payment made"
	}
	if p.Mode != "" {
		return fmt.Sprintf("%s (%s)", verb, p.Mode)
	}
	return verb
}
