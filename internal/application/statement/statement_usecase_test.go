package statement_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/application/statement"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Read-only fakes: the statement service only lists and looks up.
// ──────────────────────────────────────────────────────────────────────────────

type stubPartyRepo struct{ parties map[string]*entity.Party }

func (r *stubPartyRepo) Create(*entity.Party) error { return nil }
func (r *stubPartyRepo) Update(*entity.Party) error { return nil }
func (r *stubPartyRepo) Delete(string) error        { return nil }
func (r *stubPartyRepo) GetByID(id string) (*entity.Party, error) {
	return r.parties[id], nil
}
func (r *stubPartyRepo) List() ([]*entity.Party, error) {
	var out []*entity.Party
	for _, p := range r.parties {
		out = append(out, p)
	}
	return out, nil
}

type stubInvoiceRepo struct{ invoices []*entity.Invoice }

func (r *stubInvoiceRepo) Create(*entity.Invoice) error                { return nil }
func (r *stubInvoiceRepo) Update(*entity.Invoice) error                { return nil }
func (r *stubInvoiceRepo) UpdateBalance(string, money.Money) error     { return nil }
func (r *stubInvoiceRepo) Delete(string) error                         { return nil }
func (r *stubInvoiceRepo) GetByID(string) (*entity.Invoice, error)     { return nil, nil }
func (r *stubInvoiceRepo) List() ([]*entity.Invoice, error)            { return r.invoices, nil }
func (r *stubInvoiceRepo) ListByParty(partyID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.PartyID == partyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type stubPaymentRepo struct{ payments []*entity.Payment }

func (r *stubPaymentRepo) Create(*entity.Payment) error            { return nil }
func (r *stubPaymentRepo) Update(*entity.Payment) error            { return nil }
func (r *stubPaymentRepo) Delete(string) error                     { return nil }
func (r *stubPaymentRepo) UnlinkInvoice(string) error              { return nil }
func (r *stubPaymentRepo) GetByID(string) (*entity.Payment, error) { return nil, nil }
func (r *stubPaymentRepo) List() ([]*entity.Payment, error)        { return r.payments, nil }
func (r *stubPaymentRepo) ListByParty(partyID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.PartyID == partyID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *stubPaymentRepo) ListByInvoice(string) ([]*entity.Payment, error) { return nil, nil }

func day(d int) time.Time {
	return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
}

func newStatementUC() *statement.UseCase {
	parties := &stubPartyRepo{parties: map[string]*entity.Party{
		"p1": {ID: "p1", Name: "Sharma Constructions", OpeningBalance: money.MustParse("500")},
	}}
	invoices := &stubInvoiceRepo{invoices: []*entity.Invoice{
		{ID: "i1", Number: "INV-1", Kind: entity.InvoiceSale, PartyID: "p1",
			Date: day(1), GrandTotal: money.MustParse("10000")},
	}}
	payments := &stubPaymentRepo{payments: []*entity.Payment{
		{ID: "m1", Direction: entity.PaymentIn, PartyID: "p1", Mode: entity.ModeUPI,
			Date: day(5), Amount: money.MustParse("4000")},
	}}
	return statement.NewUseCase(parties, invoices, payments, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Build
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_SinglePartyStartsFromOpeningBalance(t *testing.T) {
	uc := newStatementUC()

	st, err := uc.Build(context.Background(), dto.StatementRequest{PartyID: "p1"})
	require.NoError(t, err)

	require.Len(t, st.Entries, 2)
	assert.Equal(t, "Sharma Constructions", st.PartyName)
	// 500 opening + 10000 debit − 4000 credit.
	assert.Equal(t, "10500.00", st.Entries[0].Running.String())
	assert.Equal(t, "6500.00", st.Closing.String())
	assert.Equal(t, "Receivable", st.ClosingLabel)
}

func TestBuild_AllPartiesStartsFromZero(t *testing.T) {
	uc := newStatementUC()

	st, err := uc.Build(context.Background(), dto.StatementRequest{})
	require.NoError(t, err)

	require.Len(t, st.Entries, 2)
	assert.Equal(t, "10000.00", st.Entries[0].Running.String())
	assert.Equal(t, "6000.00", st.Closing.String())
}

func TestBuild_UnknownPartyRejected(t *testing.T) {
	uc := newStatementUC()

	_, err := uc.Build(context.Background(), dto.StatementRequest{PartyID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUnknownRef)
}

func TestBuild_InvalidDateRangeRejected(t *testing.T) {
	uc := newStatementUC()

	_, err := uc.Build(context.Background(), dto.StatementRequest{From: "2026-08-31", To: "2026-08-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Build(context.Background(), dto.StatementRequest{From: "yesterday"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CSV export
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_GridWithTotalsRow(t *testing.T) {
	uc := newStatementUC()
	st, err := uc.Build(context.Background(), dto.StatementRequest{PartyID: "p1"})
	require.NoError(t, err)

	out, err := uc.ExportCSV(st)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4) // header, two entries, totals
	assert.Equal(t, "Date,Description,Debit,Credit,Balance", lines[0])
	assert.Contains(t, lines[1], "2026-08-01")
	assert.Contains(t, lines[1], "10000.00")
	assert.Contains(t, lines[3], "Total")
	assert.Contains(t, lines[3], "6500.00 (Receivable)")
}
