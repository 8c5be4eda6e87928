// Package statement builds party ledger statements and renders them as
// JSON, CSV, PDF or Tally voucher XML.
package statement

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/ledger"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// PDFRenderer turns a built statement into a printable document.
type PDFRenderer interface {
	RenderStatement(st *dto.StatementResponse) ([]byte, error)
}

// TallyExporter turns a built statement into Tally-importable voucher XML.
type TallyExporter interface {
	ExportStatement(st *dto.StatementResponse) ([]byte, error)
}

// UseCase assembles statements from repository snapshots. The ledger math
// lives in the domain builder; this layer only loads records, resolves the
// opening balance and maps formats.
type UseCase struct {
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	pdf         PDFRenderer
	tally       TallyExporter
}

// NewUseCase builds the statement service.
func NewUseCase(
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	pdf PDFRenderer,
	tally TallyExporter,
) *UseCase {
	return &UseCase{
		partyRepo:   partyRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		pdf:         pdf,
		tally:       tally,
	}
}

const dateLayout = "2006-01-02"

// Build produces the statement for the requested party and date range. A
// single-party statement starts its running column from the party's opening
// balance; the all-parties ledger starts from zero.
func (uc *UseCase) Build(ctx context.Context, req dto.StatementRequest) (*dto.StatementResponse, error) {
	filter, err := parseFilter(req)
	if err != nil {
		return nil, err
	}

	opening := money.Zero()
	partyName := ""
	var (
		invoices []*entity.Invoice
		payments []*entity.Payment
	)
	if req.PartyID != "" {
		party, err := uc.partyRepo.GetByID(req.PartyID)
		if err != nil {
			return nil, err
		}
		if party == nil {
			return nil, domain.ErrUnknownRef
		}
		opening = party.OpeningBalance
		partyName = party.Name
		if invoices, err = uc.invoiceRepo.ListByParty(req.PartyID); err != nil {
			return nil, err
		}
		if payments, err = uc.paymentRepo.ListByParty(req.PartyID); err != nil {
			return nil, err
		}
	} else {
		if invoices, err = uc.invoiceRepo.List(); err != nil {
			return nil, err
		}
		if payments, err = uc.paymentRepo.List(); err != nil {
			return nil, err
		}
	}

	invs := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		invs = append(invs, *inv)
	}
	pays := make([]entity.Payment, 0, len(payments))
	for _, p := range payments {
		pays = append(pays, *p)
	}

	st := ledger.Build(opening, filter, invs, pays)

	resp := &dto.StatementResponse{
		PartyID:      req.PartyID,
		PartyName:    partyName,
		Entries:      make([]dto.LedgerEntryResponse, 0, len(st.Entries)),
		TotalDebit:   st.TotalDebit,
		TotalCredit:  st.TotalCredit,
		Closing:      st.Closing,
		ClosingLabel: st.ClosingLabel,
	}
	for _, e := range st.Entries {
		resp.Entries = append(resp.Entries, dto.LedgerEntryResponse{
			Date:        e.Date.Format(dateLayout),
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Running:     e.Running,
			SourceKind:  e.SourceKind,
			SourceRef:   e.SourceRef,
		})
	}
	return resp, nil
}

// ExportCSV renders the statement as a debit/credit grid with a totals row,
// the layout accountants expect when pulling the ledger into a spreadsheet.
func (uc *UseCase) ExportCSV(st *dto.StatementResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"Date", "Description", "Debit", "Credit", "Balance"}}
	for _, e := range st.Entries {
		rows = append(rows, []string{
			e.Date,
			e.Description,
			e.Debit.String(),
			e.Credit.String(),
			e.Running.String(),
		})
	}
	rows = append(rows, []string{
		"", "Total",
		st.TotalDebit.String(),
		st.TotalCredit.String(),
		fmt.Sprintf("%s (%s)", st.Closing.String(), st.ClosingLabel),
	})
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the statement through the configured PDF engine.
func (uc *UseCase) ExportPDF(st *dto.StatementResponse) ([]byte, error) {
	return uc.pdf.RenderStatement(st)
}

// ExportTally renders the statement as Tally voucher XML.
func (uc *UseCase) ExportTally(st *dto.StatementResponse) ([]byte, error) {
	return uc.tally.ExportStatement(st)
}

func parseFilter(req dto.StatementRequest) (ledger.Filter, error) {
	f := ledger.Filter{PartyID: req.PartyID}
	if req.From != "" {
		t, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.From = t
	}
	if req.To != "" {
		t, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return ledger.Filter{}, fmt.Errorf("%w: to precedes from", domain.ErrInvalidInput)
	}
	return f, nil
}
