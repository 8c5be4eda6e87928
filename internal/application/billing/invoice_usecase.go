package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	dombilling "github.com/ssilapps/billbook-api/internal/domain/billing"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// InvoiceUseCase creates, edits and deletes invoices. Derived totals are
// always recomputed from scratch through the domain calculator; nothing is
// patched incrementally, so a bad write can never accumulate drift.
type InvoiceUseCase struct {
	txRunner    TxRunner
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner TxRunner,
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		partyRepo:   partyRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateInvoice validates the draft, derives all totals and persists header
// and lines in one transaction.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Kind != entity.InvoiceSale && in.Kind != entity.InvoicePurchase {
		return nil, fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, entity.InvoiceSale, entity.InvoicePurchase)
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrUnknownRef
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	lines := draftLines(invoiceID, in.Lines)

	totals, err := dombilling.CalculateTotals(dombilling.Draft{
		Lines:          lines,
		Discount:       in.Discount,
		CGSTRate:       in.CGSTRate,
		SGSTRate:       in.SGSTRate,
		IGSTRate:       in.IGSTRate,
		PaidAtCreation: in.PaidAmount,
	})
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:             invoiceID,
		Number:         invoiceNumber(in.Kind, now),
		Kind:           in.Kind,
		PartyID:        in.PartyID,
		Date:           date,
		SiteName:       in.SiteName,
		Particular:     in.Particular,
		Lines:          lines,
		Discount:       in.Discount,
		CGSTRate:       in.CGSTRate,
		SGSTRate:       in.SGSTRate,
		IGSTRate:       in.IGSTRate,
		PaidAtCreation: in.PaidAmount,
		Subtotal:       totals.Subtotal,
		CGSTAmount:     totals.CGSTAmount,
		SGSTAmount:     totals.SGSTAmount,
		IGSTAmount:     totals.IGSTAmount,
		RoundOff:       totals.RoundOff,
		GrandTotal:     totals.GrandTotal,
		Balance:        totals.Balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		return invoiceRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}
	return invoiceResponse(inv, party.Name), nil
}

// UpdateInvoice recomputes every derived field from the new draft plus the
// payments already linked to the invoice, then replaces header and lines.
// The balance may come out negative when the edit shrinks the total below
// what was collected; that is reported as-is ("overpaid"), not rejected.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Kind != entity.InvoiceSale && in.Kind != entity.InvoicePurchase {
		return nil, fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, entity.InvoiceSale, entity.InvoicePurchase)
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrUnknownRef
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var updated *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		existing, err := invoiceRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrUnknownRef
		}
		linked, err := paymentRepo.ListByInvoice(id)
		if err != nil {
			return err
		}
		linkedAmounts := make([]money.Money, 0, len(linked))
		for _, p := range linked {
			linkedAmounts = append(linkedAmounts, p.Amount)
		}

		lines := draftLines(id, in.Lines)
		totals, err := dombilling.CalculateTotals(dombilling.Draft{
			Lines:          lines,
			Discount:       in.Discount,
			CGSTRate:       in.CGSTRate,
			SGSTRate:       in.SGSTRate,
			IGSTRate:       in.IGSTRate,
			PaidAtCreation: in.PaidAmount,
			LinkedPayments: linkedAmounts,
		})
		if err != nil {
			return err
		}

		inv := *existing
		inv.Kind = in.Kind
		inv.PartyID = in.PartyID
		inv.Date = date
		inv.SiteName = in.SiteName
		inv.Particular = in.Particular
		inv.Lines = lines
		inv.Discount = in.Discount
		inv.CGSTRate = in.CGSTRate
		inv.SGSTRate = in.SGSTRate
		inv.IGSTRate = in.IGSTRate
		inv.PaidAtCreation = in.PaidAmount
		inv.Subtotal = totals.Subtotal
		inv.CGSTAmount = totals.CGSTAmount
		inv.SGSTAmount = totals.SGSTAmount
		inv.IGSTAmount = totals.IGSTAmount
		inv.RoundOff = totals.RoundOff
		inv.GrandTotal = totals.GrandTotal
		inv.Balance = totals.Balance
		inv.UpdatedAt = time.Now()

		if err := invoiceRepo.Update(&inv); err != nil {
			return err
		}
		updated = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceResponse(updated, party.Name), nil
}

// DeleteInvoice removes the invoice and its lines and unlinks any payments
// that referenced it. Party balances are derived on read, so the deletion
// reverses the invoice's effect without any compensating write.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, id string) error {
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		existing, err := invoiceRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := paymentRepo.UnlinkInvoice(id); err != nil {
			return err
		}
		return invoiceRepo.Delete(id)
	})
}

// GetInvoice returns one invoice with party name attached.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	partyName := ""
	if party, _ := uc.partyRepo.GetByID(inv.PartyID); party != nil {
		partyName = party.Name
	}
	return invoiceResponse(inv, partyName), nil
}

// ListInvoices returns all invoices, newest first as stored.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	parties, err := uc.partyRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(parties))
	for _, p := range parties {
		names[p.ID] = p.Name
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceResponse(inv, names[inv.PartyID]))
	}
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD and defaults to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return t, nil
}

// invoiceNumber assigns INV-/PUR- numbers from the creation instant, the
// same scheme the original backend used.
func invoiceNumber(kind string, now time.Time) string {
	prefix := "INV"
	if kind == entity.InvoicePurchase {
		prefix = "PUR"
	}
	return fmt.Sprintf("%s-%d", prefix, now.Unix())
}

func draftLines(invoiceID string, in []dto.InvoiceLineRequest) []entity.LineItem {
	lines := make([]entity.LineItem, 0, len(in))
	for _, l := range in {
		lineID := l.ID
		if lineID == "" {
			lineID = uuid.New().String()
		}
		lines = append(lines, entity.LineItem{
			ID:         lineID,
			InvoiceID:  invoiceID,
			ItemID:     l.ItemID,
			Particular: l.Particular,
			HSNCode:    l.HSNCode,
			Quantity:   l.Quantity,
			Unit:       l.Unit,
			Rate:       l.Rate,
		})
	}
	return lines
}

func invoiceResponse(inv *entity.Invoice, partyName string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		Kind:           inv.Kind,
		PartyID:        inv.PartyID,
		PartyName:      partyName,
		Date:           inv.Date.Format(dateLayout),
		SiteName:       inv.SiteName,
		Particular:     inv.Particular,
		Lines:          make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
		Discount:       inv.Discount,
		CGSTRate:       inv.CGSTRate,
		SGSTRate:       inv.SGSTRate,
		IGSTRate:       inv.IGSTRate,
		PaidAtCreation: inv.PaidAtCreation,
		Subtotal:       inv.Subtotal,
		CGSTAmount:     inv.CGSTAmount,
		SGSTAmount:     inv.SGSTAmount,
		IGSTAmount:     inv.IGSTAmount,
		RoundOff:       inv.RoundOff,
		GrandTotal:     inv.GrandTotal,
		Balance:        inv.Balance,
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:         l.ID,
			ItemID:     l.ItemID,
			Particular: l.Particular,
			HSNCode:    l.HSNCode,
			Quantity:   l.Quantity,
			Unit:       l.Unit,
			Rate:       l.Rate,
			Amount:     l.Amount(),
		})
	}
	return resp
}
