package billing

import (
	"context"
	"fmt"

	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
)

// InvoicePDFRenderer turns a loaded invoice and its party into PDF bytes.
type InvoicePDFRenderer interface {
	RenderInvoice(inv *entity.Invoice, party *entity.Party) ([]byte, error)
}

// PDFUseCase produces the printable representation of a single invoice, the
// document the client hands to the party.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	partyRepo   repository.PartyRepository
	renderer    InvoicePDFRenderer
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	partyRepo repository.PartyRepository,
	renderer InvoicePDFRenderer,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		renderer:    renderer,
	}
}

// DownloadInvoicePDF loads the invoice with its party and renders the PDF.
// Returns the bytes plus a download filename derived from the invoice number.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	party, err := uc.partyRepo.GetByID(inv.PartyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load party: %w", err)
	}
	if party == nil {
		return nil, "", domain.ErrUnknownRef
	}

	pdfBytes, err = uc.renderer.RenderInvoice(inv, party)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render failed: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", inv.Number), nil
}
