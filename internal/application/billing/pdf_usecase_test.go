package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
)

type captureRenderer struct {
	invoice *entity.Invoice
	party   *entity.Party
}

func (r *captureRenderer) RenderInvoice(inv *entity.Invoice, party *entity.Party) ([]byte, error) {
	r.invoice = inv
	r.party = party
	return []byte("%PDF-1.4 stub"), nil
}

func TestDownloadInvoicePDF_RendersLoadedInvoiceWithParty(t *testing.T) {
	store, invoiceUC, _, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "2500"))
	require.NoError(t, err)

	renderer := &captureRenderer{}
	pdfUC := billing.NewPDFUseCase(&memInvoiceRepo{store}, &memPartyRepo{store}, renderer)

	out, filename, err := pdfUC.DownloadInvoicePDF(context.Background(), inv.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, out)
	assert.Equal(t, "invoice_"+inv.Number+".pdf", filename)
	require.NotNil(t, renderer.invoice)
	assert.Equal(t, inv.ID, renderer.invoice.ID)
	assert.Equal(t, "Sharma Constructions", renderer.party.Name)
}

func TestDownloadInvoicePDF_UnknownInvoice(t *testing.T) {
	store, _, _, _ := newFixture(t)

	pdfUC := billing.NewPDFUseCase(&memInvoiceRepo{store}, &memPartyRepo{store}, &captureRenderer{})

	_, _, err := pdfUC.DownloadInvoicePDF(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
