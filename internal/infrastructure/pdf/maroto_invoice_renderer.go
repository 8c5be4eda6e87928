package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/format"
)

var _ billing.InvoicePDFRenderer = (*MarotoInvoiceRenderer)(nil)

// MarotoInvoiceRenderer implements billing.InvoicePDFRenderer using Maroto v2.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TAX INVOICE / PURCHASE  │  Number + Date           │
//	│  BILLED TO: party name + GSTIN + contact + site             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Particulars | HSN/SAC | Rate | Amount         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / GST / Discount / Round off / Total      │
//	│          Received / Balance due                             │
//	└─────────────────────────────────────────────────────────────┘
type MarotoInvoiceRenderer struct{}

// NewMarotoInvoiceRenderer builds the renderer.
func NewMarotoInvoiceRenderer() *MarotoInvoiceRenderer { return &MarotoInvoiceRenderer{} }

// RenderInvoice renders the invoice and returns the PDF bytes.
func (g *MarotoInvoiceRenderer) RenderInvoice(inv *entity.Invoice, party *entity.Party) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("GST Invoice "+inv.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(invoiceHeaderRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billedToRow(inv, party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(lineHeaderRow())
	for _, l := range inv.Lines {
		m.AddRows(invoiceLineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range invoiceTotalsRows(inv) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// invoiceHeaderRow: document title (left) and number + date (right).
func invoiceHeaderRow(inv *entity.Invoice) core.Row {
	title := "TAX INVOICE"
	if inv.Kind == entity.InvoicePurchase {
		title = "PURCHASE INVOICE"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Particular, props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+inv.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// billedToRow: the party and where the work happened.
func billedToRow(inv *entity.Invoice, party *entity.Party) core.Row {
	details := make([]string, 0, 3)
	if party.GSTIN != "" {
		details = append(details, "GSTIN: "+party.GSTIN)
	}
	if party.Contact != "" {
		details = append(details, "Contact: "+party.Contact)
	}
	if inv.SiteName != "" {
		details = append(details, "Site: "+inv.SiteName)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILLED TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(party.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(strings.Join(details, "   |   "), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

// lineHeaderRow: column captions for the line-item grid.
func lineHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Particulars", 5, align.Left),
		h("HSN/SAC", 2, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// invoiceLineRow: one line item; the amount is recomputed, never stored.
func invoiceLineRow(l entity.LineItem) core.Row {
	qty := l.Quantity.String()
	if l.Unit != "" {
		qty += " " + l.Unit
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(l.Particular, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(l.HSNCode, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(format.Amount(l.Rate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(format.Amount(l.Amount()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// invoiceTotalsRows: right-aligned totals block. Tax lines appear only for
// the regime in use; discount and round-off only when non-zero.
func invoiceTotalsRows(inv *entity.Invoice) []core.Row {
	type amountLine struct {
		label string
		value string
		grand bool
	}

	lines := []amountLine{{label: "Subtotal:", value: format.INR(inv.Subtotal)}}
	if !inv.CGSTAmount.IsZero() || !inv.SGSTAmount.IsZero() {
		lines = append(lines,
			amountLine{label: fmt.Sprintf("CGST @ %s%%:", inv.CGSTRate), value: format.INR(inv.CGSTAmount)},
			amountLine{label: fmt.Sprintf("SGST @ %s%%:", inv.SGSTRate), value: format.INR(inv.SGSTAmount)},
		)
	}
	if !inv.IGSTAmount.IsZero() {
		lines = append(lines, amountLine{label: fmt.Sprintf("IGST @ %s%%:", inv.IGSTRate), value: format.INR(inv.IGSTAmount)})
	}
	if !inv.Discount.IsZero() {
		lines = append(lines, amountLine{label: "Discount:", value: format.INR(inv.Discount)})
	}
	if !inv.RoundOff.IsZero() {
		lines = append(lines, amountLine{label: "Round off:", value: format.INR(inv.RoundOff)})
	}
	lines = append(lines, amountLine{label: "GRAND TOTAL:", value: format.INR(inv.GrandTotal), grand: true})
	if !inv.PaidAtCreation.IsZero() {
		lines = append(lines, amountLine{label: "Received:", value: format.INR(inv.PaidAtCreation)})
	}
	lines = append(lines, amountLine{label: "Balance due:", value: format.INR(inv.Balance), grand: true})

	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		labelProps := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1}
		valueProps := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if l.grand {
			labelProps.Size, labelProps.Color = 10, colorPrimary
			valueProps.Size, valueProps.Color, valueProps.Style = 10, colorPrimary, fontstyle.Bold
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(l.label, labelProps)),
			col.New(3).Add(text.New(l.value, valueProps)),
		))
	}
	return rows
}
