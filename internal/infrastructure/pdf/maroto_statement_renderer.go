// Package pdf renders party ledger statements as printable A4 documents.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Party name (or "All parties") + period             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Date | Particulars | Debit | Credit | Balance       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Total debit / Total credit / Closing + label       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/application/statement"
	"github.com/ssilapps/billbook-api/pkg/format"
	"github.com/ssilapps/billbook-api/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ statement.PDFRenderer = (*MarotoStatementRenderer)(nil)

// MarotoStatementRenderer implements statement.PDFRenderer using Maroto v2.
type MarotoStatementRenderer struct{}

// NewMarotoStatementRenderer builds the renderer.
func NewMarotoStatementRenderer() *MarotoStatementRenderer { return &MarotoStatementRenderer{} }

// RenderStatement renders the statement and returns the PDF bytes.
func (g *MarotoStatementRenderer) RenderStatement(st *dto.StatementResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Party Ledger Statement", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, e := range st.Entries {
		m.AddRows(entryRow(e))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: party name and closing position.
func headerRow(st *dto.StatementResponse) core.Row {
	title := st.PartyName
	if title == "" {
		title = "All parties"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("LEDGER STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New(st.ClosingLabel, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(format.INR(st.Closing.Abs()), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: column captions for the entry grid.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Particulars", 4, align.Left),
		h("Debit", 2, align.Right),
		h("Credit", 2, align.Right),
		h("Balance", 2, align.Right),
	)
}

// entryRow: one ledger line. Zero-sided debit/credit cells stay blank.
func entryRow(e dto.LedgerEntryResponse) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(e.Date, props.Text{Size: 8, Top: 1})),
		col.New(4).Add(text.New(e.Description, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(blankIfZero(e.Debit), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(blankIfZero(e.Credit), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(format.Amount(e.Running), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

// totalsRow: totals and the labelled closing balance.
func totalsRow(st *dto.StatementResponse) core.Row {
	closing := fmt.Sprintf("%s (%s)", format.INR(st.Closing.Abs()), st.ClosingLabel)
	return row.New(10).Add(
		col.New(2),
		col.New(4).Add(text.New("Total", props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(2).Add(text.New(format.Amount(st.TotalDebit), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
		col.New(2).Add(text.New(format.Amount(st.TotalCredit), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
		col.New(2).Add(text.New(closing, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

func blankIfZero(m money.Money) string {
	if m.IsZero() {
		return ""
	}
	return format.Amount(m)
}
