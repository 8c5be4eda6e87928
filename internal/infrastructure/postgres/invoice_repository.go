package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx). The
// header carries the derived totals; lines live in invoice_lines and are
// replaced wholesale on update.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, number, kind, party_id, date, site_name, particular,
	discount, cgst_rate, sgst_rate, igst_rate, paid_at_creation,
	subtotal, cgst_amount, sgst_amount, igst_amount, round_off, grand_total, balance,
	created_at, updated_at`

// Create persists the header and all lines.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.Kind, invoice.PartyID, invoice.Date,
		nullIfEmpty(invoice.SiteName), nullIfEmpty(invoice.Particular),
		invoice.Discount.Decimal(), invoice.CGSTRate, invoice.SGSTRate, invoice.IGSTRate,
		invoice.PaidAtCreation.Decimal(),
		invoice.Subtotal.Decimal(), invoice.CGSTAmount.Decimal(), invoice.SGSTAmount.Decimal(),
		invoice.IGSTAmount.Decimal(), invoice.RoundOff.Decimal(), invoice.GrandTotal.Decimal(),
		invoice.Balance.Decimal(),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertLines(invoice.ID, invoice.Lines)
}

// Update rewrites the header and replaces the full line set.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET kind = $2, party_id = $3, date = $4, site_name = $5, particular = $6,
		    discount = $7, cgst_rate = $8, sgst_rate = $9, igst_rate = $10,
		    paid_at_creation = $11, subtotal = $12, cgst_amount = $13, sgst_amount = $14,
		    igst_amount = $15, round_off = $16, grand_total = $17, balance = $18,
		    updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Kind, invoice.PartyID, invoice.Date,
		nullIfEmpty(invoice.SiteName), nullIfEmpty(invoice.Particular),
		invoice.Discount.Decimal(), invoice.CGSTRate, invoice.SGSTRate, invoice.IGSTRate,
		invoice.PaidAtCreation.Decimal(),
		invoice.Subtotal.Decimal(), invoice.CGSTAmount.Decimal(), invoice.SGSTAmount.Decimal(),
		invoice.IGSTAmount.Decimal(), invoice.RoundOff.Decimal(), invoice.GrandTotal.Decimal(),
		invoice.Balance.Decimal(), invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoice.ID); err != nil {
		return fmt.Errorf("clear invoice lines: %w", err)
	}
	return r.insertLines(invoice.ID, invoice.Lines)
}

// UpdateBalance writes only the outstanding balance, used by the payment
// flow after reconciliation.
func (r *InvoiceRepo) UpdateBalance(id string, balance money.Money) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET balance = $2, updated_at = now() WHERE id = $1`,
		id, balance.Decimal(),
	)
	if err != nil {
		return fmt.Errorf("update invoice balance: %w", err)
	}
	return nil
}

// Delete removes the header; lines cascade.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// GetByID returns a full invoice with its lines, or nil when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	lines, err := r.linesFor([]string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Lines = lines[inv.ID]
	return inv, nil
}

// List returns all invoices with lines, newest date first.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	return r.list(`SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC, created_at DESC`)
}

// ListByParty returns one party's invoices with lines, newest date first.
func (r *InvoiceRepo) ListByParty(partyID string) ([]*entity.Invoice, error) {
	return r.list(
		`SELECT `+invoiceColumns+` FROM invoices WHERE party_id = $1 ORDER BY date DESC, created_at DESC`,
		partyID,
	)
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var (
		list []*entity.Invoice
		ids  []string
	)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.linesFor(ids)
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		inv.Lines = lines[inv.ID]
	}
	return list, nil
}

func (r *InvoiceRepo) insertLines(invoiceID string, lines []entity.LineItem) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, item_id, particular, hsn_code, quantity, unit, rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), query,
			l.ID, invoiceID, nullIfEmpty(l.ItemID), l.Particular, nullIfEmpty(l.HSNCode),
			l.Quantity, l.Unit, l.Rate.Decimal(),
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

// linesFor loads the lines of many invoices in one query, grouped by header.
func (r *InvoiceRepo) linesFor(invoiceIDs []string) (map[string][]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, item_id, particular, hsn_code, quantity, unit, rate
		FROM invoice_lines WHERE invoice_id = ANY($1) ORDER BY invoice_id, id`
	rows, err := r.q.Query(context.Background(), query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.LineItem)
	for rows.Next() {
		var (
			l           entity.LineItem
			itemID, hsn *string
			rate        decimal.Decimal
		)
		if err := rows.Scan(&l.ID, &l.InvoiceID, &itemID, &l.Particular, &hsn, &l.Quantity, &l.Unit, &rate); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		l.ItemID = derefStr(itemID)
		l.HSNCode = derefStr(hsn)
		l.Rate = money.New(rate)
		out[l.InvoiceID] = append(out[l.InvoiceID], l)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                  entity.Invoice
		siteName, particular *string
		discount, paid       decimal.Decimal
		subtotal, cgst, sgst decimal.Decimal
		igst, roundOff       decimal.Decimal
		grandTotal, balance  decimal.Decimal
	)
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Kind, &inv.PartyID, &inv.Date, &siteName, &particular,
		&discount, &inv.CGSTRate, &inv.SGSTRate, &inv.IGSTRate, &paid,
		&subtotal, &cgst, &sgst, &igst, &roundOff, &grandTotal, &balance,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.SiteName = derefStr(siteName)
	inv.Particular = derefStr(particular)
	inv.Discount = money.New(discount)
	inv.PaidAtCreation = money.New(paid)
	inv.Subtotal = money.New(subtotal)
	inv.CGSTAmount = money.New(cgst)
	inv.SGSTAmount = money.New(sgst)
	inv.IGSTAmount = money.New(igst)
	inv.RoundOff = money.New(roundOff)
	inv.GrandTotal = money.New(grandTotal)
	inv.Balance = money.New(balance)
	return &inv, nil
}
