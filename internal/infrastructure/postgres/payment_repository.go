package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, direction, party_id, amount, mode, note, date, invoice_id, created_at, updated_at`

// Create persists a payment.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Direction, payment.PartyID, payment.Amount.Decimal(),
		payment.Mode, nullIfEmpty(payment.Note), payment.Date, nullIfEmpty(payment.InvoiceID),
		payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// Update rewrites a payment.
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET direction = $2, party_id = $3, amount = $4, mode = $5, note = $6,
		    date = $7, invoice_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Direction, payment.PartyID, payment.Amount.Decimal(),
		payment.Mode, nullIfEmpty(payment.Note), payment.Date, nullIfEmpty(payment.InvoiceID),
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete removes a payment.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// UnlinkInvoice clears the invoice reference on every payment pointing at
// the given invoice. The payments keep affecting the party balance.
func (r *PaymentRepo) UnlinkInvoice(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE payments SET invoice_id = NULL, updated_at = now() WHERE invoice_id = $1`,
		invoiceID,
	)
	if err != nil {
		return fmt.Errorf("unlink payments: %w", err)
	}
	return nil
}

// GetByID returns one payment, or nil when it does not exist.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// List returns all payments, newest date first.
func (r *PaymentRepo) List() ([]*entity.Payment, error) {
	return r.list(`SELECT ` + paymentColumns + ` FROM payments ORDER BY date DESC, created_at DESC`)
}

// ListByParty returns one party's payments, newest date first.
func (r *PaymentRepo) ListByParty(partyID string) ([]*entity.Payment, error) {
	return r.list(
		`SELECT `+paymentColumns+` FROM payments WHERE party_id = $1 ORDER BY date DESC, created_at DESC`,
		partyID,
	)
}

// ListByInvoice returns the payments linked to one invoice.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	return r.list(
		`SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY date, created_at`,
		invoiceID,
	)
}

func (r *PaymentRepo) list(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var (
		p               entity.Payment
		note, invoiceID *string
		amount          decimal.Decimal
	)
	err := row.Scan(&p.ID, &p.Direction, &p.PartyID, &amount, &p.Mode, &note, &p.Date,
		&invoiceID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Note = derefStr(note)
	p.InvoiceID = derefStr(invoiceID)
	p.Amount = money.New(amount)
	return &p, nil
}
