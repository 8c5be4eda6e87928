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

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implements PartyRepository (usable with pool or tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository builds the adapter. Pass a pool or tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// Create persists a new party.
func (r *PartyRepo) Create(party *entity.Party) error {
	query := `
		INSERT INTO parties (id, name, kind, gstin, contact, address, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Name, party.Kind, nullIfEmpty(party.GSTIN), nullIfEmpty(party.Contact),
		nullIfEmpty(party.Address), party.OpeningBalance.Decimal(), party.CreatedAt, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// Update rewrites the party's master data.
func (r *PartyRepo) Update(party *entity.Party) error {
	query := `
		UPDATE parties
		SET name = $2, kind = $3, gstin = $4, contact = $5, address = $6,
		    opening_balance = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Name, party.Kind, nullIfEmpty(party.GSTIN), nullIfEmpty(party.Contact),
		nullIfEmpty(party.Address), party.OpeningBalance.Decimal(), party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update party: %w", err)
	}
	return nil
}

// Delete removes a party; invoices and payments cascade in the schema.
func (r *PartyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}

// GetByID returns one party, or nil when it does not exist.
func (r *PartyRepo) GetByID(id string) (*entity.Party, error) {
	query := `
		SELECT id, name, kind, gstin, contact, address, opening_balance, created_at, updated_at
		FROM parties WHERE id = $1`
	p, err := scanParty(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// List returns all parties ordered by name.
func (r *PartyRepo) List() ([]*entity.Party, error) {
	query := `
		SELECT id, name, kind, gstin, contact, address, opening_balance, created_at, updated_at
		FROM parties ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanParty(row pgx.Row) (*entity.Party, error) {
	var (
		p                       entity.Party
		gstin, contact, address *string
		opening                 decimal.Decimal
	)
	err := row.Scan(&p.ID, &p.Name, &p.Kind, &gstin, &contact, &address, &opening, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.GSTIN = derefStr(gstin)
	p.Contact = derefStr(contact)
	p.Address = derefStr(address)
	p.OpeningBalance = money.New(opening)
	return &p, nil
}
