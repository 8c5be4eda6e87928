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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implements ItemRepository (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persists a catalogue item.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, hsn_code, unit, sale_rate, purchase_rate, gst_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.HSNCode), item.Unit,
		item.SaleRate.Decimal(), item.PurchaseRate.Decimal(), item.GSTRate,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update rewrites a catalogue item.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, hsn_code = $3, unit = $4, sale_rate = $5,
		    purchase_rate = $6, gst_rate = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.HSNCode), item.Unit,
		item.SaleRate.Decimal(), item.PurchaseRate.Decimal(), item.GSTRate, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes a catalogue item.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// GetByID returns one item, or nil when it does not exist.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, name, hsn_code, unit, sale_rate, purchase_rate, gst_rate, created_at, updated_at
		FROM items WHERE id = $1`
	i, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

// List returns the catalogue ordered by name.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `
		SELECT id, name, hsn_code, unit, sale_rate, purchase_rate, gst_rate, created_at, updated_at
		FROM items ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		i                  entity.Item
		hsn                *string
		saleRate, purcRate decimal.Decimal
	)
	err := row.Scan(&i.ID, &i.Name, &hsn, &i.Unit, &saleRate, &purcRate, &i.GSTRate, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.HSNCode = derefStr(hsn)
	i.SaleRate = money.New(saleRate)
	i.PurchaseRate = money.New(purcRate)
	return &i, nil
}
