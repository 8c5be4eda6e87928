package repository

import (
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// InvoiceRepository persists invoice headers and their lines. Create and
// Update replace the full line set; derived totals are stored alongside the
// header but are always recomputable from the lines.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	Update(invoice *entity.Invoice) error
	UpdateBalance(id string, balance money.Money) error
	Delete(id string) error
	GetByID(id string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	ListByParty(partyID string) ([]*entity.Invoice, error)
}
