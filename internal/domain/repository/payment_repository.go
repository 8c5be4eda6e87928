package repository

import "github.com/ssilapps/billbook-api/internal/domain/entity"

// PaymentRepository persists payments.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	Update(payment *entity.Payment) error
	Delete(id string) error
	// UnlinkInvoice clears the invoice reference on every payment pointing
	// at the given invoice (used when the invoice itself is deleted).
	UnlinkInvoice(invoiceID string) error
	GetByID(id string) (*entity.Payment, error)
	List() ([]*entity.Payment, error)
	ListByParty(partyID string) ([]*entity.Payment, error)
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
}
