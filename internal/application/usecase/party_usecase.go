// Package usecase holds the plain CRUD application services that need no
// transactional choreography of their own.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/ledger"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// PartyUseCase manages customers and suppliers. Current balances are never
// stored: every read refolds the party's invoices and payments.
type PartyUseCase struct {
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewPartyUseCase builds the use case.
func NewPartyUseCase(
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *PartyUseCase {
	return &PartyUseCase{
		partyRepo:   partyRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateParty registers a customer or supplier.
func (uc *PartyUseCase) CreateParty(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if err := validateParty(in); err != nil {
		return nil, err
	}
	now := time.Now()
	party := &entity.Party{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Kind:           in.Kind,
		GSTIN:          in.GSTIN,
		Contact:        in.Contact,
		Address:        in.Address,
		OpeningBalance: in.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.partyRepo.Create(party); err != nil {
		return nil, err
	}
	// A fresh party has no history; its balance is the opening balance.
	return partyResponse(party, party.OpeningBalance), nil
}

// UpdateParty edits party master data. Changing the opening balance shifts
// the derived current balance by the same amount on the next read.
func (uc *PartyUseCase) UpdateParty(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if err := validateParty(in); err != nil {
		return nil, err
	}
	existing, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	party := *existing
	party.Name = in.Name
	party.Kind = in.Kind
	party.GSTIN = in.GSTIN
	party.Contact = in.Contact
	party.Address = in.Address
	party.OpeningBalance = in.OpeningBalance
	party.UpdatedAt = time.Now()
	if err := uc.partyRepo.Update(&party); err != nil {
		return nil, err
	}
	balance, err := uc.currentBalance(&party)
	if err != nil {
		return nil, err
	}
	return partyResponse(&party, balance), nil
}

// DeleteParty removes a party. Invoices and payments cascade in the schema,
// so deleting a party erases its ledger.
func (uc *PartyUseCase) DeleteParty(ctx context.Context, id string) error {
	existing, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.partyRepo.Delete(id)
}

// GetParty returns one party with its derived balance.
func (uc *PartyUseCase) GetParty(ctx context.Context, id string) (*dto.PartyResponse, error) {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	balance, err := uc.currentBalance(party)
	if err != nil {
		return nil, err
	}
	return partyResponse(party, balance), nil
}

// ListParties returns every party with derived balances.
func (uc *PartyUseCase) ListParties(ctx context.Context) ([]*dto.PartyResponse, error) {
	parties, err := uc.partyRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(parties))
	for _, party := range parties {
		balance, err := uc.currentBalance(party)
		if err != nil {
			return nil, err
		}
		out = append(out, partyResponse(party, balance))
	}
	return out, nil
}

func (uc *PartyUseCase) currentBalance(party *entity.Party) (money.Money, error) {
	invoices, err := uc.invoiceRepo.ListByParty(party.ID)
	if err != nil {
		return money.Zero(), err
	}
	payments, err := uc.paymentRepo.ListByParty(party.ID)
	if err != nil {
		return money.Zero(), err
	}
	invs := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		invs = append(invs, *inv)
	}
	pays := make([]entity.Payment, 0, len(payments))
	for _, p := range payments {
		pays = append(pays, *p)
	}
	return ledger.CurrentBalance(party.OpeningBalance, invs, pays), nil
}

func validateParty(in dto.PartyRequest) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.Kind != entity.PartyCustomer && in.Kind != entity.PartySupplier {
		return fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, entity.PartyCustomer, entity.PartySupplier)
	}
	return nil
}

func partyResponse(p *entity.Party, balance money.Money) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Kind:           p.Kind,
		GSTIN:          p.GSTIN,
		Contact:        p.Contact,
		Address:        p.Address,
		OpeningBalance: p.OpeningBalance,
		CurrentBalance: balance,
	}
}
