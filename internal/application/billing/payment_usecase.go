package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	dombilling "github.com/ssilapps/billbook-api/internal/domain/billing"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/ledger"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// PaymentUseCase records, edits and deletes payments. Editing never patches
// a stored balance with a difference: the old payment is reversed first and
// the new one reapplied through the reconciler, inside one transaction.
type PaymentUseCase struct {
	txRunner    TxRunner
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(
	txRunner TxRunner,
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:    txRunner,
		partyRepo:   partyRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// CreatePayment validates the payment against the linked invoice's current
// balance (if any) and persists payment plus updated invoice balance
// atomically. A rejected payment leaves every balance untouched.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrUnknownRef
	}
	if err := validateMode(in.Mode); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		Direction: in.Direction,
		PartyID:   in.PartyID,
		Amount:    in.Amount,
		Mode:      in.Mode,
		Note:      in.Note,
		Date:      date,
		InvoiceID: in.InvoiceID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var invoiceBalance money.Money
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		proposal := dombilling.ProposedPayment{
			Direction: in.Direction,
			Amount:    in.Amount,
			InvoiceID: in.InvoiceID,
		}
		var linked *entity.Invoice
		if in.InvoiceID != "" {
			linked, err = invoiceRepo.GetByID(in.InvoiceID)
			if err != nil {
				return err
			}
			if linked == nil {
				return domain.ErrUnknownRef
			}
			if linked.PartyID != in.PartyID {
				return fmt.Errorf("%w: invoice belongs to a different party", domain.ErrInvalidInput)
			}
			proposal.Linked = true
			proposal.LinkedBalance = linked.Balance
		}

		rec, err := dombilling.Reconcile(proposal)
		if err != nil {
			return err
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		if linked != nil {
			if err := invoiceRepo.UpdateBalance(linked.ID, rec.InvoiceBalance); err != nil {
				return err
			}
			invoiceBalance = rec.InvoiceBalance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.paymentResponse(payment, invoiceBalance)
}

// UpdatePayment reverses the stored payment and reapplies the edited one,
// revalidating against whichever invoice it now links to. The two halves
// commit together or not at all.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, id string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrUnknownRef
	}
	if err := validateMode(in.Mode); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var (
		updated        *entity.Payment
		invoiceBalance money.Money
	)
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		existing, err := paymentRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		// Reverse the old payment. The restored balance stays in memory so
		// a relink to the same invoice validates against it, not the stale
		// stored value.
		restored := map[string]money.Money{}
		if existing.InvoiceID != "" {
			oldInv, err := invoiceRepo.GetByID(existing.InvoiceID)
			if err != nil {
				return err
			}
			if oldInv != nil {
				rev := dombilling.Reverse(*existing, oldInv.Balance)
				if err := invoiceRepo.UpdateBalance(oldInv.ID, rev.InvoiceBalance); err != nil {
					return err
				}
				restored[oldInv.ID] = rev.InvoiceBalance
			}
		}

		proposal := dombilling.ProposedPayment{
			Direction: in.Direction,
			Amount:    in.Amount,
			InvoiceID: in.InvoiceID,
		}
		var linkedID string
		if in.InvoiceID != "" {
			balance, ok := restored[in.InvoiceID]
			if !ok {
				newInv, err := invoiceRepo.GetByID(in.InvoiceID)
				if err != nil {
					return err
				}
				if newInv == nil {
					return domain.ErrUnknownRef
				}
				if newInv.PartyID != in.PartyID {
					return fmt.Errorf("%w: invoice belongs to a different party", domain.ErrInvalidInput)
				}
				balance = newInv.Balance
			}
			proposal.Linked = true
			proposal.LinkedBalance = balance
			linkedID = in.InvoiceID
		}

		rec, err := dombilling.Reconcile(proposal)
		if err != nil {
			return err
		}

		p := *existing
		p.Direction = in.Direction
		p.PartyID = in.PartyID
		p.Amount = in.Amount
		p.Mode = in.Mode
		p.Note = in.Note
		p.Date = date
		p.InvoiceID = in.InvoiceID
		p.UpdatedAt = time.Now()

		if err := paymentRepo.Update(&p); err != nil {
			return err
		}
		if linkedID != "" {
			if err := invoiceRepo.UpdateBalance(linkedID, rec.InvoiceBalance); err != nil {
				return err
			}
			invoiceBalance = rec.InvoiceBalance
		}
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.paymentResponse(updated, invoiceBalance)
}

// DeletePayment reverses the payment's effect and removes it: the linked
// invoice gets the amount added back to its balance in the same transaction.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id string) error {
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PartyRepository,
	) error {
		existing, err := paymentRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if existing.InvoiceID != "" {
			inv, err := invoiceRepo.GetByID(existing.InvoiceID)
			if err != nil {
				return err
			}
			if inv != nil {
				rev := dombilling.Reverse(*existing, inv.Balance)
				if err := invoiceRepo.UpdateBalance(inv.ID, rev.InvoiceBalance); err != nil {
					return err
				}
			}
		}
		return paymentRepo.Delete(id)
	})
}

// GetPayment returns one payment with current balances attached.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	var invoiceBalance money.Money
	if p.InvoiceID != "" {
		if inv, err := uc.invoiceRepo.GetByID(p.InvoiceID); err == nil && inv != nil {
			invoiceBalance = inv.Balance
		}
	}
	return uc.paymentResponse(p, invoiceBalance)
}

// ListPayments returns all payments, optionally scoped to one party.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, partyID string) ([]*dto.PaymentResponse, error) {
	var (
		payments []*entity.Payment
		err      error
	)
	if partyID != "" {
		payments, err = uc.paymentRepo.ListByParty(partyID)
	} else {
		payments, err = uc.paymentRepo.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, &dto.PaymentResponse{
			ID:        p.ID,
			Direction: p.Direction,
			PartyID:   p.PartyID,
			Amount:    p.Amount,
			Mode:      p.Mode,
			Note:      p.Note,
			Date:      p.Date.Format(dateLayout),
			InvoiceID: p.InvoiceID,
		})
	}
	return out, nil
}

func (uc *PaymentUseCase) paymentResponse(p *entity.Payment, invoiceBalance money.Money) (*dto.PaymentResponse, error) {
	partyBalance, err := uc.partyBalance(p.PartyID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{
		ID:             p.ID,
		Direction:      p.Direction,
		PartyID:        p.PartyID,
		Amount:         p.Amount,
		Mode:           p.Mode,
		Note:           p.Note,
		Date:           p.Date.Format(dateLayout),
		InvoiceID:      p.InvoiceID,
		InvoiceBalance: invoiceBalance,
		PartyBalance:   partyBalance,
	}, nil
}

// partyBalance refolds the party's full history rather than trusting any
// stored figure.
func (uc *PaymentUseCase) partyBalance(partyID string) (money.Money, error) {
	party, err := uc.partyRepo.GetByID(partyID)
	if err != nil {
		return money.Zero(), err
	}
	if party == nil {
		return money.Zero(), domain.ErrUnknownRef
	}
	invoices, err := uc.invoiceRepo.ListByParty(partyID)
	if err != nil {
		return money.Zero(), err
	}
	payments, err := uc.paymentRepo.ListByParty(partyID)
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

func validateMode(mode string) error {
	switch mode {
	case entity.ModeCash, entity.ModeBank, entity.ModeUPI:
		return nil
	}
	return fmt.Errorf("%w: mode must be %q, %q or %q", domain.ErrInvalidInput, entity.ModeCash, entity.ModeBank, entity.ModeUPI)
}
