package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory store standing in for Postgres. The fake TxRunner hands out repos
// over the same maps, which is enough to exercise the use-case choreography.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	parties  map[string]*entity.Party
	invoices map[string]*entity.Invoice
	payments map[string]*entity.Payment
}

func newMemStore() *memStore {
	return &memStore{
		parties:  map[string]*entity.Party{},
		invoices: map[string]*entity.Invoice{},
		payments: map[string]*entity.Payment{},
	}
}

func (s *memStore) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	partyRepo repository.PartyRepository,
) error) error {
	return fn(&memInvoiceRepo{s}, &memPaymentRepo{s}, &memPartyRepo{s})
}

type memPartyRepo struct{ s *memStore }

func (r *memPartyRepo) Create(p *entity.Party) error { cp := *p; r.s.parties[p.ID] = &cp; return nil }
func (r *memPartyRepo) Update(p *entity.Party) error { cp := *p; r.s.parties[p.ID] = &cp; return nil }
func (r *memPartyRepo) Delete(id string) error       { delete(r.s.parties, id); return nil }
func (r *memPartyRepo) GetByID(id string) (*entity.Party, error) {
	if p, ok := r.s.parties[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *memPartyRepo) List() ([]*entity.Party, error) {
	var out []*entity.Party
	for _, p := range r.s.parties {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) UpdateBalance(id string, balance money.Money) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Balance = balance
	return nil
}
func (r *memInvoiceRepo) Delete(id string) error { delete(r.s.invoices, id); return nil }
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.s.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}
func (r *memInvoiceRepo) List() ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memInvoiceRepo) ListByParty(partyID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.PartyID == partyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}
func (r *memPaymentRepo) Update(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}
func (r *memPaymentRepo) Delete(id string) error { delete(r.s.payments, id); return nil }
func (r *memPaymentRepo) UnlinkInvoice(invoiceID string) error {
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			p.InvoiceID = ""
		}
	}
	return nil
}
func (r *memPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	if p, ok := r.s.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *memPaymentRepo) List() ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memPaymentRepo) ListByParty(partyID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.PartyID == partyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memPaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func newFixture(t *testing.T) (*memStore, *billing.InvoiceUseCase, *billing.PaymentUseCase, string) {
	t.Helper()
	store := newMemStore()
	partyRepo := &memPartyRepo{store}
	invoiceRepo := &memInvoiceRepo{store}
	paymentRepo := &memPaymentRepo{store}

	party := &entity.Party{ID: "party-1", Name: "Sharma Constructions", Kind: entity.PartyCustomer}
	require.NoError(t, partyRepo.Create(party))

	invoiceUC := billing.NewInvoiceUseCase(store, partyRepo, invoiceRepo, paymentRepo)
	paymentUC := billing.NewPaymentUseCase(store, partyRepo, invoiceRepo, paymentRepo)
	return store, invoiceUC, paymentUC, party.ID
}

func saleRequest(partyID, amount string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Kind:    entity.InvoiceSale,
		PartyID: partyID,
		Lines: []dto.InvoiceLineRequest{{
			Particular: "JCB 3DX",
			Quantity:   decimal.NewFromInt(1),
			Unit:       "Month",
			Rate:       money.MustParse(amount),
		}},
	}
}

func assertMoney(t *testing.T, want string, got money.Money) {
	t.Helper()
	assert.True(t, money.MustParse(want).Equal(got), "want %s, got %s", want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invoice lifecycle
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_DerivesTotalsAndBalance(t *testing.T) {
	_, invoiceUC, _, partyID := newFixture(t)

	req := saleRequest(partyID, "2500")
	req.CGSTRate = decimal.NewFromInt(9)
	req.SGSTRate = decimal.NewFromInt(9)

	inv, err := invoiceUC.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assertMoney(t, "2500", inv.Subtotal)
	assertMoney(t, "225", inv.CGSTAmount)
	assertMoney(t, "225", inv.SGSTAmount)
	assertMoney(t, "2950", inv.GrandTotal)
	assertMoney(t, "2950", inv.Balance)
	assert.Contains(t, inv.Number, "INV-")
}

func TestCreateInvoice_UnknownPartyRejected(t *testing.T) {
	_, invoiceUC, _, _ := newFixture(t)

	_, err := invoiceUC.CreateInvoice(context.Background(), saleRequest("missing", "1000"))
	assert.ErrorIs(t, err, domain.ErrUnknownRef)
}

func TestUpdateInvoice_RecomputesAgainstLinkedPayments(t *testing.T) {
	_, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "10000"))
	require.NoError(t, err)

	_, err = paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("4000"),
		Mode:      entity.ModeUPI,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	// Shrink the invoice below what was already collected.
	updated, err := invoiceUC.UpdateInvoice(context.Background(), inv.ID, saleRequest(partyID, "3000"))
	require.NoError(t, err)

	assertMoney(t, "3000", updated.GrandTotal)
	assertMoney(t, "-1000", updated.Balance) // overpaid, reported not rejected
}

func TestDeleteInvoice_UnlinksPayments(t *testing.T) {
	store, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "10000"))
	require.NoError(t, err)

	pay, err := paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("4000"),
		Mode:      entity.ModeCash,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	require.NoError(t, invoiceUC.DeleteInvoice(context.Background(), inv.ID))

	assert.Empty(t, store.payments[pay.ID].InvoiceID, "payment must survive unlinked")
	assert.NotContains(t, store.invoices, inv.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Payment lifecycle
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePayment_LinkedReducesBothBalances(t *testing.T) {
	store, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "10000"))
	require.NoError(t, err)

	pay, err := paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("4000"),
		Mode:      entity.ModeBank,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	assertMoney(t, "6000", pay.InvoiceBalance)
	assertMoney(t, "6000", pay.PartyBalance)
	assertMoney(t, "6000", store.invoices[inv.ID].Balance)
}

func TestCreatePayment_OverpaymentLeavesBalancesUntouched(t *testing.T) {
	store, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "5000"))
	require.NoError(t, err)

	_, err = paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("5001"),
		Mode:      entity.ModeCash,
		InvoiceID: inv.ID,
	})

	var overpay *domain.OverpaymentError
	require.ErrorAs(t, err, &overpay)
	assertMoney(t, "5000", overpay.Max)
	assertMoney(t, "5000", store.invoices[inv.ID].Balance)
	assert.Empty(t, store.payments)
}

func TestCreatePayment_InvoiceOfOtherPartyRejected(t *testing.T) {
	store, invoiceUC, paymentUC, partyID := newFixture(t)

	other := &entity.Party{ID: "party-2", Name: "Patel Diesel", Kind: entity.PartySupplier}
	store.parties[other.ID] = other

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "5000"))
	require.NoError(t, err)

	_, err = paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   other.ID,
		Amount:    money.MustParse("1000"),
		Mode:      entity.ModeCash,
		InvoiceID: inv.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePayment_ReverseThenReapply(t *testing.T) {
	store, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "10000"))
	require.NoError(t, err)

	pay, err := paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("4000"),
		Mode:      entity.ModeUPI,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	// Raise the amount: allowed up to the restored balance of 10000.
	updated, err := paymentUC.UpdatePayment(context.Background(), pay.ID, dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("9000"),
		Mode:      entity.ModeUPI,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	assertMoney(t, "1000", updated.InvoiceBalance)
	assertMoney(t, "1000", updated.PartyBalance)
	assertMoney(t, "1000", store.invoices[inv.ID].Balance)
}

func TestUpdatePayment_BeyondRestoredBalanceRejected(t *testing.T) {
	_, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "10000"))
	require.NoError(t, err)

	pay, err := paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("4000"),
		Mode:      entity.ModeUPI,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	_, err = paymentUC.UpdatePayment(context.Background(), pay.ID, dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("10001"),
		Mode:      entity.ModeUPI,
		InvoiceID: inv.ID,
	})

	var overpay *domain.OverpaymentError
	require.ErrorAs(t, err, &overpay)
	assertMoney(t, "10000", overpay.Max)
}

func TestDeletePayment_RestoresInvoiceBalance(t *testing.T) {
	store, invoiceUC, paymentUC, partyID := newFixture(t)

	inv, err := invoiceUC.CreateInvoice(context.Background(), saleRequest(partyID, "10000"))
	require.NoError(t, err)

	pay, err := paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("4000"),
		Mode:      entity.ModeCash,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)
	assertMoney(t, "6000", store.invoices[inv.ID].Balance)

	require.NoError(t, paymentUC.DeletePayment(context.Background(), pay.ID))

	assertMoney(t, "10000", store.invoices[inv.ID].Balance)
	assert.Empty(t, store.payments)
}

func TestCreatePayment_InvalidModeRejected(t *testing.T) {
	_, _, paymentUC, partyID := newFixture(t)

	_, err := paymentUC.CreatePayment(context.Background(), dto.PaymentRequest{
		Direction: entity.PaymentIn,
		PartyID:   partyID,
		Amount:    money.MustParse("100"),
		Mode:      "cheque",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
