// Package analytics computes the read-only dashboard figures shown on the
// app's home screen.
package analytics

import (
	"context"
	"time"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/ledger"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
)

// DashboardUseCase derives every KPI fresh from the stored records. Nothing
// is cached or accumulated, so the numbers always agree with the ledger.
type DashboardUseCase struct {
	partyRepo   repository.PartyRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	partyRepo repository.PartyRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		partyRepo:   partyRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// Dashboard aggregates totals, outstanding positions and today's
// collections. Receivable sums the positive party balances, payable the
// absolute value of the negative ones; an invoice is overdue when it is a
// sale still carrying a balance.
func (uc *DashboardUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	invoices, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.List()
	if err != nil {
		return nil, err
	}
	parties, err := uc.partyRepo.List()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{}

	byPartyInv := map[string][]entity.Invoice{}
	for _, inv := range invoices {
		byPartyInv[inv.PartyID] = append(byPartyInv[inv.PartyID], *inv)
		switch inv.Kind {
		case entity.InvoiceSale:
			resp.TotalSales = resp.TotalSales.Add(inv.GrandTotal)
			if inv.Balance.IsPositive() {
				resp.OverdueCount++
				resp.OverdueTotal = resp.OverdueTotal.Add(inv.Balance)
			}
		case entity.InvoicePurchase:
			resp.TotalPurchases = resp.TotalPurchases.Add(inv.GrandTotal)
		}
	}

	byPartyPay := map[string][]entity.Payment{}
	today := time.Now()
	for _, p := range payments {
		byPartyPay[p.PartyID] = append(byPartyPay[p.PartyID], *p)
		if p.Direction == entity.PaymentIn && sameDay(p.Date, today) {
			resp.TodayPayments = resp.TodayPayments.Add(p.Amount)
		}
	}

	for _, party := range parties {
		balance := ledger.CurrentBalance(party.OpeningBalance, byPartyInv[party.ID], byPartyPay[party.ID])
		switch {
		case balance.IsPositive():
			resp.TotalReceivable = resp.TotalReceivable.Add(balance)
		case balance.IsNegative():
			resp.TotalPayable = resp.TotalPayable.Add(balance.Abs())
		}
	}

	return resp, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
