package dto

import "github.com/ssilapps/billbook-api/pkg/money"

// DashboardResponse aggregates the home-screen KPIs.
type DashboardResponse struct {
	TotalSales      money.Money `json:"totalSales"`
	TotalPurchases  money.Money `json:"totalPurchases"`
	TotalReceivable money.Money `json:"totalReceivable"`
	TotalPayable    money.Money `json:"totalPayable"`
	TodayPayments   money.Money `json:"todayPayments"`
	OverdueCount    int         `json:"overdueCount"`
	OverdueTotal    money.Money `json:"overdueTotal"`
}
