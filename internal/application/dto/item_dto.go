package dto

import (
	"github.com/shopspring/decimal"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// ItemRequest creates or updates a catalogue item.
type ItemRequest struct {
	Name         string          `json:"name"`
	HSNCode      string          `json:"hsnSac"`
	Unit         string          `json:"unit"`
	SaleRate     money.Money     `json:"saleRate"`
	PurchaseRate money.Money     `json:"purchaseRate"`
	GSTRate      decimal.Decimal `json:"gstRate"`
}

// ItemResponse is a catalogue item.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	HSNCode      string          `json:"hsnSac"`
	Unit         string          `json:"unit"`
	SaleRate     money.Money     `json:"saleRate"`
	PurchaseRate money.Money     `json:"purchaseRate"`
	GSTRate      decimal.Decimal `json:"gstRate"`
}
