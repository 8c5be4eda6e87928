package dto

import "github.com/ssilapps/billbook-api/pkg/money"

// PartyRequest creates or updates a party.
type PartyRequest struct {
	Name           string      `json:"name"`
	Kind           string      `json:"type"` // "customer" | "supplier"
	GSTIN          string      `json:"gstin"`
	Contact        string      `json:"contact"`
	Address        string      `json:"address"`
	OpeningBalance money.Money `json:"openingBalance"`
}

// PartyResponse is a party with its derived current balance. The json field
// names mirror what the mobile client already consumes.
type PartyResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Kind           string      `json:"type"`
	GSTIN          string      `json:"gstin"`
	Contact        string      `json:"contact"`
	Address        string      `json:"address"`
	OpeningBalance money.Money `json:"openingBalance"`
	CurrentBalance money.Money `json:"currentBalance"`
}
