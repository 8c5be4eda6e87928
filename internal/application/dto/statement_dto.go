package dto

import "github.com/ssilapps/billbook-api/pkg/money"

// StatementRequest filters a ledger statement. Empty PartyID means all
// parties; empty dates mean an open-ended range.
type StatementRequest struct {
	PartyID string `query:"partyId"`
	From    string `query:"from"` // YYYY-MM-DD inclusive
	To      string `query:"to"`   // YYYY-MM-DD inclusive
	Format  string `query:"format"` // json (default) | csv | pdf | tally
}

// LedgerEntryResponse is one statement row.
type LedgerEntryResponse struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Debit       money.Money `json:"debit"`
	Credit      money.Money `json:"credit"`
	Running     money.Money `json:"runningBalance"`
	SourceKind  string      `json:"sourceKind"` // "invoice" | "payment"
	SourceRef   string      `json:"sourceRef"`
}

// StatementResponse is the full ledger with its totals row.
type StatementResponse struct {
	PartyID      string                `json:"partyId,omitempty"`
	PartyName    string                `json:"partyName,omitempty"`
	Entries      []LedgerEntryResponse `json:"entries"`
	TotalDebit   money.Money           `json:"totalDebit"`
	TotalCredit  money.Money           `json:"totalCredit"`
	Closing      money.Money           `json:"closingBalance"`
	ClosingLabel string                `json:"closingLabel"` // Receivable | Payable | Settled
}
