// Package tally exports ledger statements as Tally import XML (the
// ENVELOPE/IMPORTDATA/TALLYMESSAGE vocabulary Tally Prime accepts under
// Gateway of Tally > Import Data > Vouchers).
package tally

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/application/statement"
	"github.com/ssilapps/billbook-api/internal/domain/ledger"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// Voucher types understood by Tally for the four entry shapes.
const (
	voucherSales    = "Sales"
	voucherPurchase = "Purchase"
	voucherReceipt  = "Receipt"
	voucherPayment  = "Payment"
)

var _ statement.TallyExporter = (*Exporter)(nil)

// Exporter implements statement.TallyExporter with etree.
type Exporter struct {
	companyLedger string // counter-ledger name used for the second leg
}

// NewExporter builds the exporter. The company ledger names the account the
// party leg balances against; Tally requires both legs.
func NewExporter(companyLedger string) *Exporter {
	if companyLedger == "" {
		companyLedger = "Sales Account"
	}
	return &Exporter{companyLedger: companyLedger}
}

// ExportStatement renders every statement entry as one voucher.
func (e *Exporter) ExportStatement(st *dto.StatementResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("ENVELOPE")
	header := envelope.CreateElement("HEADER")
	header.CreateElement("TALLYREQUEST").SetText("Import Data")

	body := envelope.CreateElement("BODY")
	importData := body.CreateElement("IMPORTDATA")
	reqDesc := importData.CreateElement("REQUESTDESC")
	reqDesc.CreateElement("REPORTNAME").SetText("Vouchers")
	reqData := importData.CreateElement("REQUESTDATA")

	partyLedger := st.PartyName
	if partyLedger == "" {
		partyLedger = "Sundry Debtors"
	}

	for _, entry := range st.Entries {
		e.addVoucher(reqData, partyLedger, entry)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func (e *Exporter) addVoucher(parent *etree.Element, partyLedger string, entry dto.LedgerEntryResponse) {
	amount := entry.Debit
	partyIsDebit := true
	if amount.IsZero() {
		amount = entry.Credit
		partyIsDebit = false
	}

	msg := parent.CreateElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")

	voucher := msg.CreateElement("VOUCHER")
	vchType := voucherType(entry, partyIsDebit)
	voucher.CreateAttr("VCHTYPE", vchType)
	voucher.CreateAttr("ACTION", "Create")

	voucher.CreateElement("DATE").SetText(tallyDate(entry.Date))
	voucher.CreateElement("VOUCHERTYPENAME").SetText(vchType)
	voucher.CreateElement("NARRATION").SetText(entry.Description)
	voucher.CreateElement("PARTYLEDGERNAME").SetText(partyLedger)

	// Tally signs amounts from the ledger's point of view: debits negative.
	addLedgerEntry(voucher, partyLedger, amount, partyIsDebit)
	addLedgerEntry(voucher, e.companyLedger, amount, !partyIsDebit)
}

func addLedgerEntry(voucher *etree.Element, ledger string, amount money.Money, isDebit bool) {
	le := voucher.CreateElement("ALLLEDGERENTRIES.LIST")
	le.CreateElement("LEDGERNAME").SetText(ledger)
	if isDebit {
		le.CreateElement("ISDEEMEDPOSITIVE").SetText("Yes")
		le.CreateElement("AMOUNT").SetText(amount.Neg().String())
	} else {
		le.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
		le.CreateElement("AMOUNT").SetText(amount.String())
	}
}

func voucherType(entry dto.LedgerEntryResponse, partyIsDebit bool) string {
	if entry.SourceKind == ledger.SourceInvoice {
		if partyIsDebit {
			return voucherSales
		}
		return voucherPurchase
	}
	if partyIsDebit {
		return voucherPayment
	}
	return voucherReceipt
}

// tallyDate converts YYYY-MM-DD to Tally's YYYYMMDD.
func tallyDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}
