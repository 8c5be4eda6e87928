// Package format renders monetary amounts for documents shown to users,
// using the Indian digit grouping (1,23,45,678) that invoices and
// statements are expected to carry.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ssilapps/billbook-api/pkg/money"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// INR renders an amount as "₹1,23,456.78". Negative amounts carry the sign
// after the currency mark ("₹-6,000.00").
func INR(m money.Money) string {
	return "₹" + Amount(m)
}

// Amount renders the bare grouped figure without the currency mark, always
// with two decimal places.
func Amount(m money.Money) string {
	d := m.Decimal().Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	units := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(100)).IntPart()
	return fmt.Sprintf("%s%v.%02d", sign, enIN.Sprint(number.Decimal(units)), paise)
}
