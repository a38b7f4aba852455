// Package reconcile pairs diary expense records with bank statement
// transactions. Matching is pure: it never mutates the diary. Write-back
// of reconciliation markers is a separate, explicit step.
package reconcile

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Marker is the reconciliation tag appended to a matched expense line:
//
//	(reconciled: n26 - 2026-01-20 - EUR:7.10)
//	(reconciled: wise - 2026-01-20 - NOK:120.00/EUR:11.25)
//
// The second form carries the bank-side deduction when the purchase
// currency differs from the account currency.
type Marker struct {
	Bank         string
	Date         time.Time
	Currency     string
	Amount       decimal.Decimal
	BankCurrency string
	BankAmount   decimal.Decimal
}

var markerRe = regexp.MustCompile(
	`\(reconciled:\s*(\S+)\s*-\s*(\d{4}-\d{2}-\d{2})\s*-\s*([A-Z]{3}):(\d+(?:\.\d+)?)(?:/([A-Z]{3}):(\d+(?:\.\d+)?))?\)`)

// Format renders the marker in its canonical form.
func (m Marker) Format() string {
	s := fmt.Sprintf("(reconciled: %s - %s - %s:%s",
		m.Bank, m.Date.Format("2006-01-02"), m.Currency, m.Amount.StringFixed(2))
	if m.BankCurrency != "" && m.BankCurrency != m.Currency {
		s += fmt.Sprintf("/%s:%s", m.BankCurrency, m.BankAmount.StringFixed(2))
	}
	return s + ")"
}

// ParseMarker extracts a reconciliation marker from a line, if present.
func ParseMarker(line string) (Marker, bool) {
	groups := markerRe.FindStringSubmatch(line)
	if groups == nil {
		return Marker{}, false
	}
	date, err := time.Parse("2006-01-02", groups[2])
	if err != nil {
		return Marker{}, false
	}
	amount, err := decimal.NewFromString(groups[4])
	if err != nil {
		return Marker{}, false
	}
	m := Marker{
		Bank:     groups[1],
		Date:     date,
		Currency: groups[3],
		Amount:   amount,
	}
	if groups[5] != "" {
		bankAmount, err := decimal.NewFromString(groups[6])
		if err != nil {
			return Marker{}, false
		}
		m.BankCurrency = groups[5]
		m.BankAmount = bankAmount
	}
	return m, true
}
