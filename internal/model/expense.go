package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ExpenseRecord is one expense line extracted from a diary, immutable once
// built. Date is inherited from the enclosing day section.
type ExpenseRecord struct {
	Date        time.Time
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Description string
	File        string
	Line        int    // 1-based line in the source file
	Raw         string // original line, verbatim
	Marker      string // existing "(reconciled: ...)" annotation, if any
	Cash        bool   // carries a "(cash)" tag
}

// FormatLine renders the record as a diary expense line.
// "* EUR 7.10 - groceries - Lidl (milk, bread)"
func (e ExpenseRecord) FormatLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, "* %s %s", e.Currency, e.Amount.StringFixed(2))
	if e.Category != "" {
		b.WriteString(" - " + e.Category)
	}
	if e.Description != "" {
		b.WriteString(" - " + e.Description)
	}
	if e.Marker != "" {
		b.WriteString(" " + e.Marker)
	}
	return b.String()
}

// ValidCurrency reports whether code is a known 3-letter ISO 4217 code.
func ValidCurrency(code string) bool {
	if len(code) != 3 || code != strings.ToUpper(code) {
		return false
	}
	return money.GetCurrency(code) != nil
}

// ParseAmount parses a decimal amount tolerating either dot or comma as
// the decimal separator (and the other as a thousands separator).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	dot := strings.LastIndexByte(s, '.')
	comma := strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		// "1.234,56" -> comma is the decimal separator
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		// "1,234.56"
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
