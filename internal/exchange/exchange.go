// Package exchange holds a static dated table of rates to EUR for the
// currencies that show up in the diary. Rates are deliberately coarse;
// conversion is an opt-in convenience, never part of summarize itself.
package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

type datedRate struct {
	from string // YYYY-MM-DD the rate applies from
	rate string // decimal rate to EUR; "" marks a discontinued currency
}

// Rates to EUR by period; lookup picks the latest entry at or before the
// expense date.
var ratesToEUR = map[string][]datedRate{
	"BGN": {{"2000-01-01", "0.5113"}}, // pegged
	"BAM": {{"2000-01-01", "0.5113"}}, // pegged
	"DKK": {{"2000-01-01", "0.134"}},  // pegged
	"NOK": {
		{"2023-01-01", "0.092"},
		{"2024-01-01", "0.087"},
		{"2025-01-01", "0.082"},
		{"2026-01-01", "0.085"},
	},
	"USD": {
		{"2023-01-01", "0.93"},
		{"2024-01-01", "0.91"},
		{"2025-01-01", "0.96"},
		{"2026-01-01", "0.94"},
	},
	"GBP": {
		{"2023-01-01", "1.13"},
		{"2024-01-01", "1.15"},
		{"2025-01-01", "1.19"},
		{"2026-01-01", "1.16"},
	},
	"TRY": {
		{"2023-01-01", "0.050"},
		{"2023-07-01", "0.037"},
		{"2024-01-01", "0.030"},
		{"2024-07-01", "0.027"},
		{"2025-01-01", "0.026"},
		{"2025-07-01", "0.025"},
		{"2026-01-01", "0.024"},
	},
	"SEK": {
		{"2023-01-01", "0.089"},
		{"2024-01-01", "0.087"},
		{"2025-01-01", "0.086"},
	},
	"PLN": {
		{"2023-01-01", "0.213"},
		{"2024-01-01", "0.230"},
		{"2025-01-01", "0.233"},
	},
	"CHF": {
		{"2023-01-01", "1.00"},
		{"2024-01-01", "1.05"},
		{"2025-01-01", "1.06"},
	},
	"RON": {
		{"2023-01-01", "0.203"},
		{"2024-01-01", "0.201"},
		{"2025-01-01", "0.200"},
	},
	"HRK": {
		{"2020-01-01", "0.132"},
		{"2023-01-01", ""}, // replaced by EUR
	},
	"RSD": {{"2023-01-01", "0.0085"}},
	"ALL": {{"2023-01-01", "0.0093"}},
	"MKD": {{"2023-01-01", "0.0162"}},
}

// Rate returns the rate from currency to EUR applicable on date. The
// second return value is false when the currency is unknown or was
// discontinued before the date.
func Rate(currency string, date time.Time) (decimal.Decimal, bool) {
	if currency == "EUR" {
		return decimal.NewFromInt(1), true
	}
	entries, ok := ratesToEUR[currency]
	if !ok {
		return decimal.Decimal{}, false
	}
	day := date.Format("2006-01-02")
	found := ""
	for _, e := range entries {
		if e.from <= day {
			found = e.rate
		}
	}
	if found == "" {
		return decimal.Decimal{}, false
	}
	return decimal.RequireFromString(found), true
}

// Convert converts amount between two currencies via EUR on the given
// date. Returns false when either leg has no rate.
func Convert(amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, bool) {
	if from == to {
		return amount, true
	}
	fromRate, ok := Rate(from, date)
	if !ok {
		return decimal.Decimal{}, false
	}
	toRate, ok := Rate(to, date)
	if !ok {
		return decimal.Decimal{}, false
	}
	return amount.Mul(fromRate).Div(toRate), true
}
