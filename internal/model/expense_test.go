package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7.10", "7.10"},
		{"7,10", "7.10"},
		{"-50", "-50.00"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{" 15.72 ", "15.72"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "ParseAmount(%q)", tt.in)
		assert.Equal(t, tt.want, got.StringFixed(2), "ParseAmount(%q)", tt.in)
	}

	_, err := ParseAmount("not-a-number")
	assert.Error(t, err)
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("EUR"))
	assert.True(t, ValidCurrency("NOK"))
	assert.False(t, ValidCurrency("eur"))
	assert.False(t, ValidCurrency("EU"))
	assert.False(t, ValidCurrency("ZZZ"))
	assert.False(t, ValidCurrency("The"))
}

func TestExpenseRecordFormatLine(t *testing.T) {
	e := ExpenseRecord{
		Amount:      decimal.RequireFromString("7.1"),
		Currency:    "EUR",
		Category:    "groceries",
		Description: "Lidl (milk, bread)",
	}
	assert.Equal(t, "* EUR 7.10 - groceries - Lidl (milk, bread)", e.FormatLine())

	bare := ExpenseRecord{Amount: decimal.RequireFromString("12"), Currency: "NOK"}
	assert.Equal(t, "* NOK 12.00", bare.FormatLine())
}

func TestLookupWeekday(t *testing.T) {
	wd, ok := LookupWeekday("Monday")
	require.True(t, ok)
	assert.Equal(t, time.Monday, wd)

	wd, ok = LookupWeekday("Lørdag")
	require.True(t, ok)
	assert.Equal(t, time.Saturday, wd)

	_, ok = LookupWeekday("Funday")
	assert.False(t, ok)
}

func TestFormatDayHeader(t *testing.T) {
	d := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC) // a Tuesday
	assert.Equal(t, "## Tuesday 2026-01-20", FormatDayHeader(d))
}

func TestSectionChild(t *testing.T) {
	day := &Section{
		Level: LevelDay,
		Children: []*Section{
			{Level: LevelSubsection, Title: "Expenses"},
			{Level: LevelSubsection, Title: "Notes"},
		},
	}
	require.NotNil(t, day.Child("expenses"))
	assert.Equal(t, "Expenses", day.Child("EXPENSES").Title)
	assert.Nil(t, day.Child("Equipment"))
}
