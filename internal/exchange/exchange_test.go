package exchange

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestRate_PicksMostRecentEntry(t *testing.T) {
	r, ok := Rate("NOK", at(2026, 6, 1))
	require.True(t, ok)
	assert.Equal(t, "0.085", r.String())

	r, ok = Rate("NOK", at(2023, 6, 1))
	require.True(t, ok)
	assert.Equal(t, "0.092", r.String())
}

func TestRate_EURIsIdentity(t *testing.T) {
	r, ok := Rate("EUR", at(2026, 1, 1))
	require.True(t, ok)
	assert.True(t, r.Equal(decimal.NewFromInt(1)))
}

func TestRate_UnknownCurrency(t *testing.T) {
	_, ok := Rate("XXX", at(2026, 1, 1))
	assert.False(t, ok)
}

func TestRate_DiscontinuedCurrency(t *testing.T) {
	_, ok := Rate("HRK", at(2024, 1, 1))
	assert.False(t, ok)

	r, ok := Rate("HRK", at(2021, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "0.132", r.String())
}

func TestRate_BeforeFirstEntry(t *testing.T) {
	_, ok := Rate("NOK", at(2020, 1, 1))
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	got, ok := Convert(decimal.RequireFromString("100"), "NOK", "EUR", at(2026, 1, 10))
	require.True(t, ok)
	assert.Equal(t, "8.50", got.StringFixed(2))

	same, ok := Convert(decimal.RequireFromString("7.10"), "EUR", "EUR", at(2026, 1, 10))
	require.True(t, ok)
	assert.Equal(t, "7.10", same.StringFixed(2))

	_, ok = Convert(decimal.RequireFromString("5"), "XXX", "EUR", at(2026, 1, 10))
	assert.False(t, ok)
}
