package statement

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildBNWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func bnHeader() []interface{} {
	return []interface{}{
		"TransactionDate", "Text", "Type", "Amount", "Balance",
		"Currency", "CurrencyAmount", "Area", "MerchantCategory",
	}
}

func TestBankNorwegianParsesSpendRows(t *testing.T) {
	buf := buildBNWorkbook(t, [][]interface{}{
		bnHeader(),
		{"2026-01-20", "REMA 1000 OSLO", "Varekjøp", "-129.00", "", "NOK", "-129.00", "Oslo", "Grocery Stores"},
		{"2026-01-21", "CAFE LISBOA", "Varekjøp", "-10.00", "", "EUR", "-98.50", "Lisboa", "Restaurants"},
		{"2026-01-22", "Innbetaling", "Innbetaling", "1000.00", "", "NOK", "1000.00", "", ""},
	})

	adapter := &BankNorwegianAdapter{}
	txns, rowErrs, err := adapter.Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, txns, 2)

	rema := txns[0]
	assert.Equal(t, "NOK", rema.Currency)
	assert.Equal(t, "-129", rema.Amount.String())
	assert.Equal(t, "REMA 1000 OSLO (Oslo)", rema.Description)
	assert.Equal(t, "Grocery Stores", rema.Category)
	assert.Equal(t, "2026-01-20", rema.Date.Format("2006-01-02"))

	cafe := txns[1]
	assert.Equal(t, "EUR", cafe.Currency)
	assert.Equal(t, "-10", cafe.Amount.String())
	assert.Equal(t, "NOK", cafe.BankCurrency)
	assert.Equal(t, "-98.5", cafe.BankAmount.String())
}

func TestBankNorwegianATMPrefix(t *testing.T) {
	buf := buildBNWorkbook(t, [][]interface{}{
		bnHeader(),
		{"2026-01-20", "MINIBANK STORGATA", "Kontantuttak", "-1000.00", "", "NOK", "-1000.00", "Oslo", "Financial Institutions"},
	})

	adapter := &BankNorwegianAdapter{}
	txns, _, err := adapter.Parse(buf)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "ATM: MINIBANK STORGATA (Oslo)", txns[0].Description)
}

func TestBankNorwegianSerialDates(t *testing.T) {
	// Serial 46042 is 2026-01-20 counted from the 1899-12-30 epoch.
	buf := buildBNWorkbook(t, [][]interface{}{
		bnHeader(),
		{"46042", "BAKERY", "Varekjøp", "-35.00", "", "NOK", "-35.00", "", "Bakeries"},
	})

	adapter := &BankNorwegianAdapter{}
	txns, _, err := adapter.Parse(buf)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "2026-01-20", txns[0].Date.Format("2006-01-02"))
}

func TestBankNorwegianNarrowSheetFails(t *testing.T) {
	buf := buildBNWorkbook(t, [][]interface{}{
		{"TransactionDate", "Text", "Type", "Amount"},
		{"2026-01-20", "REMA", "Varekjøp", "-129.00"},
	})

	adapter := &BankNorwegianAdapter{}
	_, _, err := adapter.Parse(buf)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "banknorwegian", formatErr.Format)
	assert.Equal(t, "I (merchant category)", formatErr.Field)
}

func TestBankNorwegianNotAWorkbook(t *testing.T) {
	adapter := &BankNorwegianAdapter{}
	_, _, err := adapter.Parse(bytes.NewReader([]byte("date,text\n2026-01-20,x\n")))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "workbook", formatErr.Field)
}
