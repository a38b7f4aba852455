package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// N26Adapter parses N26 CSV exports. N26 has shipped several column
// layouts over the years; the adapter accepts any of the known header
// variants but insists that a date, an amount, and a counterparty column
// exist.
type N26Adapter struct {
	// BankCurrency is the account's settlement currency. Empty means EUR.
	BankCurrency string
}

var (
	n26DateCols   = []string{"Value Date", "Booking Date", "Date"}
	n26AmountCols = []string{"Amount (EUR)", "Amount"}
	n26DescCols   = []string{"Partner Name", "Description", "Payment Reference"}
)

// Format returns the adapter name.
func (a *N26Adapter) Format() string { return "n26" }

// Parse reads an N26 CSV and returns spend transactions (credits are
// skipped). Amounts keep their negative sign.
func (a *N26Adapter) Parse(r io.Reader) ([]model.TransactionRecord, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading n26 CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, &FormatError{Format: "n26", Field: "header", Msg: "empty file"}
	}

	cols := headerColumns(records[0])
	for _, req := range [][]string{n26DateCols, n26AmountCols, n26DescCols} {
		if !cols.anyOf(req...) {
			return nil, nil, &FormatError{Format: "n26", Field: req[0], Msg: "missing column"}
		}
	}

	bankCurrency := a.BankCurrency
	if bankCurrency == "" {
		bankCurrency = "EUR"
	}

	var txns []model.TransactionRecord
	var rowErrs []RowError
	for i, row := range records[1:] {
		line := i + 2

		amountStr := cols.value(row, n26AmountCols...)
		if amountStr == "" {
			continue
		}
		deducted, err := model.ParseAmount(amountStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing amount %q: %w", amountStr, err)})
			continue
		}
		if !deducted.IsNegative() {
			continue // income
		}

		dateStr := cols.value(row, n26DateCols...)
		if dateStr == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("no date value")})
			continue
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing date %q: %w", dateStr, err)})
			continue
		}

		txn := model.TransactionRecord{
			Date:         date,
			Amount:       deducted,
			Currency:     bankCurrency,
			Description:  cols.value(row, n26DescCols...),
			BankCurrency: bankCurrency,
			BankAmount:   deducted,
			Format:       "n26",
			Line:         line,
		}

		// Foreign purchases carry the original amount and currency.
		origAmount := cols.value(row, "Original Amount")
		origCurrency := cols.value(row, "Original Currency")
		if origAmount != "" && origCurrency != "" {
			amount, err := model.ParseAmount(origAmount)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing original amount %q: %w", origAmount, err)})
				continue
			}
			txn.Amount = amount.Abs().Neg()
			txn.Currency = origCurrency
		}

		txns = append(txns, txn)
	}
	return txns, rowErrs, nil
}
