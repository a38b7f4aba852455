package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// WiseAdapter parses Wise (TransferWise) CSV exports. Only COMPLETED,
// outgoing transfers become transactions; the target amount/currency is
// preferred over the source side when present.
type WiseAdapter struct {
	// DefaultCurrency is used when a row has no source currency. Empty
	// means EUR.
	DefaultCurrency string
}

var wiseRequiredCols = []string{
	"Status",
	"Direction",
	"Source amount (after fees)",
	"Source currency",
}

// Format returns the adapter name.
func (a *WiseAdapter) Format() string { return "wise" }

// Parse reads a Wise CSV. Amounts are normalized to negative (spend).
func (a *WiseAdapter) Parse(r io.Reader) ([]model.TransactionRecord, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading wise CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, &FormatError{Format: "wise", Field: "header", Msg: "empty file"}
	}

	cols := headerColumns(records[0])
	for _, req := range wiseRequiredCols {
		if !cols.anyOf(req) {
			return nil, nil, &FormatError{Format: "wise", Field: req, Msg: "missing column"}
		}
	}

	defaultCurrency := a.DefaultCurrency
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}

	var txns []model.TransactionRecord
	var rowErrs []RowError
	for i, row := range records[1:] {
		line := i + 2

		if cols.value(row, "Status") != "COMPLETED" {
			continue
		}
		if cols.value(row, "Direction") != "OUT" {
			continue
		}

		dateStr := cols.value(row, "Finished on", "Created on")
		if dateStr == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("no date value")})
			continue
		}
		// "2026-01-20 14:03:22" -> keep the date part.
		date, err := time.Parse("2006-01-02", strings.Fields(dateStr)[0])
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing date %q: %w", dateStr, err)})
			continue
		}

		sourceCurrency := cols.value(row, "Source currency")
		if sourceCurrency == "" {
			sourceCurrency = defaultCurrency
		}
		sourceStr := cols.value(row, "Source amount (after fees)")
		if sourceStr == "" {
			continue
		}
		sourceAmount, err := model.ParseAmount(sourceStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing source amount %q: %w", sourceStr, err)})
			continue
		}

		amount := sourceAmount.Abs().Neg()
		currency := sourceCurrency

		targetStr := cols.value(row, "Target amount (after fees)")
		targetCurrency := cols.value(row, "Target currency")
		if targetStr != "" && targetCurrency != "" {
			targetAmount, err := model.ParseAmount(targetStr)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing target amount %q: %w", targetStr, err)})
				continue
			}
			amount = targetAmount.Abs().Neg()
			currency = targetCurrency
		}

		description := cols.value(row, "Target name")
		if note := cols.value(row, "Note"); note != "" {
			if description != "" {
				description = fmt.Sprintf("%s (%s)", description, note)
			} else {
				description = note
			}
		}

		txns = append(txns, model.TransactionRecord{
			Date:         date,
			Amount:       amount,
			Currency:     currency,
			Description:  description,
			BankCurrency: sourceCurrency,
			BankAmount:   sourceAmount.Abs().Neg(),
			Format:       "wise",
			Line:         line,
		})
	}
	return txns, rowErrs, nil
}
