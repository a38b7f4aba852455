package statement

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// BankNorwegianAdapter parses Bank Norwegian XLSX exports. The sheet has a
// fixed column layout: A date, B text, C type, D amount, F currency,
// G deducted NOK amount, H area, I merchant category. Deposits and
// interest rows are skipped.
type BankNorwegianAdapter struct{}

const (
	bnColDate     = 0 // A
	bnColText     = 1 // B
	bnColType     = 2 // C
	bnColAmount   = 3 // D
	bnColCurrency = 5 // F
	bnColDeducted = 6 // G
	bnColArea     = 7 // H
	bnColCategory = 8 // I

	bnNumCols = 9
)

// Excel serial dates count days from this epoch.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Format returns the adapter name.
func (a *BankNorwegianAdapter) Format() string { return "banknorwegian" }

// Parse reads a Bank Norwegian XLSX export.
func (a *BankNorwegianAdapter) Parse(r io.Reader) ([]model.TransactionRecord, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &FormatError{Format: "banknorwegian", Field: "workbook", Msg: err.Error()}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, &FormatError{Format: "banknorwegian", Field: "header", Msg: "empty sheet"}
	}
	if len(rows[0]) < bnNumCols {
		return nil, nil, &FormatError{
			Format: "banknorwegian",
			Field:  "I (merchant category)",
			Msg:    fmt.Sprintf("expected %d columns, sheet has %d", bnNumCols, len(rows[0])),
		}
	}

	var txns []model.TransactionRecord
	var rowErrs []RowError
	for i, row := range rows[1:] {
		line := i + 2

		dateStr := cell(row, bnColDate)
		if dateStr == "" {
			continue
		}
		date, err := parseExcelDate(dateStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		txType := cell(row, bnColType)
		if txType == "Innbetaling" || txType == "Interest" || txType == "Rente" {
			continue
		}

		amountStr := cell(row, bnColAmount)
		if amountStr == "" {
			continue
		}
		amount, err := model.ParseAmount(amountStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing amount %q: %w", amountStr, err)})
			continue
		}
		if !amount.IsNegative() {
			continue
		}

		currency := cell(row, bnColCurrency)
		if currency == "" {
			currency = "NOK"
		}

		deducted := amount
		if s := cell(row, bnColDeducted); s != "" {
			d, err := model.ParseAmount(s)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("parsing deducted amount %q: %w", s, err)})
				continue
			}
			deducted = d.Abs().Neg()
		}

		description := cell(row, bnColText)
		if area := cell(row, bnColArea); area != "" && !strings.Contains(description, area) {
			description = fmt.Sprintf("%s (%s)", description, area)
		}

		category := cell(row, bnColCategory)
		if txType == "Kontantuttak" || strings.Contains(category, "ATM") {
			description = "ATM: " + description
		}

		txns = append(txns, model.TransactionRecord{
			Date:         date,
			Amount:       amount,
			Currency:     currency,
			Description:  description,
			Category:     category,
			BankCurrency: "NOK",
			BankAmount:   deducted,
			Format:       "banknorwegian",
			Line:         line,
		})
	}
	return txns, rowErrs, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseExcelDate accepts an Excel serial number or a plain date string.
func parseExcelDate(s string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		d := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
