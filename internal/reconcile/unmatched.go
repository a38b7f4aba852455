package reconcile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// UnmatchedHeader is the column layout of non-reconciled.csv.
var UnmatchedHeader = []string{
	"date", "currency", "amount", "description", "bank",
	"bank_currency", "deducted_amount", "merchant_category", "source_file",
}

// UnmatchedRow is one bank transaction with no diary counterpart, carried
// between reconciliation runs in non-reconciled.csv.
type UnmatchedRow struct {
	Date        time.Time
	Currency    string
	Amount      decimal.Decimal
	Description string
	Bank        string
	BankCur     string
	BankAmount  decimal.Decimal
	Category    string
	SourceFile  string
}

func (r UnmatchedRow) key() string {
	return strings.Join([]string{
		r.Date.Format("2006-01-02"), r.Currency, r.Amount.String(),
		r.Description, r.Bank,
	}, "|")
}

func (r UnmatchedRow) record() []string {
	return []string{
		r.Date.Format("2006-01-02"),
		r.Currency,
		r.Amount.String(),
		r.Description,
		r.Bank,
		r.BankCur,
		r.BankAmount.String(),
		r.Category,
		r.SourceFile,
	}
}

// NewUnmatchedRow builds a carry-over row from a bank-only match result.
func NewUnmatchedRow(txn model.TransactionRecord, source string) UnmatchedRow {
	return UnmatchedRow{
		Date:        txn.Date,
		Currency:    txn.Currency,
		Amount:      txn.Amount,
		Description: txn.Description,
		Bank:        txn.Format,
		BankCur:     txn.BankCurrency,
		BankAmount:  txn.BankAmount,
		Category:    txn.Category,
		SourceFile:  source,
	}
}

// LoadUnmatched reads non-reconciled.csv. Lines starting with # are
// preserved verbatim and returned separately so manually annotated rows
// survive rewrites. A missing file is an empty store.
func LoadUnmatched(path string) ([]UnmatchedRow, []string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var comments []string
	var csvLines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			comments = append(comments, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		csvLines = append(csvLines, line)
	}
	if len(csvLines) == 0 {
		return nil, comments, nil
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(csvLines, "\n")))
	cr.FieldsPerRecord = len(UnmatchedHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rows []UnmatchedRow
	for i, rec := range records {
		if i == 0 && rec[0] == UnmatchedHeader[0] {
			continue
		}
		row, err := unmarshalUnmatched(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, comments, nil
}

func unmarshalUnmatched(rec []string) (UnmatchedRow, error) {
	date, err := time.Parse("2006-01-02", rec[0])
	if err != nil {
		return UnmatchedRow{}, fmt.Errorf("parsing date %q: %w", rec[0], err)
	}
	amount, err := decimal.NewFromString(rec[2])
	if err != nil {
		return UnmatchedRow{}, fmt.Errorf("parsing amount %q: %w", rec[2], err)
	}
	bankAmount := amount
	if rec[6] != "" {
		bankAmount, err = decimal.NewFromString(rec[6])
		if err != nil {
			return UnmatchedRow{}, fmt.Errorf("parsing deducted amount %q: %w", rec[6], err)
		}
	}
	return UnmatchedRow{
		Date:        date,
		Currency:    rec[1],
		Amount:      amount,
		Description: rec[3],
		Bank:        rec[4],
		BankCur:     rec[5],
		BankAmount:  bankAmount,
		Category:    rec[7],
		SourceFile:  rec[8],
	}, nil
}

// MergeUnmatched folds this run's bank-only results into the carried-over
// rows: duplicates collapse, and carried rows that found a diary match in
// this run are dropped.
func MergeUnmatched(existing []UnmatchedRow, report Report, source string) []UnmatchedRow {
	matched := make(map[string]bool, len(report.Matched))
	for _, m := range report.Matched {
		matched[NewUnmatchedRow(*m.Transaction, source).key()] = true
	}

	seen := make(map[string]bool)
	var merged []UnmatchedRow
	add := func(row UnmatchedRow) {
		k := row.key()
		if seen[k] || matched[k] {
			return
		}
		seen[k] = true
		merged = append(merged, row)
	}
	for _, row := range existing {
		add(row)
	}
	for _, m := range report.BankOnly {
		add(NewUnmatchedRow(*m.Transaction, source))
	}
	return merged
}

// WriteUnmatched writes the store sorted by date, then description.
// Preserved comment lines go above the header.
func WriteUnmatched(path string, rows []UnmatchedRow, comments []string) error {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Description < rows[j].Description
	})

	var buf bytes.Buffer
	for _, c := range comments {
		buf.WriteString(c)
		buf.WriteByte('\n')
	}
	w := csv.NewWriter(&buf)
	if err := w.Write(UnmatchedHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
