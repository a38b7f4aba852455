package statement

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// RememberAdapter parses Remember credit card JSON exports: a document
// with a "transactions" array. Fee rows, deposits, and duplicate
// transaction IDs are skipped.
type RememberAdapter struct{}

type rememberExport struct {
	Transactions []rememberTx `json:"transactions"`
}

type rememberTx struct {
	ID                  json.Number `json:"id"`
	TransactionAmount   json.Number `json:"transactionAmount"`
	BillingAmount       json.Number `json:"billingAmount"`
	TransactionDate     string      `json:"transactionDate"`
	TransactionCurrency string      `json:"transactionCurrency"`
	BillingCurrency     string      `json:"billingCurrency"`
	Description         string      `json:"description"`
	City                string      `json:"city"`
	ReasonCode          string      `json:"reasonCode"`
}

// Format returns the adapter name.
func (a *RememberAdapter) Format() string { return "remember" }

// Parse reads a Remember JSON export.
func (a *RememberAdapter) Parse(r io.Reader) ([]model.TransactionRecord, []RowError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading remember export: %w", err)
	}

	var export rememberExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, nil, &FormatError{Format: "remember", Field: "transactions", Msg: err.Error()}
	}
	if export.Transactions == nil {
		return nil, nil, &FormatError{Format: "remember", Field: "transactions", Msg: "missing transactions array"}
	}

	seen := make(map[string]bool)
	var txns []model.TransactionRecord
	var rowErrs []RowError
	for i, tx := range export.Transactions {
		num := i + 1

		if id := tx.ID.String(); id != "" && id != "0" {
			if seen[id] {
				continue
			}
			seen[id] = true
		}

		amount, err := parseNumber(tx.TransactionAmount)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: num, Err: fmt.Errorf("parsing transactionAmount: %w", err)})
			continue
		}
		if !amount.IsNegative() {
			continue
		}

		if tx.TransactionDate == "" {
			rowErrs = append(rowErrs, RowError{Line: num, Err: fmt.Errorf("missing transactionDate")})
			continue
		}
		dateStr := tx.TransactionDate
		if len(dateStr) > 10 {
			dateStr = dateStr[:10]
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: num, Err: fmt.Errorf("parsing transactionDate %q: %w", tx.TransactionDate, err)})
			continue
		}

		description := strings.TrimSpace(tx.Description)
		lower := strings.ToLower(description)

		// Currency markup fees are bank noise, not expenses.
		if tx.ReasonCode == "fee" || strings.Contains(lower, "valutapaaslag") {
			continue
		}

		if city := strings.TrimSpace(tx.City); city != "" && !strings.Contains(strings.ToUpper(description), strings.ToUpper(city)) {
			description = fmt.Sprintf("%s (%s)", description, city)
		}

		isATM := tx.ReasonCode == "CASH" || strings.Contains(lower, "kontantuttak")
		if isATM && !strings.HasPrefix(description, "ATM:") {
			description = "ATM: " + description
		}

		currency := tx.TransactionCurrency
		if currency == "" {
			currency = "NOK"
		}
		billingCurrency := tx.BillingCurrency
		if billingCurrency == "" {
			billingCurrency = "NOK"
		}

		billing := amount
		if tx.BillingAmount.String() != "" {
			if b, err := parseNumber(tx.BillingAmount); err == nil && !b.IsZero() {
				billing = b.Abs().Neg()
			}
		}

		txns = append(txns, model.TransactionRecord{
			Date:         date,
			Amount:       amount,
			Currency:     currency,
			Description:  description,
			BankCurrency: billingCurrency,
			BankAmount:   billing,
			Format:       "remember",
			Line:         num,
		})
	}
	return txns, rowErrs, nil
}

func parseNumber(n json.Number) (decimal.Decimal, error) {
	if n.String() == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
