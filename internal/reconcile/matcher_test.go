package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarymd-dev/diarymd/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func expense(date, currency, amount, description string) model.ExpenseRecord {
	return model.ExpenseRecord{
		Date:        day(date),
		Currency:    currency,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
	}
}

func transaction(date, currency, amount, description string) model.TransactionRecord {
	return model.TransactionRecord{
		Date:        day(date),
		Currency:    currency,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Format:      "n26",
	}
}

func TestMatchSameDay(t *testing.T) {
	expenses := []model.ExpenseRecord{
		expense("2026-01-20", "EUR", "7.10", "Lidl"),
		expense("2026-01-20", "EUR", "5.00", "bakery"),
	}
	txns := []model.TransactionRecord{
		transaction("2026-01-20", "EUR", "-7.10", "LIDL OSLO"),
	}

	report := Match(expenses, txns, Options{})
	require.Len(t, report.Matched, 1)
	assert.Equal(t, "Lidl", report.Matched[0].Expense.Description)
	assert.Equal(t, 0, report.Matched[0].DateDiff)
	require.Len(t, report.DiaryOnly, 1)
	assert.Equal(t, "bakery", report.DiaryOnly[0].Expense.Description)
	assert.Empty(t, report.BankOnly)
}

func TestMatchToleranceWindow(t *testing.T) {
	expenses := []model.ExpenseRecord{expense("2026-01-20", "EUR", "7.10", "Lidl")}
	txns := []model.TransactionRecord{transaction("2026-01-21", "EUR", "-7.10", "LIDL")}

	strict := Match(expenses, txns, Options{ToleranceDays: 0})
	assert.Empty(t, strict.Matched)
	assert.Len(t, strict.DiaryOnly, 1)
	assert.Len(t, strict.BankOnly, 1)

	loose := Match(expenses, txns, Options{ToleranceDays: 1})
	require.Len(t, loose.Matched, 1)
	assert.Equal(t, 1, loose.Matched[0].DateDiff)
	assert.Empty(t, loose.DiaryOnly)
	assert.Empty(t, loose.BankOnly)
}

func TestMatchPrefersCloserDate(t *testing.T) {
	expenses := []model.ExpenseRecord{
		expense("2026-01-19", "EUR", "5.00", "far"),
		expense("2026-01-20", "EUR", "5.00", "near"),
	}
	txns := []model.TransactionRecord{transaction("2026-01-20", "EUR", "-5.00", "CAFE")}

	report := Match(expenses, txns, Options{ToleranceDays: 1})
	require.Len(t, report.Matched, 1)
	assert.Equal(t, "near", report.Matched[0].Expense.Description)
}

func TestMatchTieTakesEarliestDiaryRecord(t *testing.T) {
	expenses := []model.ExpenseRecord{
		expense("2026-01-20", "EUR", "5.00", "first"),
		expense("2026-01-20", "EUR", "5.00", "second"),
	}
	txns := []model.TransactionRecord{transaction("2026-01-20", "EUR", "-5.00", "CAFE")}

	report := Match(expenses, txns, Options{})
	require.Len(t, report.Matched, 1)
	assert.Equal(t, "first", report.Matched[0].Expense.Description)
	require.Len(t, report.DiaryOnly, 1)
	assert.Equal(t, "second", report.DiaryOnly[0].Expense.Description)
}

func TestMatchIsOneToOne(t *testing.T) {
	expenses := []model.ExpenseRecord{expense("2026-01-20", "EUR", "5.00", "coffee")}
	txns := []model.TransactionRecord{
		transaction("2026-01-20", "EUR", "-5.00", "CAFE A"),
		transaction("2026-01-20", "EUR", "-5.00", "CAFE B"),
	}

	report := Match(expenses, txns, Options{})
	require.Len(t, report.Matched, 1)
	assert.Equal(t, "CAFE A", report.Matched[0].Transaction.Description)
	require.Len(t, report.BankOnly, 1)
	assert.Equal(t, "CAFE B", report.BankOnly[0].Transaction.Description)
}

func TestMatchRequiresSameCurrency(t *testing.T) {
	expenses := []model.ExpenseRecord{expense("2026-01-20", "NOK", "120", "harbour")}
	txns := []model.TransactionRecord{transaction("2026-01-20", "EUR", "-120", "HARBOUR")}

	report := Match(expenses, txns, Options{})
	assert.Empty(t, report.Matched)
}

func TestMatchSkipsReconciledAndCashRecords(t *testing.T) {
	marked := expense("2026-01-20", "EUR", "5.00", "already done")
	marked.Marker = "(reconciled: n26 - 2026-01-20 - EUR:5.00)"
	cash := expense("2026-01-20", "EUR", "5.00", "paid cash")
	cash.Cash = true

	expenses := []model.ExpenseRecord{marked, cash}
	txns := []model.TransactionRecord{transaction("2026-01-20", "EUR", "-5.00", "CAFE")}

	report := Match(expenses, txns, Options{})
	assert.Empty(t, report.Matched)
	assert.Empty(t, report.DiaryOnly, "excluded records are not reported as missing")
	assert.Len(t, report.BankOnly, 1)
}

func TestMatchProcessesTransactionsInStatementOrder(t *testing.T) {
	expenses := []model.ExpenseRecord{
		expense("2026-01-20", "EUR", "5.00", "only one"),
	}
	txns := []model.TransactionRecord{
		transaction("2026-01-21", "EUR", "-5.00", "LATER BUT FIRST"),
		transaction("2026-01-20", "EUR", "-5.00", "EXACT BUT SECOND"),
	}

	report := Match(expenses, txns, Options{ToleranceDays: 1})
	require.Len(t, report.Matched, 1)
	assert.Equal(t, "LATER BUT FIRST", report.Matched[0].Transaction.Description)
}

func TestRenderReport(t *testing.T) {
	expenses := []model.ExpenseRecord{
		expense("2026-01-20", "EUR", "7.10", "Lidl"),
		expense("2026-01-21", "EUR", "9.99", "chandlery"),
	}
	txns := []model.TransactionRecord{
		transaction("2026-01-20", "EUR", "-7.10", "LIDL OSLO"),
		transaction("2026-01-22", "NOK", "-250", "VINMONOPOLET"),
	}

	out := RenderReport(Match(expenses, txns, Options{}))
	assert.Contains(t, out, "1 matched, 1 diary-only, 1 bank-only")
	assert.Contains(t, out, "LIDL OSLO")
	assert.Contains(t, out, "chandlery")
	assert.Contains(t, out, "VINMONOPOLET")
}
