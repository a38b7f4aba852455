package reconcile

import (
	"time"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// Options controls matching.
type Options struct {
	// ToleranceDays is the maximum |diary date - bank date| for a pair.
	// Zero means same-day only.
	ToleranceDays int
}

// Report is the outcome of one matching run.
type Report struct {
	Matched   []model.MatchResult
	DiaryOnly []model.MatchResult
	BankOnly  []model.MatchResult
}

// Match pairs expenses with transactions one-to-one. A pair requires the
// same currency, equal absolute amounts, and a date difference within
// tolerance. Transactions are processed in statement order; each takes
// the candidate with the smallest date difference, and among equally
// close candidates the earliest-appearing diary record. Expenses already
// carrying a reconciliation marker or tagged (cash) never participate.
func Match(expenses []model.ExpenseRecord, txns []model.TransactionRecord, opts Options) Report {
	var report Report

	claimed := make([]bool, len(expenses))
	eligible := make([]bool, len(expenses))
	for i := range expenses {
		eligible[i] = expenses[i].Marker == "" && !expenses[i].Cash
	}

	for ti := range txns {
		txn := &txns[ti]
		spent := txn.Amount.Abs()

		best := -1
		bestDiff := 0
		for ei := range expenses {
			if claimed[ei] || !eligible[ei] {
				continue
			}
			exp := &expenses[ei]
			if exp.Currency != txn.Currency || !exp.Amount.Abs().Equal(spent) {
				continue
			}
			diff := daysBetween(exp.Date, txn.Date)
			if diff > opts.ToleranceDays {
				continue
			}
			if best == -1 || diff < bestDiff {
				best, bestDiff = ei, diff
			}
		}

		if best == -1 {
			report.BankOnly = append(report.BankOnly, model.MatchResult{
				Transaction: txn,
				State:       model.StateBankOnly,
			})
			continue
		}
		claimed[best] = true
		report.Matched = append(report.Matched, model.MatchResult{
			Expense:     &expenses[best],
			Transaction: txn,
			State:       model.StateMatched,
			DateDiff:    bestDiff,
		})
	}

	for ei := range expenses {
		if !eligible[ei] || claimed[ei] {
			continue
		}
		report.DiaryOnly = append(report.DiaryOnly, model.MatchResult{
			Expense: &expenses[ei],
			State:   model.StateDiaryOnly,
		})
	}
	return report
}

// daysBetween returns |a - b| in whole days, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(ad.Sub(bd).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
