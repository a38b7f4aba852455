package reconcile

import (
	"fmt"
	"os"
	"strings"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// FileChange is the before/after content of one diary file.
type FileChange struct {
	Before []byte
	After  []byte
}

// ApplyMarkers computes the diary edits for a set of matched pairs:
// each matched expense line gets the reconciliation marker appended.
// Nothing is written; the caller inspects or persists the changes.
func ApplyMarkers(matched []model.MatchResult) (map[string]FileChange, error) {
	byFile := make(map[string][]model.MatchResult)
	for _, m := range matched {
		if m.State != model.StateMatched || m.Expense == nil || m.Transaction == nil {
			continue
		}
		byFile[m.Expense.File] = append(byFile[m.Expense.File], m)
	}

	changes := make(map[string]FileChange, len(byFile))
	for file, results := range byFile {
		before, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		lines := strings.Split(string(before), "\n")

		for _, m := range results {
			idx := m.Expense.Line - 1
			if idx < 0 || idx >= len(lines) {
				return nil, fmt.Errorf("%s:%d: expense line out of range", file, m.Expense.Line)
			}
			// Refuse to annotate a line that moved since parsing.
			if strings.TrimSpace(lines[idx]) != strings.TrimSpace(m.Expense.Raw) {
				return nil, fmt.Errorf("%s:%d: line changed since parsing, re-run reconcile", file, m.Expense.Line)
			}
			lines[idx] = strings.TrimRight(lines[idx], " ") + " " + markerFor(m).Format()
		}
		changes[file] = FileChange{Before: before, After: []byte(strings.Join(lines, "\n"))}
	}
	return changes, nil
}

// WriteChanges persists the computed edits.
func WriteChanges(changes map[string]FileChange) error {
	for file, change := range changes {
		if err := os.WriteFile(file, change.After, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func markerFor(m model.MatchResult) Marker {
	txn := m.Transaction
	return Marker{
		Bank:         txn.Format,
		Date:         txn.Date,
		Currency:     txn.Currency,
		Amount:       txn.Amount.Abs(),
		BankCurrency: txn.BankCurrency,
		BankAmount:   txn.BankAmount.Abs(),
	}
}
