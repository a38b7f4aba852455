package diary

import "github.com/diarymd-dev/diarymd/internal/model"

// DefaultExpenseSection is the subsection title expenses live under.
const DefaultExpenseSection = "Expenses"

// ExtractExpenses collects expense records from every day section's
// expense-bearing subsection, matched case-insensitively. Records inherit
// the day's date. Unrecognized body lines are skipped, never an error.
func ExtractExpenses(d *model.Diary, sectionTitle string) []model.ExpenseRecord {
	if sectionTitle == "" {
		sectionTitle = DefaultExpenseSection
	}

	var records []model.ExpenseRecord
	for _, day := range d.Days() {
		sub := day.Child(sectionTitle)
		if sub == nil {
			continue
		}
		for i, line := range sub.Body {
			rec, ok := ParseExpenseLine(line)
			if !ok {
				continue
			}
			rec.Date = day.Date
			rec.File = d.File
			rec.Line = sub.Line + 1 + i
			records = append(records, rec)
		}
	}
	return records
}
