package diary

import (
	"regexp"
	"strings"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// LineKind classifies one body line. Classification never fails;
// unrecognized input is prose.
type LineKind int

const (
	LineBlank LineKind = iota
	LineProse
	LineExpense
	LineTracker
)

var (
	// "* EUR 7.10 - groceries - Lidl (milk, bread)"; bullet, category and
	// description are optional, amount accepts comma or dot.
	expenseRe = regexp.MustCompile(`^(?:[*-]\s+)?([A-Z]{3})\s+(-?\d+(?:[.,]\d+)?)(?:\s+-\s+(.+))?$`)

	// auto-generated tracker lines: "14:32 - 59.9139,10.7522 moored"
	trackerRe = regexp.MustCompile(`^(?:[*-]\s+)?\d{2}:\d{2}(?::\d{2})?\s+-\s+`)

	reconciledRe  = regexp.MustCompile(`\s*\(reconciled:[^)]*\)`)
	splitMarkerRe = regexp.MustCompile(`\s*\(\w+\s*-\s*\d{4}-\d{2}-\d{2}\s*-\s*\w+:\d+(?:\.\d+)?/\d+\)`)
	cashRe        = regexp.MustCompile(`(?i)\(cash\)`)
)

// Classify tags a single body line.
func Classify(line string) LineKind {
	s := strings.TrimSpace(line)
	if s == "" {
		return LineBlank
	}
	if _, ok := ParseExpenseLine(s); ok {
		return LineExpense
	}
	if trackerRe.MatchString(s) {
		return LineTracker
	}
	return LineProse
}

// ParseExpenseLine extracts an expense record from one line. The date is
// left zero; the extractor fills it from the enclosing day section. Returns
// false for anything that is not unambiguously an expense line, including
// prose that merely starts with a currency-looking token.
func ParseExpenseLine(line string) (model.ExpenseRecord, bool) {
	s := strings.TrimSpace(line)
	m := expenseRe.FindStringSubmatch(s)
	if m == nil {
		return model.ExpenseRecord{}, false
	}
	if !model.ValidCurrency(m[1]) {
		return model.ExpenseRecord{}, false
	}
	amount, err := model.ParseAmount(m[2])
	if err != nil {
		return model.ExpenseRecord{}, false
	}

	rec := model.ExpenseRecord{
		Amount:   amount,
		Currency: m[1],
		Raw:      line,
	}

	rest := m[3]
	if loc := reconciledRe.FindString(rest); loc != "" {
		rec.Marker = strings.TrimSpace(loc)
		rest = strings.Replace(rest, loc, "", 1)
	} else if loc := splitMarkerRe.FindString(rest); loc != "" {
		rec.Marker = strings.TrimSpace(loc)
		rest = strings.Replace(rest, loc, "", 1)
	}
	rec.Cash = cashRe.MatchString(rest)

	if rest != "" {
		parts := strings.SplitN(rest, " - ", 2)
		rec.Category = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			rec.Description = strings.TrimSpace(parts[1])
		}
	}
	return rec, true
}
