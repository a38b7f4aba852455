// Package digest aggregates extracted diary content: per-currency expense
// totals and arbitrary subsection extraction. Empty results are valid
// outcomes, never errors.
package digest

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// Summary holds per-currency totals with per-category subtotals.
type Summary struct {
	Totals     map[string]decimal.Decimal            // currency -> total
	ByCategory map[string]map[string]decimal.Decimal // currency -> category -> total
	Count      int
}

// Excerpt is one day's body for a selected subsection.
type Excerpt struct {
	Date      time.Time
	Weekday   string
	Itinerary string
	Title     string
	Body      []string
}

// InRange reports whether date falls inside the inclusive [from, to] range.
// Zero bounds are unbounded.
func InRange(date, from, to time.Time) bool {
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}

// Summarize totals expense records per currency and category within the
// inclusive date range. Totals are never converted across currencies.
func Summarize(records []model.ExpenseRecord, from, to time.Time) Summary {
	s := Summary{
		Totals:     make(map[string]decimal.Decimal),
		ByCategory: make(map[string]map[string]decimal.Decimal),
	}
	for _, r := range records {
		if !InRange(r.Date, from, to) {
			continue
		}
		s.Totals[r.Currency] = s.Totals[r.Currency].Add(r.Amount)
		cats := s.ByCategory[r.Currency]
		if cats == nil {
			cats = make(map[string]decimal.Decimal)
			s.ByCategory[r.Currency] = cats
		}
		cat := r.Category
		if cat == "" {
			cat = "uncategorized"
		}
		cats[cat] = cats[cat].Add(r.Amount)
		s.Count++
	}
	return s
}

// Currencies returns the summary's currency codes, sorted.
func (s Summary) Currencies() []string {
	codes := make([]string, 0, len(s.Totals))
	for c := range s.Totals {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// CategoriesFor returns a currency's categories sorted by ascending total.
func (s Summary) CategoriesFor(currency string) []string {
	cats := make([]string, 0, len(s.ByCategory[currency]))
	for c := range s.ByCategory[currency] {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		a, b := s.ByCategory[currency][cats[i]], s.ByCategory[currency][cats[j]]
		if a.Equal(b) {
			return cats[i] < cats[j]
		}
		return a.LessThan(b)
	})
	return cats
}

// SelectSubsection extracts the named subsection from every day section in
// the range, in source order. Title matching is case-insensitive.
func SelectSubsection(d *model.Diary, title string, from, to time.Time) []Excerpt {
	var out []Excerpt
	for _, day := range d.Days() {
		if !InRange(day.Date, from, to) {
			continue
		}
		sub := day.Child(title)
		if sub == nil {
			continue
		}
		out = append(out, Excerpt{
			Date:      day.Date,
			Weekday:   day.Weekday,
			Itinerary: day.Itinerary,
			Title:     strings.TrimSpace(sub.Title),
			Body:      sub.Body,
		})
	}
	return out
}
