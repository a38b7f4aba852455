package digest

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/diarymd-dev/diarymd/internal/exchange"
	"github.com/diarymd-dev/diarymd/internal/model"
)

// RenderSummary builds a markdown expenses report. When convertTo is a
// currency code, a converted grand total is appended using the static rate
// table; currencies without a rate are listed as warnings.
func RenderSummary(s Summary, convertTo string, records []model.ExpenseRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Expenses")
	doc.PlainText(fmt.Sprintf("%d expense lines", s.Count))

	for _, cur := range s.Currencies() {
		doc.H2(fmt.Sprintf("%s %s", cur, s.Totals[cur].StringFixed(2)))
		rows := make([][]string, 0, len(s.ByCategory[cur]))
		for _, cat := range s.CategoriesFor(cur) {
			rows = append(rows, []string{cat, s.ByCategory[cur][cat].StringFixed(2)})
		}
		doc.Table(md.TableSet{
			Header: []string{"Category", "Total"},
			Rows:   rows,
		})
	}

	if convertTo != "" {
		renderConverted(doc, convertTo, records)
	}

	return doc.String()
}

func renderConverted(doc *md.Markdown, convertTo string, records []model.ExpenseRecord) {
	total := decimal.Zero
	var warnings []string
	for _, r := range records {
		conv, ok := exchange.Convert(r.Amount, r.Currency, convertTo, r.Date)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("no %s rate for %s on %s",
				convertTo, r.Currency, r.Date.Format(model.DateFormat)))
			continue
		}
		total = total.Add(conv)
	}

	doc.H2(fmt.Sprintf("Converted total: %s %s", convertTo, total.StringFixed(2)))
	for _, w := range warnings {
		doc.PlainText("- " + w)
	}
}

// RenderExcerpts builds a markdown document from selected subsections.
func RenderExcerpts(excerpts []Excerpt) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	for _, e := range excerpts {
		header := fmt.Sprintf("%s %s", e.Weekday, e.Date.Format(model.DateFormat))
		if e.Itinerary != "" {
			header += " " + e.Itinerary
		}
		doc.H2(header)
		doc.H3(e.Title)
		doc.PlainText(strings.TrimRight(strings.Join(e.Body, "\n"), "\n"))
	}

	return doc.String()
}
