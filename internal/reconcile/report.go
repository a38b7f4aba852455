package reconcile

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// RenderReport builds a markdown reconciliation report.
func RenderReport(r Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Reconciliation")
	doc.PlainText(fmt.Sprintf("%d matched, %d diary-only, %d bank-only",
		len(r.Matched), len(r.DiaryOnly), len(r.BankOnly)))

	if len(r.Matched) > 0 {
		doc.H2("Matched")
		rows := make([][]string, 0, len(r.Matched))
		for _, m := range r.Matched {
			rows = append(rows, []string{
				m.Expense.Date.Format(model.DateFormat),
				m.Expense.Currency,
				m.Expense.Amount.StringFixed(2),
				m.Expense.Description,
				m.Transaction.Description,
				fmt.Sprintf("%dd", m.DateDiff),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Date", "Currency", "Amount", "Diary", "Bank", "Diff"},
			Rows:   rows,
		})
	}

	if len(r.DiaryOnly) > 0 {
		doc.H2("In diary, not on statement")
		rows := make([][]string, 0, len(r.DiaryOnly))
		for _, m := range r.DiaryOnly {
			e := m.Expense
			rows = append(rows, []string{
				e.Date.Format(model.DateFormat), e.Currency,
				e.Amount.StringFixed(2), e.Description,
				fmt.Sprintf("%s:%d", e.File, e.Line),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Date", "Currency", "Amount", "Description", "Location"},
			Rows:   rows,
		})
	}

	if len(r.BankOnly) > 0 {
		doc.H2("On statement, not in diary")
		rows := make([][]string, 0, len(r.BankOnly))
		for _, m := range r.BankOnly {
			t := m.Transaction
			rows = append(rows, []string{
				t.Date.Format(model.DateFormat), t.Currency,
				t.Amount.Abs().StringFixed(2), t.Description, t.Format,
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Date", "Currency", "Amount", "Description", "Bank"},
			Rows:   rows,
		})
	}

	return doc.String()
}
