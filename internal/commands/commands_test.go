package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarymd-dev/diarymd/internal/config"
)

const commandsDiary = `# Sailing 2026

## Monday 2026-01-19 Oslo

### Expenses

* EUR 7.10 - groceries - Lidl
* NOK 120 - mooring - harbour office

### Notes

Calm morning.

## Tuesday 2026-01-20 Oslo - Drøbak

### Expenses

* EUR 5.00 - food - bakery

### Notes

Light winds from the south.
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Save(path, config.Default()))
	return path
}

func writeTestDiary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diary.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", writeTestConfig(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDigestExpenses(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	out, err := runCommand(t, "digest", "expenses", "--diary", diary)
	require.NoError(t, err)
	assert.Contains(t, out, "3 expense lines")
	assert.Contains(t, out, "EUR 12.10")
	assert.Contains(t, out, "NOK 120.00")
	assert.Contains(t, out, "groceries")
}

func TestDigestExpensesDateRange(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	out, err := runCommand(t, "digest", "expenses", "--diary", diary,
		"--from", "2026-01-20", "--to", "2026-01-20")
	require.NoError(t, err)
	assert.Contains(t, out, "1 expense lines")
	assert.Contains(t, out, "EUR 5.00")
	assert.NotContains(t, out, "NOK")
}

func TestDigestExpensesEmptyRangeIsSuccess(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	out, err := runCommand(t, "digest", "expenses", "--diary", diary,
		"--from", "2026-03-01", "--to", "2026-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "0 expense lines")
}

func TestDigestExpensesInvalidConvertCurrency(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)
	_, err := runCommand(t, "digest", "expenses", "--diary", diary, "--convert", "euros")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid currency")
}

func TestDigestExpensesNoDiary(t *testing.T) {
	_, err := runCommand(t, "digest", "expenses")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no diary files")
}

func TestDigestSelectSubsection(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	out, err := runCommand(t, "digest", "select-subsection", "--diary", diary, "--section", "Notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Monday 2026-01-19")
	assert.Contains(t, out, "Calm morning.")
	assert.Contains(t, out, "Light winds from the south.")
	assert.NotContains(t, out, "Lidl")
}

func TestUpdateDryRunLeavesFileUntouched(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	out, err := runCommand(t, "update", "--diary", diary, "--date", "2026-01-20",
		"--amount", "9.99", "--currency", "EUR", "--type", "boat", "--description", "shackle",
		"--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "+* EUR 9.99 - boat - shackle")

	data, err := os.ReadFile(diary)
	require.NoError(t, err)
	assert.Equal(t, commandsDiary, string(data))
}

func TestUpdateAppendsExpense(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	out, err := runCommand(t, "update", "--diary", diary, "--date", "2026-01-20",
		"--amount", "9.99", "--currency", "EUR", "--type", "boat", "--description", "shackle")
	require.NoError(t, err)
	assert.Contains(t, out, "added to")

	data, err := os.ReadFile(diary)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* EUR 9.99 - boat - shackle")
}

func TestUpdateVerbatimLineAndNewDay(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	_, err := runCommand(t, "update", "--diary", diary, "--date", "2026-01-21",
		"--section", "Notes", "--line", "Engine oil changed.")
	require.NoError(t, err)

	data, err := os.ReadFile(diary)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Wednesday 2026-01-21")
	assert.Contains(t, string(data), "Engine oil changed.")
}

func TestUpdateNoCreateFailsOnMissingDay(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	_, err := runCommand(t, "update", "--diary", diary, "--date", "2026-02-01",
		"--line", "x", "--no-create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2026-02-01")
}

func TestUpdateLineAndAmountAreExclusive(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)

	_, err := runCommand(t, "update", "--diary", diary, "--line", "x", "--amount", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

const reconcileCSV = `Value Date,Partner Name,Amount (EUR)
2026-01-19,LIDL OSLO,-7.10
2026-01-20,BAKERY DROBAK,-5.00
2026-01-20,UNKNOWN SHOP,-33.00
`

func TestReconcileReportAndUnmatchedStore(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)
	dir := t.TempDir()
	statement := filepath.Join(dir, "n26-jan.csv")
	require.NoError(t, os.WriteFile(statement, []byte(reconcileCSV), 0o644))
	output := filepath.Join(dir, "non-reconciled.csv")

	out, err := runCommand(t, "reconcile", statement, "--format", "n26",
		"--diary", diary, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "2 matched, 1 diary-only, 1 bank-only")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "UNKNOWN SHOP")
	assert.Contains(t, string(data), "n26-jan.csv")

	// Report-only runs never touch the diary.
	diaryData, err := os.ReadFile(diary)
	require.NoError(t, err)
	assert.Equal(t, commandsDiary, string(diaryData))
}

func TestReconcileWriteAppendsMarkers(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)
	dir := t.TempDir()
	statement := filepath.Join(dir, "n26-jan.csv")
	require.NoError(t, os.WriteFile(statement, []byte(reconcileCSV), 0o644))

	_, err := runCommand(t, "reconcile", statement, "--format", "n26",
		"--diary", diary, "--output", filepath.Join(dir, "non-reconciled.csv"), "--write")
	require.NoError(t, err)

	data, err := os.ReadFile(diary)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* EUR 7.10 - groceries - Lidl (reconciled: n26 - 2026-01-19 - EUR:7.10)")
	assert.Contains(t, string(data), "* EUR 5.00 - food - bakery (reconciled: n26 - 2026-01-20 - EUR:5.00)")
	assert.Contains(t, string(data), "* NOK 120 - mooring - harbour office\n")
}

func TestReconcileWriteAndDryRunAreExclusive(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)
	statement := filepath.Join(t.TempDir(), "n26.csv")
	require.NoError(t, os.WriteFile(statement, []byte(reconcileCSV), 0o644))

	_, err := runCommand(t, "reconcile", statement, "--diary", diary, "--write", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestReconcileUnknownFormat(t *testing.T) {
	diary := writeTestDiary(t, commandsDiary)
	statement := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(statement, []byte(reconcileCSV), 0o644))

	_, err := runCommand(t, "reconcile", statement, "--diary", diary, "--format", "dnb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestResolveAdapterGuessesFromFilename(t *testing.T) {
	cases := map[string]string{
		"export.xlsx":    "banknorwegian",
		"card.json":      "remember",
		"wise-2026.csv":  "wise",
		"n26-export.csv": "n26",
	}
	for name, want := range cases {
		adapter, err := resolveAdapter(name, "")
		require.NoError(t, err, name)
		assert.Equal(t, want, adapter.Format(), name)
	}

	_, err := resolveAdapter("statement.txt", "")
	require.Error(t, err)
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2026-01-19", "2026-01-21")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-19", from.Format("2006-01-02"))
	assert.Equal(t, "2026-01-21", to.Format("2006-01-02"))

	from, to, err = parseRange("", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	_, _, err = parseRange("2026-01-21", "2026-01-19")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "before"))
}
