package diary

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// AppendOptions controls entry insertion.
type AppendOptions struct {
	// AutoCreate permits creating the day section and/or subsection when
	// missing. When false, a missing target is a *SectionNotFoundError.
	AutoCreate bool
}

var writerDayRe = regexp.MustCompile(`^## \S+ (\d{4}-\d{2}-\d{2})`)

// AppendEntry inserts line into the given date's subsection and returns the
// new file content. New day sections are created in chronological position
// among existing day headers; content within an existing subsection appends
// at the end of its body, before trailing blank lines.
func AppendEntry(content string, date time.Time, section, line string, opts AppendOptions) (string, error) {
	lines := strings.Split(content, "\n")
	dayLine, dayExists := findOrCreateDaySection(lines, date)

	if !dayExists {
		if !opts.AutoCreate {
			return "", &SectionNotFoundError{Date: date, Section: section}
		}
		block := []string{
			"",
			model.FormatDayHeader(date),
			"",
			"### " + titleCase(section),
			"",
			line,
		}
		lines = append(lines[:dayLine], append(block, lines[dayLine:]...)...)
		return strings.Join(lines, "\n"), nil
	}

	secLine := findSectionInDay(lines, dayLine, section)
	if secLine < 0 {
		if !opts.AutoCreate {
			return "", &SectionNotFoundError{Date: date, Section: section}
		}
		end := findSectionEnd(lines, dayLine)
		block := []string{
			"",
			"### " + titleCase(section),
			"",
			line,
		}
		lines = append(lines[:end], append(block, lines[end:]...)...)
		return strings.Join(lines, "\n"), nil
	}

	// Existing subsection: insert before its trailing blank lines.
	end := findSectionEnd(lines, secLine)
	insert := end
	for insert > secLine+1 && strings.TrimSpace(lines[insert-1]) == "" {
		insert--
	}
	lines = append(lines[:insert], append([]string{line}, lines[insert:]...)...)
	return strings.Join(lines, "\n"), nil
}

// UpdateFile applies AppendEntry to a file with whole-file
// read-modify-write. Callers must not run two writers against the same
// file concurrently.
func UpdateFile(path string, date time.Time, section, line string, opts AppendOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading diary: %w", err)
	}
	updated, err := AppendEntry(string(data), date, section, line, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing diary: %w", err)
	}
	return nil
}

// findOrCreateDaySection returns the line index of the date's header, or
// the chronological insertion point with exists=false.
func findOrCreateDaySection(lines []string, date time.Time) (int, bool) {
	header := model.FormatDayHeader(date)
	for i, line := range lines {
		// Day headers may carry itinerary text after the date.
		if strings.HasPrefix(strings.TrimSpace(line), header) {
			return i, true
		}
	}
	target := date.Format(model.DateFormat)
	for i, line := range lines {
		m := writerDayRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil && m[1] > target {
			return i, false
		}
	}
	return len(lines), false
}

// findSectionInDay locates "### <Section>" between the day header and the
// next day header. Returns -1 when absent.
func findSectionInDay(lines []string, dayLine int, section string) int {
	want := "### " + titleCase(section)
	for i := dayLine + 1; i < len(lines); i++ {
		s := strings.TrimSpace(lines[i])
		if writerDayRe.MatchString(s) {
			return -1
		}
		if strings.EqualFold(s, want) {
			return i
		}
	}
	return -1
}

// findSectionEnd returns the line index where a section's body ends: the
// next ## or ### header, or end of file.
func findSectionEnd(lines []string, sectionLine int) int {
	for i := sectionLine + 1; i < len(lines); i++ {
		s := strings.TrimSpace(lines[i])
		if strings.HasPrefix(s, "## ") || strings.HasPrefix(s, "### ") {
			return i
		}
	}
	return len(lines)
}

// titleCase uppercases the first letter of each word ("time accounting" ->
// "Time Accounting"), matching how subsection headers are written.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
