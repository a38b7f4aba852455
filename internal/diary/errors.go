package diary

import (
	"fmt"
	"time"
)

// ParseError reports a structural problem in a diary file: a malformed or
// dateless day header, or an invalid header nesting. It aborts parsing of
// that file.
type ParseError struct {
	File    string
	Line    int
	Section string
	Msg     string
}

func (e *ParseError) Error() string {
	s := fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	if e.Section != "" {
		s += fmt.Sprintf(" (section %q)", e.Section)
	}
	return s
}

// SectionNotFoundError reports a writer target that does not exist while
// auto-creation is disabled.
type SectionNotFoundError struct {
	Date    time.Time
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found under %s (auto-create disabled)",
		e.Section, e.Date.Format("2006-01-02"))
}
