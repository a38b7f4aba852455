package model

import (
	"strings"
	"time"
)

// Header levels in the diary dialect.
const (
	LevelChapter    = 1 // # trip or year
	LevelDay        = 2 // ## Weekday YYYY-MM-DD [itinerary]
	LevelSubsection = 3 // ### Expenses, Notes, ...
)

// Section is one header block in a diary file. A level-2 section always
// carries a parseable date; level-3 sections nest only under level-2.
type Section struct {
	Level     int
	Title     string // header text after the #'s, verbatim
	Date      time.Time
	Weekday   string
	Itinerary string
	Line      int // 1-based line of the header in the source file
	Body      []string
	Children  []*Section
}

// Diary is a fully parsed diary file. Top-level sections are chapters.
// Preamble holds any lines before the first header, verbatim.
type Diary struct {
	File     string
	Preamble []string
	Chapters []*Section
}

// Child returns the first child section whose title matches
// case-insensitively, or nil.
func (s *Section) Child(title string) *Section {
	for _, c := range s.Children {
		if strings.EqualFold(strings.TrimSpace(c.Title), strings.TrimSpace(title)) {
			return c
		}
	}
	return nil
}

// Days returns all level-2 day sections in source order.
func (d *Diary) Days() []*Section {
	var days []*Section
	for _, ch := range d.Chapters {
		for _, c := range ch.Children {
			if c.Level == LevelDay {
				days = append(days, c)
			}
		}
	}
	return days
}
