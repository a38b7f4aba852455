// Package diary parses, serializes, and edits diary files written in the
// constrained markdown dialect: # chapters, ## day headers carrying a date,
// ### subsections. Body lines are kept verbatim so parse/serialize
// round-trips.
//
// The package does whole-file read-modify-write; running two writers
// against the same file concurrently is not supported.
package diary

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// dayHeaderRe splits a level-2 header title into weekday, date and
// trailing itinerary text.
var dayHeaderRe = regexp.MustCompile(`^(\S+)\s+(\d{4}-\d{2}-\d{2})(.*)$`)

type heading struct {
	level int
	line  int // 1-based
	title string
}

// ParseFile reads and parses a diary file.
func ParseFile(path string) (*model.Diary, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diary: %w", err)
	}
	return Parse(src, path)
}

// Parse builds the section tree for one diary file. Headers need not be in
// date order. A file may start directly at level 2; an unnamed chapter is
// synthesized. Structural problems return a *ParseError.
func Parse(src []byte, name string) (*model.Diary, error) {
	lines := strings.Split(string(src), "\n")
	headings := findHeadings(src, lines)

	d := &model.Diary{File: name}

	bodyFor := func(i int) []string {
		start := headings[i].line // header is at line-1 index, body starts after
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line - 1
		}
		// Drop a single trailing empty element left by the final "\n" split.
		if i+1 == len(headings) && end > start && lines[end-1] == "" {
			end--
		}
		return lines[start:end]
	}

	if len(headings) == 0 {
		d.Preamble = lines
		return d, nil
	}
	if headings[0].line > 1 {
		d.Preamble = lines[:headings[0].line-1]
	}

	var chapter, day *model.Section
	for i, h := range headings {
		sec := &model.Section{
			Level: h.level,
			Title: h.title,
			Line:  h.line,
			Body:  bodyFor(i),
		}
		switch h.level {
		case model.LevelChapter:
			d.Chapters = append(d.Chapters, sec)
			chapter, day = sec, nil

		case model.LevelDay:
			if err := parseDayHeader(sec, name); err != nil {
				return nil, err
			}
			if chapter == nil {
				chapter = &model.Section{Level: model.LevelChapter}
				d.Chapters = append(d.Chapters, chapter)
			}
			chapter.Children = append(chapter.Children, sec)
			day = sec

		case model.LevelSubsection:
			if day == nil {
				return nil, &ParseError{
					File:    name,
					Line:    h.line,
					Section: h.title,
					Msg:     "subsection header without an enclosing day section",
				}
			}
			day.Children = append(day.Children, sec)
		}
	}
	return d, nil
}

// parseDayHeader fills Date, Weekday and Itinerary from a level-2 title.
func parseDayHeader(sec *model.Section, file string) error {
	m := dayHeaderRe.FindStringSubmatch(strings.TrimSpace(sec.Title))
	if m == nil {
		return &ParseError{
			File:    file,
			Line:    sec.Line,
			Section: sec.Title,
			Msg:     "day header must be '<Weekday> <YYYY-MM-DD> [itinerary]'",
		}
	}
	wd, ok := model.LookupWeekday(m[1])
	if !ok {
		return &ParseError{
			File:    file,
			Line:    sec.Line,
			Section: sec.Title,
			Msg:     fmt.Sprintf("unknown weekday %q", m[1]),
		}
	}
	date, err := time.Parse(model.DateFormat, m[2])
	if err != nil {
		return &ParseError{
			File:    file,
			Line:    sec.Line,
			Section: sec.Title,
			Msg:     fmt.Sprintf("invalid date %q", m[2]),
		}
	}
	if date.Weekday() != wd {
		return &ParseError{
			File:    file,
			Line:    sec.Line,
			Section: sec.Title,
			Msg:     fmt.Sprintf("weekday %q does not match %s (%s)", m[1], m[2], date.Weekday()),
		}
	}
	sec.Weekday = m[1]
	sec.Date = date
	sec.Itinerary = strings.TrimSpace(m[3])
	return nil
}

// findHeadings walks the goldmark AST and returns ATX headings of level 1-3
// with their source line numbers. Hash lines inside fenced code blocks are
// not headings and stay in body text, as do headings deeper than level 3.
func findHeadings(src []byte, lines []string) []heading {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var hs []heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > model.LevelSubsection || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		ln := lineNumber(src, h.Lines().At(0).Start)
		raw := strings.TrimSpace(lines[ln-1])
		if !strings.HasPrefix(raw, "#") {
			// setext-style heading; not part of the diary dialect
			return ast.WalkContinue, nil
		}
		hs = append(hs, heading{
			level: h.Level,
			line:  ln,
			title: strings.TrimSpace(strings.TrimLeft(raw, "#")),
		})
		return ast.WalkContinue, nil
	})

	sort.Slice(hs, func(i, j int) bool { return hs[i].line < hs[j].line })
	return hs
}

// lineNumber computes the 1-based line for a byte offset; the markdown
// parser does not track line numbers itself.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
