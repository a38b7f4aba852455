package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// DiaryParsed logs a successfully parsed diary file
func (l *Logger) DiaryParsed(file string, days, expenses int) {
	l.Debug("diary parsed",
		"file", file,
		"days", days,
		"expenses", expenses)
}

// RowSkipped logs a statement row that could not be parsed
func (l *Logger) RowSkipped(format string, line int, err error) {
	l.Warn("statement row skipped",
		"format", format,
		"line", line,
		"error", err)
}

// ParseWarning logs a non-fatal diary parsing problem
func (l *Logger) ParseWarning(file string, line int, msg string) {
	l.Warn("parse warning",
		"file", file,
		"line", line,
		"msg", msg)
}

// MatchSummary logs the outcome of a reconciliation run
func (l *Logger) MatchSummary(matched, diaryOnly, bankOnly int) {
	l.Info("reconciliation finished",
		"matched", matched,
		"diary_only", diaryOnly,
		"bank_only", bankOnly)
}

// Committed logs a git commit created on the user's behalf
func (l *Logger) Committed(root, hash string) {
	l.Info("changes committed",
		"repo", root,
		"commit", hash)
}
