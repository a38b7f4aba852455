// Package statement normalizes bank statement exports into transaction
// records. One adapter per bank format; each declares its expected
// columns/fields and fails with a *FormatError on schema drift rather than
// silently producing zero rows. Row-level problems are collected as
// RowErrors so a partially damaged export still yields a report.
package statement

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/diarymd-dev/diarymd/internal/model"
)

// Adapter converts one bank's export into normalized transactions.
type Adapter interface {
	// Format returns the adapter's format tag (n26, wise, ...).
	Format() string
	// Parse reads the export. Row-level failures are returned as
	// RowErrors; a schema mismatch is a *FormatError.
	Parse(r io.Reader) ([]model.TransactionRecord, []RowError, error)
}

// FormatError reports an export whose schema does not match the adapter's
// contract, naming the missing or unexpected field.
type FormatError struct {
	Format string
	Field  string
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s statement: field %q: %s", e.Format, e.Field, e.Msg)
}

// RowError is a non-fatal failure to parse one row of a statement.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

// Registry holds adapters by format tag.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter. Panics on duplicate format.
func (r *Registry) Register(a Adapter) {
	key := strings.ToLower(a.Format())
	if _, ok := r.adapters[key]; ok {
		panic("duplicate adapter format: " + key)
	}
	r.adapters[key] = a
}

// Get returns the adapter for format, or nil.
func (r *Registry) Get(format string) Adapter {
	return r.adapters[strings.ToLower(format)]
}

// Formats returns the registered format tags, sorted.
func (r *Registry) Formats() []string {
	keys := make([]string, 0, len(r.adapters))
	for k := range r.adapters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRegistry returns a registry with all built-in adapters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&N26Adapter{})
	r.Register(&WiseAdapter{})
	r.Register(&BankNorwegianAdapter{})
	r.Register(&RememberAdapter{})
	return r
}

// columns maps normalized CSV header names to their index.
type columns map[string]int

func headerColumns(header []string) columns {
	c := make(columns, len(header))
	for i, h := range header {
		c[strings.TrimSpace(h)] = i
	}
	return c
}

// anyOf reports whether at least one of the names is present.
func (c columns) anyOf(names ...string) bool {
	for _, n := range names {
		if _, ok := c[n]; ok {
			return true
		}
	}
	return false
}

// value returns the first non-empty cell among the named columns.
func (c columns) value(row []string, names ...string) string {
	for _, n := range names {
		i, ok := c[n]
		if !ok || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}
