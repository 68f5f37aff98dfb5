// Package memory captures export rows in memory for tests and dev runs
// without Sheets credentials.
package memory

import (
	"context"
	"fmt"
	"sync"
)

type Exporter struct {
	mu     sync.Mutex
	rows   [][]any
	tables map[string][][]any
}

func New() *Exporter {
	return &Exporter{tables: make(map[string][][]any)}
}

func (e *Exporter) AppendRow(_ context.Context, row []any) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = append(e.rows, row)
	return fmt.Sprintf("mem:%d", len(e.rows)), nil
}

func (e *Exporter) WriteTable(_ context.Context, name string, rows [][]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	copied := make([][]any, len(rows))
	copy(copied, rows)
	e.tables[name] = copied
	return nil
}

// Rows returns the appended rows, for assertions.
func (e *Exporter) Rows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.rows...)
}

// Table returns a written table by name, for assertions.
func (e *Exporter) Table(name string) [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tables[name]
}
