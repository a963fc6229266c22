// Package reference loads the static ticker reference dataset used to
// enrich companies with market capitalization and 52-week trading range.
// The dataset is a CSV file keyed by ticker; the 52-week columns are
// optional and their presence is reported to the pipeline so the result
// assembler can include or omit the group.
package reference

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// Row is one reference-dataset entry.
type Row struct {
	Ticker    string   `csv:"Ticker"`
	Name      string   `csv:"Name"`
	MarketCap float64  `csv:"Market Cap"`
	WeekHigh  *float64 `csv:"52wk High"`
	WeekLow   *float64 `csv:"52wk Low"`
}

// Table is an in-memory reference dataset keyed by upper-cased ticker.
type Table struct {
	rows         map[string]Row
	hasWeekRange bool
}

// Load reads the reference CSV at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference file: %w", err)
	}
	defer f.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse reference file %s: %w", path, err)
	}
	return FromRows(rows), nil
}

// FromRows builds a table from already-parsed rows.
func FromRows(rows []Row) *Table {
	t := &Table{rows: make(map[string]Row, len(rows))}
	for _, r := range rows {
		key := strings.ToUpper(strings.TrimSpace(r.Ticker))
		if key == "" {
			continue
		}
		t.rows[key] = r
		if r.WeekHigh != nil && r.WeekLow != nil {
			t.hasWeekRange = true
		}
	}
	return t
}

// Lookup returns the reference row for a cleaned ticker.
func (t *Table) Lookup(ticker string) (Row, bool) {
	r, ok := t.rows[strings.ToUpper(strings.TrimSpace(ticker))]
	return r, ok
}

// Len returns the number of reference entries.
func (t *Table) Len() int { return len(t.rows) }

// HasWeekRange reports whether the dataset carries 52-week range columns.
func (t *Table) HasWeekRange() bool { return t.hasWeekRange }
