// Package tabular gives column-name access to a spreadsheet-shaped store.
//
// A sheet is a header row followed by data rows. The header is the only schema:
// there are no transactions, no unique keys and no referential integrity.
// Row numbers follow spreadsheet convention, the header is row 1 and the
// first data row is row 2.
package tabular

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrRowNotFound   = errors.New("row not found")
	ErrUnknownColumn = errors.New("unknown column")
)

const firstDataRow = 2

// Store is the raw transport to the tabular backend.
type Store interface {
	ReadSheet(ctx context.Context, name string) (*Sheet, error)
	AppendRow(ctx context.Context, name string, values []string) error
	// UpdateCell writes a single cell. column is a 0-based header index.
	UpdateCell(ctx context.Context, name string, rowNumber, column int, value string) error
}

// Row is a data row keyed by header name.
type Row map[string]string

type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the 0-based index of a header, or -1.
// Header names are compared trimmed and case-insensitively.
func (s *Sheet) ColumnIndex(name string) int {
	want := normalizeHeader(name)
	for i, h := range s.Header {
		if normalizeHeader(h) == want {
			return i
		}
	}
	return -1
}

// Record returns data row i (0-based) as a Row. Short rows read as empty cells.
func (s *Sheet) Record(i int) Row {
	row := make(Row, len(s.Header))
	values := s.Rows[i]
	for col, h := range s.Header {
		key := normalizeHeader(h)
		if col < len(values) {
			row[key] = values[col]
		} else {
			row[key] = ""
		}
	}
	return row
}

func RowNumber(dataIndex int) int {
	return dataIndex + firstDataRow
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Adapter addresses a Store by column name.
type Adapter struct {
	store Store
}

func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

func (a *Adapter) Rows(ctx context.Context, sheet string) ([]Row, error) {
	s, err := a.store.ReadSheet(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	rows := make([]Row, 0, len(s.Rows))
	for i := range s.Rows {
		rows = append(rows, s.Record(i))
	}
	return rows, nil
}

// Find does a full-range read and returns the first row accepted by match
// together with its row number.
func (a *Adapter) Find(ctx context.Context, sheet string, match func(Row) bool) (Row, int, error) {
	s, err := a.store.ReadSheet(ctx, sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	for i := range s.Rows {
		row := s.Record(i)
		if match(row) {
			return row, RowNumber(i), nil
		}
	}
	return nil, 0, ErrRowNotFound
}

// Append writes row as a full new row ordered by the sheet header.
// Keys that are not in the header are rejected rather than dropped.
func (a *Adapter) Append(ctx context.Context, sheet string, row Row) error {
	s, err := a.store.ReadSheet(ctx, sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	values := make([]string, len(s.Header))
	for key, value := range row {
		idx := s.ColumnIndex(key)
		if idx < 0 {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, sheet, key)
		}
		values[idx] = value
	}

	if err := a.store.AppendRow(ctx, sheet, values); err != nil {
		return fmt.Errorf("failed to append to sheet %s: %w", sheet, err)
	}
	return nil
}

// UpdateColumns writes only the given cells of an existing row.
func (a *Adapter) UpdateColumns(ctx context.Context, sheet string, rowNumber int, values Row) error {
	s, err := a.store.ReadSheet(ctx, sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if rowNumber < firstDataRow || rowNumber-firstDataRow >= len(s.Rows) {
		return ErrRowNotFound
	}

	cols := make(map[int]string, len(values))
	for key, value := range values {
		idx := s.ColumnIndex(key)
		if idx < 0 {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, sheet, key)
		}
		cols[idx] = value
	}

	for idx, value := range cols {
		if err := a.store.UpdateCell(ctx, sheet, rowNumber, idx, value); err != nil {
			return fmt.Errorf("failed to update %s row %d column %d: %w", sheet, rowNumber, idx, err)
		}
	}
	return nil
}
