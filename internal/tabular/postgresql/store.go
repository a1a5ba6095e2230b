package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
)

const (
	uniqueViolation  = "23505"
	maxAppendRetries = 3
)

type sheetHeader struct {
	Name   string   `db:"name"`
	Header []string `db:"header"`
}

type sheetRow struct {
	RowNumber int      `db:"row_number"`
	Cells     []string `db:"cells"`
}

// Store keeps each sheet as a header row in "sheets" and its data rows in
// "sheet_rows". Rows are addressed by row number, never by a key.
type Store struct {
	db db.DB
}

func NewStore(db db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ReadSheet(ctx context.Context, name string) (*tabular.Sheet, error) {
	var header sheetHeader
	err := s.db.Get(ctx, &header, "SELECT name, header FROM sheets WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tabular.ErrSheetNotFound
		}
		return nil, fmt.Errorf("failed to read header of sheet %s: %w", name, err)
	}

	var rows []sheetRow
	err = s.db.Select(ctx, &rows, `
        SELECT row_number, cells FROM sheet_rows
        WHERE sheet = $1
        ORDER BY row_number ASC
    `, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %s: %w", name, err)
	}

	sheet := &tabular.Sheet{
		Name:   header.Name,
		Header: header.Header,
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, r.Cells)
	}
	return sheet, nil
}

// AppendRow takes the next row number after the current maximum. Two concurrent
// appends can pick the same number; the loser retries against the new maximum.
func (s *Store) AppendRow(ctx context.Context, name string, values []string) error {
	var lastErr error
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		tag, err := s.db.Exec(ctx, `
            INSERT INTO sheet_rows (sheet, row_number, cells)
            SELECT s.name, COALESCE(MAX(r.row_number), 1) + 1, $2::text[]
            FROM sheets s
            LEFT JOIN sheet_rows r ON r.sheet = s.name
            WHERE s.name = $1
            GROUP BY s.name
        `, name, values)
		if err == nil {
			if tag.RowsAffected() == 0 {
				return tabular.ErrSheetNotFound
			}
			return nil
		}

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
			return fmt.Errorf("failed to append row to sheet %s: %w", name, err)
		}
		lastErr = err
	}
	return fmt.Errorf("failed to append row to sheet %s after %d attempts: %w", name, maxAppendRetries, lastErr)
}

func (s *Store) UpdateCell(ctx context.Context, name string, rowNumber, column int, value string) error {
	// Postgres arrays are 1-based.
	tag, err := s.db.Exec(ctx, `
        UPDATE sheet_rows
        SET cells[$3] = $4
        WHERE sheet = $1 AND row_number = $2
    `, name, rowNumber, column+1, value)
	if err != nil {
		return fmt.Errorf("failed to update cell %d of %s row %d: %w", column, name, rowNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return tabular.ErrRowNotFound
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sheets (
        name   TEXT PRIMARY KEY,
        header TEXT[] NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS sheet_rows (
        sheet      TEXT NOT NULL REFERENCES sheets (name),
        row_number INT  NOT NULL,
        cells      TEXT[] NOT NULL,
        PRIMARY KEY (sheet, row_number)
    )`,
}

// Migrate creates the backing tables when they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate sheet tables: %w", err)
		}
	}
	return nil
}

// EnsureSheet creates the sheet header if it does not exist yet.
func (s *Store) EnsureSheet(ctx context.Context, name string, header []string) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO sheets (name, header) VALUES ($1, $2)
        ON CONFLICT (name) DO NOTHING
    `, name, header)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return nil
}
