package sheets

import (
	"context"
	"errors"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
)

// ZipRepo is the zip cache sheet. Rows may be typed in by hand, so every read
// is canonicalised before comparison.
type ZipRepo struct {
	table *tabular.Adapter
}

func NewZipRepo(table *tabular.Adapter) *ZipRepo {
	return &ZipRepo{table: table}
}

func (r *ZipRepo) Get(ctx context.Context, zipcode string) (*repository.ZipEntry, error) {
	zipcode = repository.NormalizeZipcode(zipcode)
	row, _, err := r.table.Find(ctx, repository.SheetZipCache, func(row tabular.Row) bool {
		return repository.NormalizeZipcode(row["zipcode"]) == zipcode
	})
	if err != nil {
		if errors.Is(err, tabular.ErrRowNotFound) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to read zip cache: %w", err)
	}

	entry := zipFromRow(row)
	return &entry, nil
}

func (r *ZipRepo) All(ctx context.Context) ([]repository.ZipEntry, error) {
	rows, err := r.table.Rows(ctx, repository.SheetZipCache)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip cache: %w", err)
	}

	entries := make([]repository.ZipEntry, 0, len(rows))
	for _, row := range rows {
		if e := zipFromRow(row); e.Zipcode != "" {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// PutIfAbsent appends entry unless a row for its zipcode exists. Existing rows
// are never updated. The check and the append are not atomic.
func (r *ZipRepo) PutIfAbsent(ctx context.Context, entry repository.ZipEntry) error {
	entry = entry.Canonical()

	_, err := r.Get(ctx, entry.Zipcode)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrObjectNotFound) {
		return err
	}

	return r.table.Append(ctx, repository.SheetZipCache, tabular.Row{
		"zipcode":        entry.Zipcode,
		"city":           entry.City,
		"state":          entry.State,
		"destination_id": entry.DestinationID,
	})
}

func zipFromRow(row tabular.Row) repository.ZipEntry {
	return repository.ZipEntry{
		Zipcode:       row["zipcode"],
		City:          row["city"],
		State:         row["state"],
		DestinationID: row["destination_id"],
	}.Canonical()
}
