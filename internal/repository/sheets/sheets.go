// Package sheets implements the service repositories on top of the tabular store.
package sheets

import (
	"context"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

// Definition is the header of one sheet the service reads or writes.
type Definition struct {
	Name   string
	Header []string
}

func Definitions() []Definition {
	return []Definition{
		{Name: repository.SheetOrders, Header: repository.OrderHeader},
		{Name: repository.SheetZipCache, Header: repository.ZipCacheHeader},
		{Name: repository.SheetVariants, Header: repository.VariantHeader},
		{Name: repository.SheetShipmentEvents, Header: repository.ShipmentEventHeader},
		{Name: repository.SheetQuoteEvents, Header: repository.QuoteEventHeader},
	}
}

// Definer is implemented by stores that can create a sheet header.
type Definer interface {
	EnsureSheet(ctx context.Context, name string, header []string) error
}

func EnsureAll(ctx context.Context, store Definer) error {
	for _, d := range Definitions() {
		if err := store.EnsureSheet(ctx, d.Name, d.Header); err != nil {
			return err
		}
	}
	return nil
}
