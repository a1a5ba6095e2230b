package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
)

// VariantRepo reads per-SKU weights from the catalog's variants sheet.
type VariantRepo struct {
	table *tabular.Adapter
}

func NewVariantRepo(table *tabular.Adapter) *VariantRepo {
	return &VariantRepo{table: table}
}

// WeightGrams returns the weights known for skus. SKUs without a positive
// weight are absent from the result.
func (r *VariantRepo) WeightGrams(ctx context.Context, skus []string) (map[string]int, error) {
	wanted := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		wanted[strings.TrimSpace(sku)] = struct{}{}
	}

	rows, err := r.table.Rows(ctx, repository.SheetVariants)
	if err != nil {
		return nil, fmt.Errorf("failed to read variants: %w", err)
	}

	weights := make(map[string]int, len(wanted))
	for _, row := range rows {
		sku := strings.TrimSpace(row["sku"])
		if _, ok := wanted[sku]; !ok {
			continue
		}
		grams, err := decimal.NewFromString(strings.TrimSpace(row["weight_grams"]))
		if err != nil || !grams.IsPositive() {
			continue
		}
		weights[sku] = int(grams.Round(0).IntPart())
	}
	return weights, nil
}
