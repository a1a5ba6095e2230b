package packer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
)

const (
	// FallbackGrams is used for SKUs without a catalog weight and for empty carts.
	FallbackGrams = 500
	// MaxParcels caps the parcels declared to the carrier.
	MaxParcels = 4
	// ParcelLimitGrams is the heaviest parcel before overflow handling kicks in.
	ParcelLimitGrams = 10000
)

type Size string

const (
	Small      Size = "Small"
	Medium     Size = "Medium"
	Large      Size = "Large"
	ExtraLarge Size = "Extra-Large"
)

type box struct {
	size     Size
	maxGrams int
	height   int
	width    int
	length   int
}

// ladder is ordered by capacity. Extra-Large has no weight limit.
var ladder = []box{
	{size: Small, maxGrams: 3000, height: 10, width: 20, length: 30},
	{size: Medium, maxGrams: 6000, height: 20, width: 30, length: 40},
	{size: Large, maxGrams: ParcelLimitGrams, height: 30, width: 40, length: 50},
	{size: ExtraLarge, maxGrams: 0, height: 40, width: 50, length: 60},
}

type Parcel struct {
	Size        Size `json:"size"`
	WeightGrams int  `json:"weight_grams"`
	HeightCm    int  `json:"height_cm"`
	WidthCm     int  `json:"width_cm"`
	LengthCm    int  `json:"length_cm"`
}

// LineItem is either a SKU with a quantity or an item that already carries
// its own weight and dimensions.
type LineItem struct {
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams,omitempty"`
	HeightCm    int    `json:"height_cm,omitempty"`
	WidthCm     int    `json:"width_cm,omitempty"`
	LengthCm    int    `json:"length_cm,omitempty"`
}

func (i LineItem) hasDimensions() bool {
	return i.WeightGrams > 0 || i.HeightCm > 0 || i.WidthCm > 0 || i.LengthCm > 0
}

type Result struct {
	Parcels     []Parcel `json:"parcels"`
	TotalGrams  int      `json:"total_grams"`
	MissingSKUs []string `json:"missing_skus,omitempty"`
}

//go:generate mockgen -source ./packer.go -destination=./mocks/packer.go -package=mock_packer
type WeightCatalog interface {
	WeightGrams(ctx context.Context, skus []string) (map[string]int, error)
}

type Packer struct {
	catalog WeightCatalog
	logger  *zap.Logger
}

func New(catalog WeightCatalog, logger *zap.Logger) *Packer {
	return &Packer{catalog: catalog, logger: logger}
}

// Pack turns line items into 1 to MaxParcels parcels. A non-nil
// totalGramsOverride skips the catalog and packs that weight.
func (p *Packer) Pack(ctx context.Context, items []LineItem, totalGramsOverride *int) (Result, error) {
	if totalGramsOverride != nil {
		grams := max(*totalGramsOverride, 0)
		return Result{Parcels: PackWeight(grams), TotalGrams: grams}, nil
	}

	for _, item := range items {
		if item.hasDimensions() {
			return packExplicit(items), nil
		}
	}

	return p.packBySKU(ctx, items)
}

func (p *Packer) packBySKU(ctx context.Context, items []LineItem) (Result, error) {
	skus := make([]string, 0, len(items))
	for _, item := range items {
		if sku := strings.TrimSpace(item.SKU); sku != "" {
			skus = append(skus, sku)
		}
	}

	weights := map[string]int{}
	if len(skus) > 0 {
		var err error
		weights, err = p.catalog.WeightGrams(ctx, skus)
		if err != nil {
			return Result{}, fmt.Errorf("failed to look up item weights: %w", err)
		}
	}

	var result Result
	seen := make(map[string]struct{})
	for _, item := range items {
		sku := strings.TrimSpace(item.SKU)
		qty := max(item.Quantity, 1)

		grams, ok := weights[sku]
		if !ok {
			grams = FallbackGrams
			if _, dup := seen[sku]; !dup {
				seen[sku] = struct{}{}
				result.MissingSKUs = append(result.MissingSKUs, sku)
			}
		}
		result.TotalGrams += grams * qty
	}

	if len(result.MissingSKUs) > 0 {
		metrics.MissingSKUsTotal.Add(float64(len(result.MissingSKUs)))
		p.logger.Warn("packing with fallback weight for SKUs without catalog weight",
			zap.Strings("skus", result.MissingSKUs),
			zap.Int("fallback_grams", FallbackGrams),
		)
	}

	result.Parcels = PackWeight(result.TotalGrams)
	return result, nil
}

// PackWeight applies the fixed ladder to a total weight. Parcels past the
// third are never created: the remainder goes into the last one, which is
// Extra-Large when it is over the Large limit.
func PackWeight(grams int) []Parcel {
	if grams <= 0 {
		return []Parcel{newParcel(FallbackGrams)}
	}

	var parcels []Parcel
	remaining := grams
	for remaining > ParcelLimitGrams && len(parcels) < MaxParcels-1 {
		parcels = append(parcels, newParcel(ParcelLimitGrams))
		remaining -= ParcelLimitGrams
	}
	return append(parcels, newParcel(remaining))
}

func newParcel(grams int) Parcel {
	b := boxFor(grams)
	return Parcel{Size: b.size, WeightGrams: grams, HeightCm: b.height, WidthCm: b.width, LengthCm: b.length}
}

func boxFor(grams int) box {
	for _, b := range ladder {
		if b.maxGrams > 0 && grams <= b.maxGrams {
			return b
		}
	}
	return ladder[len(ladder)-1]
}

// packExplicit trusts declared weights and dimensions, one parcel per item.
// Quantity is ignored because the declaration describes the whole line.
func packExplicit(items []LineItem) Result {
	var result Result
	for i, item := range items {
		grams := item.WeightGrams
		if grams <= 0 {
			grams = FallbackGrams
		}
		result.TotalGrams += grams

		parcel := newParcel(grams)
		if item.HeightCm > 0 {
			parcel.HeightCm = item.HeightCm
		}
		if item.WidthCm > 0 {
			parcel.WidthCm = item.WidthCm
		}
		if item.LengthCm > 0 {
			parcel.LengthCm = item.LengthCm
		}

		if i < MaxParcels {
			result.Parcels = append(result.Parcels, parcel)
			continue
		}

		last := &result.Parcels[MaxParcels-1]
		xl := ladder[len(ladder)-1]
		last.Size = ExtraLarge
		last.WeightGrams += grams
		last.HeightCm = max(last.HeightCm, parcel.HeightCm, xl.height)
		last.WidthCm = max(last.WidthCm, parcel.WidthCm, xl.width)
		last.LengthCm = max(last.LengthCm, parcel.LengthCm, xl.length)
	}

	if len(result.Parcels) == 0 {
		result.Parcels = PackWeight(0)
	}
	return result
}

// CarrierItems declares parcels in the carrier's item shape.
func CarrierItems(parcels []Parcel) []carrier.Item {
	items := make([]carrier.Item, 0, len(parcels))
	for i, p := range parcels {
		items = append(items, carrier.Item{
			SKU:         "parcel-" + strconv.Itoa(i+1),
			Weight:      p.WeightGrams,
			Height:      p.HeightCm,
			Width:       p.WidthCm,
			Length:      p.LengthCm,
			Description: string(p.Size),
		})
	}
	return items
}
