package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
)

type OrderRepo struct {
	table *tabular.Adapter
}

func NewOrderRepo(table *tabular.Adapter) *OrderRepo {
	return &OrderRepo{table: table}
}

// Create appends a full order row. Checkout owns order creation; the service
// only uses it for seeding and tests.
func (r *OrderRepo) Create(ctx context.Context, order *repository.Order) error {
	return r.table.Append(ctx, repository.SheetOrders, orderToRow(order))
}

func (r *OrderRepo) GetByReference(ctx context.Context, ref string) (*repository.Order, error) {
	order, _, err := r.find(ctx, func(o *repository.Order) bool { return o.MatchesReference(ref) })
	return order, err
}

func (r *OrderRepo) GetByShipmentID(ctx context.Context, shipmentID string) (*repository.Order, error) {
	order, _, err := r.find(ctx, func(o *repository.Order) bool {
		return shipmentID != "" && o.ShipmentID == shipmentID
	})
	return order, err
}

// UpdateColumns writes only the given columns of the row whose order_id (or
// draft_id) equals key. The row is never created.
func (r *OrderRepo) UpdateColumns(ctx context.Context, key string, values map[string]string) error {
	_, rowNumber, err := r.find(ctx, func(o *repository.Order) bool {
		return key != "" && o.Key() == key
	})
	if err != nil {
		return err
	}

	row := make(tabular.Row, len(values)+1)
	for col, v := range values {
		row[col] = v
	}
	row[repository.OrderColumnUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	err = r.table.UpdateColumns(ctx, repository.SheetOrders, rowNumber, row)
	if errors.Is(err, tabular.ErrRowNotFound) {
		return repository.ErrObjectNotFound
	}
	return err
}

func (r *OrderRepo) find(ctx context.Context, match func(*repository.Order) bool) (*repository.Order, int, error) {
	var found *repository.Order
	_, rowNumber, err := r.table.Find(ctx, repository.SheetOrders, func(row tabular.Row) bool {
		o := orderFromRow(row)
		if match(o) {
			found = o
			return true
		}
		return false
	})
	if err != nil {
		if errors.Is(err, tabular.ErrRowNotFound) {
			return nil, 0, repository.ErrObjectNotFound
		}
		return nil, 0, fmt.Errorf("failed to look up order: %w", err)
	}
	return found, rowNumber, nil
}

func orderFromRow(row tabular.Row) *repository.Order {
	return &repository.Order{
		OrderID:           row[repository.OrderColumnOrderID],
		DraftID:           row[repository.OrderColumnDraftID],
		ExternalReference: row[repository.OrderColumnExternalReference],
		CreatedAt:         parseTime(row[repository.OrderColumnCreatedAt]),
		Total:             parseDecimal(row[repository.OrderColumnTotal]),
		PriceMode:         row[repository.OrderColumnPriceMode],
		CustomerName:      row[repository.OrderColumnCustomerName],
		CustomerEmail:     row[repository.OrderColumnCustomerEmail],
		CustomerPhone:     row[repository.OrderColumnCustomerPhone],
		ItemsSummary:      row[repository.OrderColumnItemsSummary],
		Items:             row[repository.OrderColumnItems],
		Zipcode:           row[repository.OrderColumnZipcode],
		City:              row[repository.OrderColumnCity],
		State:             row[repository.OrderColumnState],
		Address:           row[repository.OrderColumnAddress],
		Status:            row[repository.OrderColumnStatus],
		ShipmentID:        row[repository.OrderColumnShipmentID],
		ShipmentStatus:    row[repository.OrderColumnShipmentStatus],
		ShippingCost:      parseDecimal(row[repository.OrderColumnShippingCost]),
		PaymentID:         row[repository.OrderColumnPaymentID],
		PaymentStatus:     row[repository.OrderColumnPaymentStatus],
		UpdatedAt:         parseTime(row[repository.OrderColumnUpdatedAt]),
	}
}

func orderToRow(o *repository.Order) tabular.Row {
	return tabular.Row{
		repository.OrderColumnOrderID:           o.OrderID,
		repository.OrderColumnDraftID:           o.DraftID,
		repository.OrderColumnExternalReference: o.ExternalReference,
		repository.OrderColumnCreatedAt:         formatTime(o.CreatedAt),
		repository.OrderColumnTotal:             o.Total.String(),
		repository.OrderColumnPriceMode:         o.PriceMode,
		repository.OrderColumnCustomerName:      o.CustomerName,
		repository.OrderColumnCustomerEmail:     o.CustomerEmail,
		repository.OrderColumnCustomerPhone:     o.CustomerPhone,
		repository.OrderColumnItemsSummary:      o.ItemsSummary,
		repository.OrderColumnItems:             o.Items,
		repository.OrderColumnZipcode:           o.Zipcode,
		repository.OrderColumnCity:              o.City,
		repository.OrderColumnState:             o.State,
		repository.OrderColumnAddress:           o.Address,
		repository.OrderColumnStatus:            o.Status,
		repository.OrderColumnShipmentID:        o.ShipmentID,
		repository.OrderColumnShipmentStatus:    o.ShipmentStatus,
		repository.OrderColumnShippingCost:      o.ShippingCost.String(),
		repository.OrderColumnPaymentID:         o.PaymentID,
		repository.OrderColumnPaymentStatus:     o.PaymentStatus,
		repository.OrderColumnUpdatedAt:         formatTime(o.UpdatedAt),
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
