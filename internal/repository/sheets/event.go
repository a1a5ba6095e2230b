package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
)

// EventRepo appends audit rows. Rows are never updated or deleted.
type EventRepo struct {
	table *tabular.Adapter
	now   func() time.Time
}

func NewEventRepo(table *tabular.Adapter) *EventRepo {
	return &EventRepo{table: table, now: time.Now}
}

func (r *EventRepo) AppendShipmentEvent(ctx context.Context, event repository.ShipmentEvent) error {
	r.stamp(&event.Timestamp, &event.EventID)

	err := r.table.Append(ctx, repository.SheetShipmentEvents, tabular.Row{
		"timestamp":       event.Timestamp.UTC().Format(time.RFC3339Nano),
		"event_id":        event.EventID,
		"topic":           event.Topic,
		"shipment_id":     event.ShipmentID,
		"reference":       event.Reference,
		"raw_status":      event.RawStatus,
		"internal_status": event.InternalStatus,
		"payload":         event.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to append shipment event: %w", err)
	}
	return nil
}

func (r *EventRepo) AppendQuoteEvent(ctx context.Context, event repository.QuoteEvent) error {
	r.stamp(&event.Timestamp, &event.EventID)

	row := tabular.Row{
		"timestamp":     event.Timestamp.UTC().Format(time.RFC3339Nano),
		"event_id":      event.EventID,
		"event_type":    event.EventType,
		"zipcode":       event.Zipcode,
		"city":          event.City,
		"state":         event.State,
		"parcels":       strconv.Itoa(event.Parcels),
		"total_grams":   strconv.Itoa(event.TotalGrams),
		"missing_skus":  strings.Join(event.MissingSKUs, ","),
		"options_count": strconv.Itoa(event.OptionsCount),
		"option_id":     event.OptionID,
		"price":         "",
		"error":         event.Error,
	}
	if event.OptionID != "" {
		row["price"] = strconv.FormatInt(event.Price, 10)
	}

	if err := r.table.Append(ctx, repository.SheetQuoteEvents, row); err != nil {
		return fmt.Errorf("failed to append quote event: %w", err)
	}
	return nil
}

// LatestShipmentEvent returns the newest event for shipmentID by timestamp.
func (r *EventRepo) LatestShipmentEvent(ctx context.Context, shipmentID string) (*repository.ShipmentEvent, error) {
	rows, err := r.table.Rows(ctx, repository.SheetShipmentEvents)
	if err != nil {
		return nil, fmt.Errorf("failed to read shipment events: %w", err)
	}

	var latest *repository.ShipmentEvent
	for _, row := range rows {
		if shipmentID == "" || row["shipment_id"] != shipmentID {
			continue
		}
		ev := shipmentEventFromRow(row)
		if latest == nil || !ev.Timestamp.Before(latest.Timestamp) {
			latest = &ev
		}
	}
	if latest == nil {
		return nil, repository.ErrObjectNotFound
	}
	return latest, nil
}

func (r *EventRepo) stamp(ts *time.Time, id *string) {
	if ts.IsZero() {
		*ts = r.now()
	}
	if *id == "" {
		*id = uuid.NewString()
	}
}

func shipmentEventFromRow(row tabular.Row) repository.ShipmentEvent {
	ts, err := time.Parse(time.RFC3339Nano, row["timestamp"])
	if err != nil {
		ts = time.Time{}
	}
	return repository.ShipmentEvent{
		Timestamp:      ts,
		EventID:        row["event_id"],
		Topic:          row["topic"],
		ShipmentID:     row["shipment_id"],
		Reference:      row["reference"],
		RawStatus:      row["raw_status"],
		InternalStatus: row["internal_status"],
		Payload:        row["payload"],
	}
}
