package carrier

import "strings"

// Status is the internal shipment status a raw carrier status maps to.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

var rawStatuses = map[string]Status{
	"pending":          StatusPending,
	"created":          StatusPending,
	"new":              StatusPending,
	"label_created":    StatusPending,
	"ready_to_ship":    StatusPending,
	"awaiting_pickup":  StatusPending,
	"shipped":          StatusShipped,
	"dispatched":       StatusShipped,
	"picked_up":        StatusShipped,
	"in_transit":       StatusShipped,
	"out_for_delivery": StatusShipped,
	"delivered":        StatusDelivered,
	"cancelled":        StatusCancelled,
	"canceled":         StatusCancelled,
	"returned":         StatusCancelled,
	"failed":           StatusError,
	"exception":        StatusError,
}

// MapStatus translates a raw carrier status. Spacing, hyphens and case are
// ignored. Anything not in the table is StatusError.
func MapStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if s, ok := rawStatuses[key]; ok {
		return s
	}
	return StatusError
}

func (s Status) Known() bool {
	return s != StatusError
}
