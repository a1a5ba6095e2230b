package fulfillment

import (
	"strings"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
)

// Status is the order status as stored in the orders sheet.
type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusPaid      Status = "Pagado"
	StatusInTransit Status = "En camino"
	StatusDelivered Status = "Entregado"
	StatusCancelled Status = "Cancelado"
)

var knownStatuses = []Status{StatusPending, StatusPaid, StatusInTransit, StatusDelivered, StatusCancelled}

// ParseStatus reads a stored status. Rows are editable by hand, so case and
// surrounding spaces are ignored; an empty cell is Pendiente.
func ParseStatus(raw string) Status {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StatusPending
	}
	for _, s := range knownStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s
		}
	}
	return Status(raw)
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// carrierTarget returns the order status a carrier signal moves from to. The
// second result is false when the signal does not apply in from.
func carrierTarget(from Status, signal carrier.Status) (Status, bool) {
	switch signal {
	case carrier.StatusShipped:
		if from == StatusPaid {
			return StatusInTransit, true
		}
	case carrier.StatusDelivered:
		if from == StatusPaid || from == StatusInTransit {
			return StatusDelivered, true
		}
	case carrier.StatusCancelled:
		if from == StatusPending || from == StatusPaid || from == StatusInTransit {
			return StatusCancelled, true
		}
	}
	return from, false
}
