package server

import (
	"time"
)

// AuditLogEntry is one HTTP access record published to the audit topic.
type AuditLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Handler    string    `json:"handler"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMs int64     `json:"duration_ms"`
	OrderID    string    `json:"order_id,omitempty"`
	ShipmentID string    `json:"shipment_id,omitempty"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
