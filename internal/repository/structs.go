package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrObjectNotFound = errors.New("not found")

// Sheet names in the tabular store.
const (
	SheetOrders         = "orders"
	SheetZipCache       = "zip_cache"
	SheetVariants       = "variants"
	SheetShipmentEvents = "shipment_events"
	SheetQuoteEvents    = "quote_events"
)

// Order columns. The state machine writes only the columns it owns.
const (
	OrderColumnOrderID           = "order_id"
	OrderColumnDraftID           = "draft_id"
	OrderColumnExternalReference = "external_reference"
	OrderColumnCreatedAt         = "created_at"
	OrderColumnTotal             = "total"
	OrderColumnPriceMode         = "price_mode"
	OrderColumnCustomerName      = "customer_name"
	OrderColumnCustomerEmail     = "customer_email"
	OrderColumnCustomerPhone     = "customer_phone"
	OrderColumnItemsSummary      = "items_summary"
	OrderColumnItems             = "items"
	OrderColumnZipcode           = "zipcode"
	OrderColumnCity              = "city"
	OrderColumnState             = "state"
	OrderColumnAddress           = "address"
	OrderColumnStatus            = "status"
	OrderColumnShipmentID        = "shipment_id"
	OrderColumnShipmentStatus    = "shipment_status"
	OrderColumnShippingCost      = "shipping_cost"
	OrderColumnPaymentID         = "payment_id"
	OrderColumnPaymentStatus     = "payment_status"
	OrderColumnUpdatedAt         = "updated_at"
)

var OrderHeader = []string{
	OrderColumnOrderID, OrderColumnDraftID, OrderColumnExternalReference, OrderColumnCreatedAt,
	OrderColumnTotal, OrderColumnPriceMode, OrderColumnCustomerName, OrderColumnCustomerEmail,
	OrderColumnCustomerPhone, OrderColumnItemsSummary, OrderColumnItems, OrderColumnZipcode,
	OrderColumnCity, OrderColumnState, OrderColumnAddress, OrderColumnStatus,
	OrderColumnShipmentID, OrderColumnShipmentStatus, OrderColumnShippingCost,
	OrderColumnPaymentID, OrderColumnPaymentStatus, OrderColumnUpdatedAt,
}

var ZipCacheHeader = []string{"zipcode", "city", "state", "destination_id"}

var VariantHeader = []string{"sku", "weight_grams"}

var ShipmentEventHeader = []string{
	"timestamp", "event_id", "topic", "shipment_id", "reference",
	"raw_status", "internal_status", "payload",
}

var QuoteEventHeader = []string{
	"timestamp", "event_id", "event_type", "zipcode", "city", "state",
	"parcels", "total_grams", "missing_skus", "options_count", "option_id", "price", "error",
}

// Order is one row of the orders sheet. Identity is OrderID, or DraftID
// before checkout assigns one.
type Order struct {
	OrderID           string
	DraftID           string
	ExternalReference string
	CreatedAt         time.Time
	Total             decimal.Decimal
	PriceMode         string
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	ItemsSummary      string
	Items             string
	Zipcode           string
	City              string
	State             string
	Address           string
	Status            string
	ShipmentID        string
	ShipmentStatus    string
	ShippingCost      decimal.Decimal
	PaymentID         string
	PaymentStatus     string
	UpdatedAt         time.Time
}

func (o *Order) Key() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.DraftID
}

// MatchesReference reports whether ref names this order by any of its identities.
func (o *Order) MatchesReference(ref string) bool {
	if ref == "" {
		return false
	}
	return ref == o.OrderID || ref == o.DraftID || ref == o.ExternalReference
}

type ZipEntry struct {
	Zipcode       string `json:"zipcode"`
	City          string `json:"city"`
	State         string `json:"state"`
	DestinationID string `json:"destination_id,omitempty"`
}

func (e *ZipEntry) Complete() bool {
	return e.City != "" && e.State != ""
}

type Variant struct {
	SKU         string
	WeightGrams int
}

// ShipmentEvent is an append-only audit row written for every authenticated webhook.
type ShipmentEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	EventID        string    `json:"event_id"`
	Topic          string    `json:"topic"`
	ShipmentID     string    `json:"shipment_id"`
	Reference      string    `json:"reference,omitempty"`
	RawStatus      string    `json:"raw_status"`
	InternalStatus string    `json:"internal_status"`
	Payload        string    `json:"payload,omitempty"`
}

const (
	QuoteEventCreated  = "quote_created"
	QuoteEventSelected = "quote_selected"
)

type QuoteEvent struct {
	Timestamp    time.Time
	EventID      string
	EventType    string
	Zipcode      string
	City         string
	State        string
	Parcels      int
	TotalGrams   int
	MissingSKUs  []string
	OptionsCount int
	OptionID     string
	Price        int64
	Error        string
}
