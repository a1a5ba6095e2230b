// Package fulfillment owns the order lifecycle. Payment and carrier webhooks
// arrive independently; every mutation of one order runs under that order's
// lock and is written as a column update, never as a row rewrite.
package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/packer"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order transition")
	ErrInvalidInput      = errors.New("invalid input")
)

//go:generate mockgen -source ./machine.go -destination=./mocks/machine.go -package=mock_fulfillment
type OrderStore interface {
	GetByReference(ctx context.Context, ref string) (*repository.Order, error)
	GetByShipmentID(ctx context.Context, shipmentID string) (*repository.Order, error)
	UpdateColumns(ctx context.Context, key string, values map[string]string) error
}

type ShipmentCarrier interface {
	CreateShipment(ctx context.Context, req carrier.ShipmentRequest) (*carrier.Shipment, error)
}

type ParcelPacker interface {
	Pack(ctx context.Context, items []packer.LineItem, totalGramsOverride *int) (packer.Result, error)
}

type DestinationResolver interface {
	Resolve(ctx context.Context, zipcode string) (resolver.Destination, error)
}

type PaymentConfirmation struct {
	Reference string
	PaymentID string
	Status    string
}

type CarrierUpdate struct {
	ShipmentID string
	Reference  string
	RawStatus  string
}

type Transition struct {
	OrderID        string         `json:"order_id"`
	From           Status         `json:"from"`
	To             Status         `json:"to"`
	Changed        bool           `json:"changed"`
	InternalStatus carrier.Status `json:"internal_status,omitempty"`
}

type ShipmentResult struct {
	OrderID    string `json:"order_id"`
	ShipmentID string `json:"shipment_id"`
	Status     string `json:"status"`
	Skipped    bool   `json:"skipped"`
}

type Machine struct {
	orders   OrderStore
	carrier  ShipmentCarrier
	packer   ParcelPacker
	resolver DestinationResolver
	locks    *keyedMutex
	logger   *zap.Logger
}

func NewMachine(orders OrderStore, c ShipmentCarrier, p ParcelPacker, r DestinationResolver, logger *zap.Logger) *Machine {
	return &Machine{
		orders:   orders,
		carrier:  c,
		packer:   p,
		resolver: r,
		locks:    newKeyedMutex(),
		logger:   logger.With(zap.String("component", "fulfillment")),
	}
}

func (m *Machine) Order(ctx context.Context, ref string) (*repository.Order, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("%w: empty order reference", ErrInvalidInput)
	}
	return m.load(func() (*repository.Order, error) { return m.orders.GetByReference(ctx, ref) })
}

// ConfirmPayment records a payment against the order and moves Pendiente to
// Pagado when it is approved. A cancelled order never transitions.
func (m *Machine) ConfirmPayment(ctx context.Context, p PaymentConfirmation) (Transition, error) {
	if strings.TrimSpace(p.Reference) == "" {
		return Transition{}, fmt.Errorf("%w: payment without external reference", ErrInvalidInput)
	}

	order, unlock, err := m.lockOrder(ctx, func() (*repository.Order, error) {
		return m.orders.GetByReference(ctx, p.Reference)
	})
	if err != nil {
		return Transition{}, err
	}
	defer unlock()

	from := ParseStatus(order.Status)
	t := Transition{OrderID: order.Key(), From: from, To: from}

	columns := map[string]string{}
	if p.PaymentID != "" && p.PaymentID != order.PaymentID {
		columns[repository.OrderColumnPaymentID] = p.PaymentID
	}
	if p.Status != "" && p.Status != order.PaymentStatus {
		columns[repository.OrderColumnPaymentStatus] = p.Status
	}

	approved := payment.IsApproved(p.Status)
	switch {
	case approved && from == StatusPending:
		t.To, t.Changed = StatusPaid, true
		columns[repository.OrderColumnStatus] = string(StatusPaid)
	case approved && from == StatusCancelled:
		m.logger.Warn("Approved payment for a cancelled order",
			zap.String("order", order.Key()), zap.String("payment_id", p.PaymentID))
	}

	if err := m.write(ctx, order, columns); err != nil {
		return Transition{}, err
	}
	m.observe(t)
	return t, nil
}

// CreateShipment creates the carrier shipment for a paid order at most once.
// An order that already has a shipment id is reported as skipped.
func (m *Machine) CreateShipment(ctx context.Context, ref string) (ShipmentResult, error) {
	if strings.TrimSpace(ref) == "" {
		return ShipmentResult{}, fmt.Errorf("%w: empty order reference", ErrInvalidInput)
	}

	order, unlock, err := m.lockOrder(ctx, func() (*repository.Order, error) {
		return m.orders.GetByReference(ctx, ref)
	})
	if err != nil {
		return ShipmentResult{}, err
	}
	defer unlock()

	log := m.logger.With(zap.String("order", order.Key()))

	if order.ShipmentID != "" {
		metrics.ShipmentsSkippedTotal.Inc()
		log.Info("Shipment already exists, skipping", zap.String("shipment_id", order.ShipmentID))
		return ShipmentResult{
			OrderID:    order.Key(),
			ShipmentID: order.ShipmentID,
			Status:     order.ShipmentStatus,
			Skipped:    true,
		}, nil
	}

	if status := ParseStatus(order.Status); status != StatusPaid {
		return ShipmentResult{}, fmt.Errorf("%w: shipment requires %q, order is %q", ErrInvalidTransition, StatusPaid, status)
	}

	req, err := m.shipmentRequest(ctx, order)
	if err != nil {
		return ShipmentResult{}, err
	}

	shipment, err := m.carrier.CreateShipment(ctx, req)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_shipment").Inc()
		return ShipmentResult{}, fmt.Errorf("failed to create shipment: %w", err)
	}

	status := carrier.MapStatus(shipment.Status)
	if !status.Known() {
		status = carrier.StatusPending
	}

	columns := map[string]string{
		repository.OrderColumnShipmentID:     shipment.ID,
		repository.OrderColumnShipmentStatus: string(status),
	}
	if shipment.Price.IsPositive() {
		columns[repository.OrderColumnShippingCost] = shipment.Price.String()
	}

	if err := m.write(ctx, order, columns); err != nil {
		// The carrier already holds this shipment; the id is only in the log now.
		log.Error("Shipment created but not recorded on the order",
			zap.String("shipment_id", shipment.ID), zap.Error(err))
		return ShipmentResult{}, err
	}

	metrics.ShipmentsCreatedTotal.Inc()
	log.Info("Shipment created", zap.String("shipment_id", shipment.ID), zap.String("status", string(status)))

	return ShipmentResult{OrderID: order.Key(), ShipmentID: shipment.ID, Status: string(status)}, nil
}

// ApplyCarrierStatus maps a raw carrier status and moves the order when the
// mapped status applies to its current state. Unknown statuses never move it.
func (m *Machine) ApplyCarrierStatus(ctx context.Context, u CarrierUpdate) (Transition, error) {
	if u.ShipmentID == "" && u.Reference == "" {
		return Transition{}, fmt.Errorf("%w: carrier update without shipment id or reference", ErrInvalidInput)
	}

	signal := carrier.MapStatus(u.RawStatus)

	order, unlock, err := m.lockOrder(ctx, func() (*repository.Order, error) {
		order, err := m.orders.GetByShipmentID(ctx, u.ShipmentID)
		if errors.Is(err, repository.ErrObjectNotFound) && u.Reference != "" {
			return m.orders.GetByReference(ctx, u.Reference)
		}
		return order, err
	})
	if err != nil {
		return Transition{}, err
	}
	defer unlock()

	from := ParseStatus(order.Status)
	t := Transition{OrderID: order.Key(), From: from, To: from, InternalStatus: signal}

	if !signal.Known() {
		metrics.UnknownCarrierStatusTotal.Inc()
		m.logger.Warn("Unknown carrier status, order left unchanged",
			zap.String("order", order.Key()),
			zap.String("shipment_id", u.ShipmentID),
			zap.String("raw_status", u.RawStatus),
		)
		return t, nil
	}

	columns := map[string]string{}
	if to, ok := carrierTarget(from, signal); ok {
		t.To, t.Changed = to, true
		columns[repository.OrderColumnStatus] = string(to)
	}
	// A terminal order keeps the shipment status it finished with.
	if !from.Terminal() && order.ShipmentStatus != string(signal) {
		columns[repository.OrderColumnShipmentStatus] = string(signal)
	}
	if order.ShipmentID == "" && u.ShipmentID != "" {
		columns[repository.OrderColumnShipmentID] = u.ShipmentID
	}

	if err := m.write(ctx, order, columns); err != nil {
		return Transition{}, err
	}
	m.observe(t)
	return t, nil
}

// lockOrder finds the order, takes its lock and reads it again so the caller
// decides on the state no other writer of this process can change.
func (m *Machine) lockOrder(ctx context.Context, find func() (*repository.Order, error)) (*repository.Order, func(), error) {
	order, err := m.load(find)
	if err != nil {
		return nil, nil, err
	}

	key := order.Key()
	unlock := m.locks.Lock(key)

	order, err = m.load(func() (*repository.Order, error) { return m.orders.GetByReference(ctx, key) })
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return order, unlock, nil
}

func (m *Machine) load(find func() (*repository.Order, error)) (*repository.Order, error) {
	order, err := find()
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (m *Machine) write(ctx context.Context, order *repository.Order, columns map[string]string) error {
	if len(columns) == 0 {
		return nil
	}
	if err := m.orders.UpdateColumns(ctx, order.Key(), columns); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("order_update").Inc()
		if errors.Is(err, repository.ErrObjectNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order %s: %w", order.Key(), err)
	}
	return nil
}

func (m *Machine) observe(t Transition) {
	if !t.Changed {
		return
	}
	metrics.OrderTransitionsTotal.WithLabelValues(string(t.From), string(t.To)).Inc()
	m.logger.Info("Order status changed",
		zap.String("order", t.OrderID),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
	)
}

type orderItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

func (m *Machine) shipmentRequest(ctx context.Context, order *repository.Order) (carrier.ShipmentRequest, error) {
	var items []orderItem
	if strings.TrimSpace(order.Items) != "" {
		if err := json.Unmarshal([]byte(order.Items), &items); err != nil {
			return carrier.ShipmentRequest{}, fmt.Errorf("%w: order items: %v", ErrInvalidInput, err)
		}
	}

	lines := make([]packer.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, packer.LineItem{SKU: it.SKU, Quantity: it.Quantity})
	}
	packed, err := m.packer.Pack(ctx, lines, nil)
	if err != nil {
		return carrier.ShipmentRequest{}, fmt.Errorf("failed to pack order: %w", err)
	}

	dest := carrier.Destination{
		Zipcode: repository.NormalizeZipcode(order.Zipcode),
		City:    repository.CanonicalPlace(order.City),
		State:   repository.CanonicalPlace(order.State),
		Address: order.Address,
	}
	if dest.City == "" || dest.State == "" {
		resolved, err := m.resolver.Resolve(ctx, order.Zipcode)
		if err != nil {
			return carrier.ShipmentRequest{}, fmt.Errorf("failed to resolve order destination: %w", err)
		}
		dest.Zipcode, dest.City, dest.State = resolved.Zipcode, resolved.City, resolved.State
	}

	return carrier.ShipmentRequest{
		ExternalReference: order.Key(),
		DeclaredValue:     order.Total.InexactFloat64(),
		Items:             packer.CarrierItems(packed.Parcels),
		Destination:       dest,
		Recipient: carrier.Recipient{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
			Phone: order.CustomerPhone,
		},
	}, nil
}
