package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/quote"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

const maxBodyBytes = 1 << 20

// handleQuote always answers 200 for a well-formed request; degraded quotes
// carry an error field instead of a failing status.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quote.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, s.deps.Quotes.Quote(r.Context(), req))
}

func (s *Server) handleResolveDestination(w http.ResponseWriter, r *http.Request) {
	dest, err := s.deps.Resolver.Resolve(r.Context(), r.PathValue("zipcode"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, dest)
}

type orderView struct {
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	ShipmentID     string `json:"shipment_id,omitempty"`
	ShipmentStatus string `json:"shipment_status,omitempty"`
	ShippingCost   string `json:"shipping_cost,omitempty"`
	PaymentStatus  string `json:"payment_status,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

func newOrderView(o *repository.Order) orderView {
	v := orderView{
		OrderID:        o.Key(),
		Status:         string(fulfillment.ParseStatus(o.Status)),
		ShipmentID:     o.ShipmentID,
		ShipmentStatus: o.ShipmentStatus,
		PaymentStatus:  o.PaymentStatus,
	}
	if !o.ShippingCost.IsZero() {
		v.ShippingCost = o.ShippingCost.String()
	}
	if !o.UpdatedAt.IsZero() {
		v.UpdatedAt = o.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return v
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	noStore(w)

	order, err := s.deps.Fulfillment.Order(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, statusFor(err), "Error: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, newOrderView(order))
}

func (s *Server) handleCreateShipment(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")

	res, err := s.deps.Fulfillment.CreateShipment(r.Context(), orderID)
	if err != nil {
		s.logger.Error("Shipment creation failed", zap.String("order", orderID), zap.Error(err))
		respondError(w, statusFor(err), "Error: "+err.Error())
		return
	}

	status := http.StatusCreated
	if res.Skipped {
		status = http.StatusOK
	}
	respondJSON(w, status, res)
}

func (s *Server) handleShipmentStatus(w http.ResponseWriter, r *http.Request) {
	noStore(w)

	event, err := s.deps.Events.LatestShipmentEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "No events for shipment")
			return
		}
		respondError(w, http.StatusBadGateway, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"shipment_id":     event.ShipmentID,
		"raw_status":      event.RawStatus,
		"internal_status": event.InternalStatus,
		"updated_at":      event.Timestamp.UTC().Format(time.RFC3339),
	})
}
