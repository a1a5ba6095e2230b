package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payload"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

const (
	topicShipment = "shipment"
	topicPayment  = "payment"
)

// Field names differ between webhook versions; extractors run in order.
var (
	shipmentIDFields = []payload.Extractor{
		payload.Field("shipment_id"), payload.Field("shipmentId"), payload.Field("id"),
		payload.Field("data.id"), payload.Field("data.shipment_id"), payload.Field("shipment.id"),
	}
	shipmentStatusFields = []payload.Extractor{
		payload.Field("status"), payload.Field("shipment_status"), payload.Field("data.status"),
		payload.Field("event.status"), payload.Field("tracking.status"),
	}
	referenceFields = []payload.Extractor{
		payload.Field("external_reference"), payload.Field("order_id"), payload.Field("data.external_reference"),
	}
	topicFields = []payload.Extractor{
		payload.Field("topic"), payload.Field("type"), payload.Field("event.type"),
	}

	paymentIDFields = []payload.Extractor{
		payload.Field("data.id"), payload.Field("payment_id"), payload.Field("id"), payload.Field("resource"),
	}
	paymentStatusFields = []payload.Extractor{
		payload.Field("status"), payload.Field("data.status"), payload.Field("payment.status"),
	}
)

// authorized compares the token query parameter with the shared secret. An
// empty secret rejects everything.
func (s *Server) authorized(r *http.Request) bool {
	token := r.URL.Query().Get("token")
	if s.token == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

func readPayload(r *http.Request) (string, map[string]any) {
	raw, _ := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		doc = map[string]any{}
	}
	return string(raw), doc
}

// handleCarrierWebhook writes the audit row before anything else and only
// fails when that write fails. Order update errors are logged and
// acknowledged; the audit trail is what gets reconciled by hand.
func (s *Server) handleCarrierWebhook(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicShipment, "unauthorized").Inc()
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	raw, doc := readPayload(r)
	update := fulfillment.CarrierUpdate{
		ShipmentID: payload.First(doc, shipmentIDFields...),
		Reference:  payload.First(doc, referenceFields...),
		RawStatus:  payload.First(doc, shipmentStatusFields...),
	}
	internal := carrier.MapStatus(update.RawStatus)

	topic := payload.First(doc, topicFields...)
	if topic == "" {
		topic = topicShipment
	}

	event := repository.ShipmentEvent{
		Topic:          topic,
		ShipmentID:     update.ShipmentID,
		Reference:      update.Reference,
		RawStatus:      update.RawStatus,
		InternalStatus: string(internal),
		Payload:        raw,
	}
	if err := s.deps.Events.AppendShipmentEvent(r.Context(), event); err != nil {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicShipment, "audit_failed").Inc()
		s.logger.Error("Failed to append shipment event", zap.String("shipment_id", update.ShipmentID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to record event")
		return
	}

	resp := map[string]any{"received": true, "internal_status": internal}

	if update.ShipmentID == "" && update.Reference == "" {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicShipment, "ignored").Inc()
		s.logger.Warn("Carrier webhook without shipment id or reference")
		respondJSON(w, http.StatusOK, resp)
		return
	}

	t, err := s.deps.Fulfillment.ApplyCarrierStatus(r.Context(), update)
	if err != nil {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicShipment, "update_failed").Inc()
		s.logUpdateFailure("carrier", update.ShipmentID, err)
		respondJSON(w, http.StatusOK, resp)
		return
	}

	metrics.WebhooksReceivedTotal.WithLabelValues(topicShipment, "applied").Inc()
	resp["order_id"] = t.OrderID
	resp["status"] = t.To
	resp["changed"] = t.Changed
	respondJSON(w, http.StatusOK, resp)
}

// handlePaymentWebhook accepts both full payment payloads and thin
// notifications carrying only a payment id, which are looked up.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicPayment, "unauthorized").Inc()
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	raw, doc := readPayload(r)
	confirmation := fulfillment.PaymentConfirmation{
		PaymentID: payload.First(doc, paymentIDFields...),
		Reference: payload.First(doc, referenceFields...),
		Status:    payload.First(doc, paymentStatusFields...),
	}

	if (confirmation.Status == "" || confirmation.Reference == "") && confirmation.PaymentID != "" && s.deps.Payments != nil {
		p, err := s.deps.Payments.GetPayment(r.Context(), confirmation.PaymentID)
		if err != nil {
			s.logger.Warn("Payment lookup failed", zap.String("payment_id", confirmation.PaymentID), zap.Error(err))
		} else {
			if confirmation.Status == "" {
				confirmation.Status = p.Status
			}
			if confirmation.Reference == "" {
				confirmation.Reference = p.ExternalReference
			}
		}
	}

	event := repository.ShipmentEvent{
		Topic:          topicPayment,
		Reference:      confirmation.Reference,
		RawStatus:      confirmation.Status,
		InternalStatus: strings.ToLower(confirmation.Status),
		Payload:        raw,
	}
	if err := s.deps.Events.AppendShipmentEvent(r.Context(), event); err != nil {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicPayment, "audit_failed").Inc()
		s.logger.Error("Failed to append payment event", zap.String("payment_id", confirmation.PaymentID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to record event")
		return
	}

	resp := map[string]any{"received": true}

	if confirmation.Reference == "" {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicPayment, "ignored").Inc()
		s.logger.Warn("Payment webhook without external reference", zap.String("payment_id", confirmation.PaymentID))
		respondJSON(w, http.StatusOK, resp)
		return
	}

	t, err := s.deps.Fulfillment.ConfirmPayment(r.Context(), confirmation)
	if err != nil {
		metrics.WebhooksReceivedTotal.WithLabelValues(topicPayment, "update_failed").Inc()
		s.logUpdateFailure("payment", confirmation.Reference, err)
		respondJSON(w, http.StatusOK, resp)
		return
	}

	metrics.WebhooksReceivedTotal.WithLabelValues(topicPayment, "applied").Inc()
	resp["order_id"] = t.OrderID
	resp["status"] = t.To
	resp["changed"] = t.Changed
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) logUpdateFailure(source, id string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(source + "_webhook_update").Inc()
	fields := []zap.Field{zap.String("source", source), zap.String("id", id), zap.Error(err)}
	if errors.Is(err, fulfillment.ErrOrderNotFound) {
		s.logger.Warn("Webhook references an unknown order", fields...)
		return
	}
	s.logger.Error("Webhook order update failed", fields...)
}
