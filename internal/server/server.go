//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/quote"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver"
)

type QuoteEngine interface {
	Quote(ctx context.Context, req quote.Request) quote.Result
}

type DestinationResolver interface {
	Resolve(ctx context.Context, zipcode string) (resolver.Destination, error)
}

type Fulfillment interface {
	Order(ctx context.Context, ref string) (*repository.Order, error)
	ConfirmPayment(ctx context.Context, p fulfillment.PaymentConfirmation) (fulfillment.Transition, error)
	CreateShipment(ctx context.Context, ref string) (fulfillment.ShipmentResult, error)
	ApplyCarrierStatus(ctx context.Context, u fulfillment.CarrierUpdate) (fulfillment.Transition, error)
}

type ShipmentEvents interface {
	AppendShipmentEvent(ctx context.Context, event repository.ShipmentEvent) error
	LatestShipmentEvent(ctx context.Context, shipmentID string) (*repository.ShipmentEvent, error)
}

type PaymentLookup interface {
	GetPayment(ctx context.Context, id string) (*payment.Payment, error)
}

type Deps struct {
	Quotes      QuoteEngine
	Resolver    DestinationResolver
	Fulfillment Fulfillment
	Events      ShipmentEvents
	// Payments is optional; without it thin payment notifications are
	// recorded but cannot be resolved.
	Payments PaymentLookup
}

type Config struct {
	WebhookToken      string
	AuditTopic        string
	AuditWorkers      int
	AuditBatchSize    int
	AuditFlushTimeout time.Duration
}

type Server struct {
	deps         Deps
	token        string
	server       *http.Server
	AuditManager *AuditManager
	logger       *zap.Logger
}

func New(deps Deps, cfg Config, producer kafka.Producer, logger *zap.Logger) *Server {
	logger = logger.With(zap.String("component", "http"))
	return &Server{
		deps:         deps,
		token:        cfg.WebhookToken,
		AuditManager: NewAuditManager(producer, cfg.AuditTopic, cfg.AuditWorkers, cfg.AuditBatchSize, cfg.AuditFlushTimeout, logger),
		logger:       logger,
	}
}

// Run serves until Shutdown is called. The audit manager lives as long as ctx.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("HTTP server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("HTTP server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /quotes", instrumentHandler("quote", s.handleQuote))
	mux.HandleFunc("GET /destinations/{zipcode}", instrumentHandler("resolve_destination", s.handleResolveDestination))

	mux.HandleFunc("GET /orders/{id}", instrumentHandler("get_order", s.handleGetOrder))
	mux.HandleFunc("POST /orders/{id}/shipment", instrumentHandler("create_shipment", s.handleCreateShipment))
	mux.HandleFunc("GET /shipments/{id}/status", instrumentHandler("shipment_status", s.handleShipmentStatus))

	mux.HandleFunc("POST /webhook", instrumentHandler("carrier_webhook", s.handleCarrierWebhook))
	mux.HandleFunc("POST /webhook/payment", instrumentHandler("payment_webhook", s.handlePaymentWebhook))

	mux.Handle("GET /metrics", promhttp.Handler())

	return s.auditLogMiddleware(mux)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// noStore marks order and shipment state reads as uncacheable.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, resolver.ErrInvalidInput), errors.Is(err, fulfillment.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrUnresolvableDestination),
		errors.Is(err, fulfillment.ErrOrderNotFound),
		errors.Is(err, repository.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, fulfillment.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
