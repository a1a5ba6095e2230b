// Package quote prices shipping for a cart. Quote never fails: every error
// path degrades to an empty or estimated result so the checkout is never
// blocked by the carrier.
package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/packer"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver"
)

const (
	EstimatedOptionID = "estimated"
	TagEstimated      = "estimated"
)

// Messages returned in Result.Error.
const (
	errInvalidZipcode     = "invalid zipcode"
	errUnresolvable       = "destination not found, requires manual cache entry"
	errResolveFailed      = "destination could not be resolved"
	errPackingFailed      = "cart could not be packed"
	errCarrierUnavailable = "carrier unavailable"
	errCarrierRejected    = "carrier rejected the quote request"
	errNoOptions          = "no shipping options available"
)

//go:generate mockgen -source ./engine.go -destination=./mocks/engine.go -package=mock_quote
type DestinationResolver interface {
	Resolve(ctx context.Context, zipcode string) (resolver.Destination, error)
}

type ParcelPacker interface {
	Pack(ctx context.Context, items []packer.LineItem, totalGramsOverride *int) (packer.Result, error)
}

type RateCarrier interface {
	Quote(ctx context.Context, req carrier.QuoteRequest) (map[string]any, error)
}

type EventLog interface {
	AppendQuoteEvent(ctx context.Context, event repository.QuoteEvent) error
}

type Config struct {
	PlaceholderPrice  int64
	EstimatedFallback bool
}

type Request struct {
	Zipcode       string            `json:"zipcode"`
	City          string            `json:"city,omitempty"`
	State         string            `json:"state,omitempty"`
	DeclaredValue decimal.Decimal   `json:"declared_value"`
	Items         []packer.LineItem `json:"items"`
	TotalGrams    *int              `json:"total_grams,omitempty"`
}

type Result struct {
	Options     []Option              `json:"options"`
	SelectedID  string                `json:"selected_id,omitempty"`
	Destination *resolver.Destination `json:"destination,omitempty"`
	Parcels     []packer.Parcel       `json:"parcels,omitempty"`
	MissingSKUs []string              `json:"missing_skus,omitempty"`
	Estimated   bool                  `json:"estimated,omitempty"`
	Error       string                `json:"error,omitempty"`
}

type Engine struct {
	resolver DestinationResolver
	packer   ParcelPacker
	carrier  RateCarrier
	events   EventLog
	cfg      Config
	logger   *zap.Logger
}

func NewEngine(r DestinationResolver, p ParcelPacker, c RateCarrier, events EventLog, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{
		resolver: r,
		packer:   p,
		carrier:  c,
		events:   events,
		cfg:      cfg,
		logger:   logger.With(zap.String("component", "quote")),
	}
}

func (e *Engine) Quote(ctx context.Context, req Request) Result {
	res := e.quote(ctx, req)
	if res.Options == nil {
		res.Options = []Option{}
	}

	switch {
	case res.Estimated:
		metrics.QuotesTotal.WithLabelValues("estimated").Inc()
	case len(res.Options) > 0:
		metrics.QuotesTotal.WithLabelValues("priced").Inc()
	default:
		metrics.QuotesTotal.WithLabelValues("empty").Inc()
	}

	e.audit(ctx, req, res)
	return res
}

func (e *Engine) quote(ctx context.Context, req Request) Result {
	zip := repository.NormalizeZipcode(req.Zipcode)
	if zip == "" {
		return Result{Error: errInvalidZipcode}
	}

	var (
		dest    resolver.Destination
		packed  packer.Result
		resErr  error
		packErr error
	)

	// Both steps always run to completion so each error is reported as is.
	var g errgroup.Group
	if city, state := strings.TrimSpace(req.City), strings.TrimSpace(req.State); city != "" && state != "" {
		dest = resolver.Destination{
			Zipcode: zip,
			City:    repository.CanonicalPlace(city),
			State:   repository.CanonicalPlace(state),
		}
	} else {
		g.Go(func() error {
			dest, resErr = e.resolver.Resolve(ctx, zip)
			return resErr
		})
	}
	g.Go(func() error {
		packed, packErr = e.packer.Pack(ctx, req.Items, req.TotalGrams)
		return packErr
	})
	_ = g.Wait()

	res := Result{}
	if resErr == nil {
		res.Destination = &dest
	}
	if packErr == nil {
		res.Parcels = packed.Parcels
		res.MissingSKUs = packed.MissingSKUs
	}

	switch {
	case errors.Is(resErr, resolver.ErrInvalidInput):
		res.Error = errInvalidZipcode
		return res
	case errors.Is(resErr, resolver.ErrUnresolvableDestination):
		res.Error = errUnresolvable
		return res
	case errors.Is(resErr, carrier.ErrUnavailable):
		return e.degrade(res, resErr)
	case resErr != nil:
		e.logger.Error("Destination resolution failed", zap.String("zipcode", zip), zap.Error(resErr))
		res.Error = errResolveFailed
		return res
	case packErr != nil:
		e.logger.Error("Packing failed", zap.Error(packErr))
		metrics.OperationErrorsTotal.WithLabelValues("pack").Inc()
		res.Error = errPackingFailed
		return res
	}

	body, err := e.carrier.Quote(ctx, rateRequest(req.DeclaredValue, dest, packed.Parcels))
	if err != nil {
		return e.degrade(res, err)
	}

	res.Options = Normalize(body)
	if len(res.Options) == 0 {
		res.Error = errNoOptions
		return res
	}
	if selected, ok := Select(res.Options); ok {
		res.SelectedID = selected.ID
	}
	return res
}

func (e *Engine) degrade(res Result, err error) Result {
	if !errors.Is(err, carrier.ErrUnavailable) {
		e.logger.Warn("Carrier rejected quote request", zap.Error(err))
		res.Error = errCarrierRejected
		return res
	}

	e.logger.Warn("Carrier unavailable, degrading quote", zap.Error(err),
		zap.Bool("estimated_fallback", e.cfg.EstimatedFallback))
	metrics.OperationErrorsTotal.WithLabelValues("carrier_quote").Inc()

	res.Error = errCarrierUnavailable
	if !e.cfg.EstimatedFallback {
		return res
	}
	estimated := Option{
		ID:    EstimatedOptionID,
		Name:  "Estimated shipping",
		Price: e.cfg.PlaceholderPrice,
		Tags:  []string{TagEstimated},
	}
	res.Options = []Option{estimated}
	res.SelectedID = estimated.ID
	res.Estimated = true
	return res
}

// audit writes quote_created always and quote_selected when an option was
// picked. The selection is informational and binds nobody. Failures are
// logged only.
func (e *Engine) audit(ctx context.Context, req Request, res Result) {
	base := repository.QuoteEvent{
		Zipcode:      repository.NormalizeZipcode(req.Zipcode),
		Parcels:      len(res.Parcels),
		MissingSKUs:  res.MissingSKUs,
		OptionsCount: len(res.Options),
		Error:        res.Error,
	}
	if res.Destination != nil {
		base.City = res.Destination.City
		base.State = res.Destination.State
	}
	for _, p := range res.Parcels {
		base.TotalGrams += p.WeightGrams
	}

	created := base
	created.EventType = repository.QuoteEventCreated
	if err := e.events.AppendQuoteEvent(ctx, created); err != nil {
		e.logAuditFailure(created.EventType, err)
	}

	if res.SelectedID == "" {
		return
	}
	for _, o := range res.Options {
		if o.ID != res.SelectedID {
			continue
		}
		selected := base
		selected.EventType = repository.QuoteEventSelected
		selected.OptionID = o.ID
		selected.Price = o.Price
		if err := e.events.AppendQuoteEvent(ctx, selected); err != nil {
			e.logAuditFailure(selected.EventType, err)
		}
		return
	}
}

func (e *Engine) logAuditFailure(eventType string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues("quote_audit").Inc()
	e.logger.Error("Failed to write quote audit event", zap.String("event_type", eventType), zap.Error(err))
}

func rateRequest(declared decimal.Decimal, dest resolver.Destination, parcels []packer.Parcel) carrier.QuoteRequest {
	return carrier.QuoteRequest{
		DeclaredValue: declared.InexactFloat64(),
		Items:         packer.CarrierItems(parcels),
		Destination: carrier.Destination{
			Zipcode: dest.Zipcode,
			City:    dest.City,
			State:   dest.State,
		},
	}
}
