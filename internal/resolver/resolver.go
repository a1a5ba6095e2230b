// Package resolver turns a postal code into a city and state, trying the zip
// cache first and the carrier second.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/packer"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payload"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

var (
	ErrInvalidInput            = errors.New("invalid zipcode")
	ErrUnresolvableDestination = errors.New("destination not found, requires manual cache entry")
)

type Source string

const (
	SourceCache   Source = "cache"
	SourceResolve Source = "resolve"
	SourceQuote   Source = "quote"
)

type Destination struct {
	Zipcode       string `json:"zipcode"`
	City          string `json:"city"`
	State         string `json:"state"`
	DestinationID string `json:"destination_id,omitempty"`
	Source        Source `json:"source"`
}

//go:generate mockgen -source ./resolver.go -destination=./mocks/resolver.go -package=mock_resolver
type ZipCache interface {
	Get(ctx context.Context, zipcode string) (*repository.ZipEntry, error)
	PutIfAbsent(ctx context.Context, entry repository.ZipEntry) error
}

type Carrier interface {
	Resolve(ctx context.Context, zipcode string) (map[string]any, error)
	Quote(ctx context.Context, req carrier.QuoteRequest) (map[string]any, error)
}

// Resolve responses put the place at the top level or under destination or
// location. Quote responses carry it under destination, either at the top
// level or on each of all_results.
var (
	cityFields = []payload.Extractor{
		payload.Field("city"), payload.Field("destination.city"), payload.Field("location.city"),
		payload.Field("data.city"), firstResult("destination.city"),
	}
	stateFields = []payload.Extractor{
		payload.Field("state"), payload.Field("province"), payload.Field("destination.state"),
		payload.Field("destination.province"), payload.Field("location.state"),
		payload.Field("data.state"), firstResult("destination.state"),
	}
	destinationIDFields = []payload.Extractor{
		payload.Field("destination_id"), payload.Field("destination.id"),
		payload.Field("location.id"), firstResult("destination.id"),
	}
)

func firstResult(path string) payload.Extractor {
	return func(doc map[string]any) (string, bool) {
		results, ok := payload.Array(doc, "all_results")
		if !ok {
			return "", false
		}
		for _, r := range results {
			obj, ok := r.(map[string]any)
			if !ok {
				continue
			}
			if v := payload.First(obj, payload.Field(path)); v != "" {
				return v, true
			}
		}
		return "", false
	}
}

type Resolver struct {
	cache         ZipCache
	carrier       Carrier
	declaredValue decimal.Decimal
	group         singleflight.Group
	logger        *zap.Logger
}

// New builds a resolver. declaredValue is sent on the probe quote only.
func New(cache ZipCache, carrierClient Carrier, declaredValue decimal.Decimal, logger *zap.Logger) *Resolver {
	return &Resolver{
		cache:         cache,
		carrier:       carrierClient,
		declaredValue: declaredValue,
		logger:        logger.With(zap.String("component", "resolver")),
	}
}

func (r *Resolver) Resolve(ctx context.Context, zipcode string) (Destination, error) {
	zip := repository.NormalizeZipcode(zipcode)
	if zip == "" {
		return Destination{}, fmt.Errorf("%w: %q", ErrInvalidInput, zipcode)
	}

	// The shared lookup outlives any single caller; each caller only stops
	// waiting for it when its own context is done.
	ch := r.group.DoChan(zip, func() (any, error) {
		return r.resolve(context.WithoutCancel(ctx), zip)
	})
	select {
	case <-ctx.Done():
		return Destination{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Destination{}, res.Err
		}
		return res.Val.(Destination), nil
	}
}

func (r *Resolver) resolve(ctx context.Context, zip string) (Destination, error) {
	log := r.logger.With(zap.String("zipcode", zip))

	entry, err := r.cache.Get(ctx, zip)
	switch {
	case err == nil && entry.Complete():
		metrics.DestinationResolutionsTotal.WithLabelValues(string(SourceCache)).Inc()
		return toDestination(*entry, SourceCache), nil
	case err != nil && !errors.Is(err, repository.ErrObjectNotFound):
		log.Warn("Zip cache lookup failed", zap.Error(err))
	}

	body, resolveErr := r.carrier.Resolve(ctx, zip)
	if resolveErr != nil {
		log.Info("Resolve endpoint failed", zap.Error(resolveErr))
	} else if entry, ok := extract(zip, body); ok {
		return r.remember(ctx, entry, SourceResolve), nil
	} else {
		log.Info("Resolve endpoint returned no city and state")
	}

	body, probeErr := r.carrier.Quote(ctx, probeRequest(zip, r.declaredValue))
	if probeErr != nil {
		log.Info("Probe quote failed", zap.Error(probeErr))
	} else if entry, ok := extract(zip, body); ok {
		return r.remember(ctx, entry, SourceQuote), nil
	}

	// An outage says nothing about the zipcode itself.
	if errors.Is(resolveErr, carrier.ErrUnavailable) && errors.Is(probeErr, carrier.ErrUnavailable) {
		metrics.DestinationResolutionsTotal.WithLabelValues("unavailable").Inc()
		log.Warn("Carrier unavailable, zipcode left unresolved")
		return Destination{}, fmt.Errorf("resolve %s: %w", zip, probeErr)
	}

	metrics.DestinationResolutionsTotal.WithLabelValues("unresolved").Inc()
	log.Warn("Zipcode could not be resolved")
	return Destination{}, fmt.Errorf("%w: %s", ErrUnresolvableDestination, zip)
}

// remember writes the entry through to the cache before returning it. A
// failed write is logged; the resolution itself still succeeds.
func (r *Resolver) remember(ctx context.Context, entry repository.ZipEntry, source Source) Destination {
	if err := r.cache.PutIfAbsent(ctx, entry); err != nil {
		r.logger.Error("Failed to write zip cache entry",
			zap.String("zipcode", entry.Zipcode), zap.Error(err))
		metrics.OperationErrorsTotal.WithLabelValues("zip_cache_write").Inc()
	}
	metrics.DestinationResolutionsTotal.WithLabelValues(string(source)).Inc()
	return toDestination(entry, source)
}

func extract(zip string, body map[string]any) (repository.ZipEntry, bool) {
	entry := repository.ZipEntry{
		Zipcode:       zip,
		City:          payload.First(body, cityFields...),
		State:         payload.First(body, stateFields...),
		DestinationID: payload.First(body, destinationIDFields...),
	}.Canonical()
	return entry, entry.Complete()
}

func probeRequest(zip string, declaredValue decimal.Decimal) carrier.QuoteRequest {
	return carrier.QuoteRequest{
		DeclaredValue: declaredValue.InexactFloat64(),
		Items:         packer.CarrierItems(packer.PackWeight(0)),
		Destination:   carrier.Destination{Zipcode: zip},
	}
}

func toDestination(e repository.ZipEntry, source Source) Destination {
	return Destination{
		Zipcode:       e.Zipcode,
		City:          e.City,
		State:         e.State,
		DestinationID: e.DestinationID,
		Source:        source,
	}
}
