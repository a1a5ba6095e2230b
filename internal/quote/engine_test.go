package quote_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/packer"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/quote"
	mock_quote "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/quote/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver"
)

type fixture struct {
	resolver *mock_quote.MockDestinationResolver
	packer   *mock_quote.MockParcelPacker
	carrier  *mock_quote.MockRateCarrier
	events   *mock_quote.MockEventLog
	engine   *quote.Engine
}

func newFixture(t *testing.T, cfg quote.Config) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		resolver: mock_quote.NewMockDestinationResolver(ctrl),
		packer:   mock_quote.NewMockParcelPacker(ctrl),
		carrier:  mock_quote.NewMockRateCarrier(ctrl),
		events:   mock_quote.NewMockEventLog(ctrl),
	}
	f.engine = quote.NewEngine(f.resolver, f.packer, f.carrier, f.events, cfg, zap.NewNop())
	return f
}

var (
	rosario   = resolver.Destination{Zipcode: "2000", City: "rosario", State: "santa fe", Source: resolver.SourceCache}
	oneParcel = packer.Result{Parcels: packer.PackWeight(800), TotalGrams: 800}
	request   = quote.Request{
		Zipcode:       "2000",
		DeclaredValue: decimal.RequireFromString("15000"),
		Items:         []packer.LineItem{{SKU: "A", Quantity: 2}},
	}
)

func recordEvents(events *[]repository.QuoteEvent) func(context.Context, repository.QuoteEvent) error {
	return func(_ context.Context, ev repository.QuoteEvent) error {
		*events = append(*events, ev)
		return nil
	}
}

func TestEngine_Quote_Priced(t *testing.T) {
	f := newFixture(t, quote.Config{PlaceholderPrice: 5000, EstimatedFallback: true})

	f.resolver.EXPECT().Resolve(gomock.Any(), "2000").Return(rosario, nil)
	f.packer.EXPECT().Pack(gomock.Any(), request.Items, nil).Return(oneParcel, nil)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req carrier.QuoteRequest) (map[string]any, error) {
			assert.Equal(t, 15000.0, req.DeclaredValue)
			assert.Equal(t, "rosario", req.Destination.City)
			require.Len(t, req.Items, 1)
			assert.Equal(t, 800, req.Items[0].Weight)
			return map[string]any{"all_results": []any{
				map[string]any{"carrier_id": "oca", "service_id": "exp", "price": 5200.0},
				map[string]any{"carrier_id": "oca", "service_id": "std", "price": 3100.0},
			}}, nil
		})

	var events []repository.QuoteEvent
	f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).DoAndReturn(recordEvents(&events)).Times(2)

	res := f.engine.Quote(context.Background(), request)

	assert.Empty(t, res.Error)
	require.Len(t, res.Options, 2)
	assert.Equal(t, "oca_std", res.Options[0].ID)
	assert.Equal(t, "oca_std", res.SelectedID)

	require.Len(t, events, 2)
	assert.Equal(t, repository.QuoteEventCreated, events[0].EventType)
	assert.Equal(t, 2, events[0].OptionsCount)
	assert.Equal(t, 800, events[0].TotalGrams)
	assert.Equal(t, repository.QuoteEventSelected, events[1].EventType)
	assert.Equal(t, int64(3100), events[1].Price)
}

func TestEngine_Quote_SuppliedPlaceSkipsResolver(t *testing.T) {
	f := newFixture(t, quote.Config{})

	f.packer.EXPECT().Pack(gomock.Any(), gomock.Any(), gomock.Any()).Return(oneParcel, nil)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req carrier.QuoteRequest) (map[string]any, error) {
			assert.Equal(t, "córdoba", req.Destination.City)
			return map[string]any{"options": []any{map[string]any{"id": "x", "price": 100.0}}}, nil
		})
	f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	req := request
	req.Zipcode, req.City, req.State = "5000", "Córdoba", " CÓRDOBA "
	res := f.engine.Quote(context.Background(), req)

	require.Len(t, res.Options, 1)
	assert.Equal(t, "córdoba", res.Destination.State)
}

func TestEngine_Quote_Degraded(t *testing.T) {
	tests := []struct {
		name        string
		cfg         quote.Config
		zipcode     string
		resolveErr  error
		carrierErr  error
		carrierBody map[string]any
		wantOptions []string
		wantError   string
		wantEvents  int
	}{
		{
			name:       "invalid zipcode",
			zipcode:    "abc",
			wantError:  "invalid zipcode",
			wantEvents: 1,
		},
		{
			name:       "unresolvable destination",
			zipcode:    "1234",
			resolveErr: fmt.Errorf("%w: 1234", resolver.ErrUnresolvableDestination),
			wantError:  "destination not found, requires manual cache entry",
			wantEvents: 1,
		},
		{
			name:        "carrier down with estimated fallback",
			cfg:         quote.Config{PlaceholderPrice: 5000, EstimatedFallback: true},
			zipcode:     "2000",
			carrierErr:  fmt.Errorf("%w: HTTP 503", carrier.ErrUnavailable),
			wantOptions: []string{quote.EstimatedOptionID},
			wantError:   "carrier unavailable",
			wantEvents:  2,
		},
		{
			name:       "carrier down without fallback",
			zipcode:    "2000",
			carrierErr: fmt.Errorf("%w: HTTP 503", carrier.ErrUnavailable),
			wantError:  "carrier unavailable",
			wantEvents: 1,
		},
		{
			name:       "carrier rejects",
			cfg:        quote.Config{PlaceholderPrice: 5000, EstimatedFallback: true},
			zipcode:    "2000",
			carrierErr: fmt.Errorf("%w: HTTP 422", carrier.ErrRequestFailed),
			wantError:  "carrier rejected the quote request",
			wantEvents: 1,
		},
		{
			name:        "no priced options",
			zipcode:     "2000",
			carrierBody: map[string]any{"all_results": []any{map[string]any{"price": 10.0, "selectable": false}}},
			wantError:   "no shipping options available",
			wantEvents:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.cfg)

			if tc.zipcode != "abc" {
				dest := rosario
				dest.Zipcode = tc.zipcode
				f.resolver.EXPECT().Resolve(gomock.Any(), tc.zipcode).Return(dest, tc.resolveErr)
				f.packer.EXPECT().Pack(gomock.Any(), gomock.Any(), gomock.Any()).Return(oneParcel, nil)
			}
			if tc.resolveErr == nil && tc.zipcode != "abc" {
				f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(tc.carrierBody, tc.carrierErr)
			}
			f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).Return(nil).Times(tc.wantEvents)

			req := request
			req.Zipcode = tc.zipcode
			res := f.engine.Quote(context.Background(), req)

			ids := []string{}
			for _, o := range res.Options {
				ids = append(ids, o.ID)
			}
			if tc.wantOptions == nil {
				tc.wantOptions = []string{}
			}
			assert.Equal(t, tc.wantOptions, ids)
			assert.Equal(t, tc.wantError, res.Error)
			assert.NotNil(t, res.Options)
		})
	}
}

func TestEngine_Quote_EstimatedOption(t *testing.T) {
	f := newFixture(t, quote.Config{PlaceholderPrice: 4999, EstimatedFallback: true})

	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(rosario, nil)
	f.packer.EXPECT().Pack(gomock.Any(), gomock.Any(), gomock.Any()).Return(oneParcel, nil)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, carrier.ErrUnavailable)
	f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res := f.engine.Quote(context.Background(), request)

	require.Len(t, res.Options, 1)
	assert.True(t, res.Estimated)
	assert.Equal(t, int64(4999), res.Options[0].Price)
	assert.Equal(t, []string{quote.TagEstimated}, res.Options[0].Tags)
}

func TestEngine_Quote_CarrierDownForUncachedZipcode(t *testing.T) {
	tests := []struct {
		name        string
		fallback    bool
		wantOptions int
		wantEvents  int
	}{
		{"estimated option", true, 1, 2},
		{"empty without fallback", false, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, quote.Config{PlaceholderPrice: 5000, EstimatedFallback: tc.fallback})

			f.resolver.EXPECT().Resolve(gomock.Any(), "2000").
				Return(resolver.Destination{}, fmt.Errorf("resolve 2000: %w", carrier.ErrUnavailable))
			f.packer.EXPECT().Pack(gomock.Any(), gomock.Any(), gomock.Any()).Return(oneParcel, nil)
			f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).Return(nil).Times(tc.wantEvents)

			res := f.engine.Quote(context.Background(), request)

			assert.Equal(t, "carrier unavailable", res.Error)
			assert.Equal(t, tc.fallback, res.Estimated)
			require.Len(t, res.Options, tc.wantOptions)
			if tc.fallback {
				assert.Equal(t, quote.EstimatedOptionID, res.SelectedID)
				assert.Equal(t, int64(5000), res.Options[0].Price)
			}
		})
	}
}

func TestEngine_Quote_AuditFailureDoesNotAffectResult(t *testing.T) {
	f := newFixture(t, quote.Config{})

	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(rosario, nil)
	f.packer.EXPECT().Pack(gomock.Any(), gomock.Any(), gomock.Any()).Return(oneParcel, nil)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).
		Return(map[string]any{"options": []any{map[string]any{"id": "x", "price": 100.0}}}, nil)
	f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).Return(assert.AnError).Times(2)

	res := f.engine.Quote(context.Background(), request)

	assert.Empty(t, res.Error)
	require.Len(t, res.Options, 1)
	assert.Equal(t, "x", res.SelectedID)
}

func TestEngine_Quote_PackingFailure(t *testing.T) {
	f := newFixture(t, quote.Config{})

	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(rosario, nil)
	f.packer.EXPECT().Pack(gomock.Any(), gomock.Any(), gomock.Any()).Return(packer.Result{}, assert.AnError)
	f.events.EXPECT().AppendQuoteEvent(gomock.Any(), gomock.Any()).Return(nil)

	res := f.engine.Quote(context.Background(), request)

	assert.Empty(t, res.Options)
	assert.Equal(t, "cart could not be packed", res.Error)
}
