package resolver_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/cache"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository/sheets"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver"
	mock_resolver "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
)

type fixture struct {
	cache   *mock_resolver.MockZipCache
	carrier *mock_resolver.MockCarrier
	r       *resolver.Resolver
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		cache:   mock_resolver.NewMockZipCache(ctrl),
		carrier: mock_resolver.NewMockCarrier(ctrl),
	}
	f.r = resolver.New(f.cache, f.carrier, decimal.NewFromInt(1000), zap.NewNop())
	return f
}

func TestResolver_InvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, zip := range []string{"", "  ", "abc-"} {
		_, err := f.r.Resolve(context.Background(), zip)
		assert.ErrorIs(t, err, resolver.ErrInvalidInput)
	}
}

func TestResolver_CacheHit(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), "2000").
		Return(&repository.ZipEntry{Zipcode: "2000", City: "rosario", State: "santa fe"}, nil)

	dest, err := f.r.Resolve(context.Background(), "S2000")
	require.NoError(t, err)
	assert.Equal(t, resolver.Destination{Zipcode: "2000", City: "rosario", State: "santa fe", Source: resolver.SourceCache}, dest)
}

func TestResolver_ResolveEndpointPopulatesCache(t *testing.T) {
	f := newFixture(t)
	want := repository.ZipEntry{Zipcode: "2000", City: "rosario", State: "santa fe"}

	gomock.InOrder(
		f.cache.EXPECT().Get(gomock.Any(), "2000").Return(nil, repository.ErrObjectNotFound),
		f.carrier.EXPECT().Resolve(gomock.Any(), "2000").
			Return(map[string]any{"city": "Rosario", "state": "Santa Fe"}, nil),
		f.cache.EXPECT().PutIfAbsent(gomock.Any(), want).Return(nil),
	)

	dest, err := f.r.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Equal(t, "rosario", dest.City)
	assert.Equal(t, "santa fe", dest.State)
	assert.Equal(t, resolver.SourceResolve, dest.Source)
}

func TestResolver_NestedResolveShapes(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"destination", map[string]any{"destination": map[string]any{"city": "Rosario", "state": "Santa Fe"}}},
		{"location", map[string]any{"location": map[string]any{"city": "Rosario", "state": "Santa Fe"}}},
		{"province", map[string]any{"city": "Rosario", "province": "SANTA FE"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.cache.EXPECT().Get(gomock.Any(), "2000").Return(nil, repository.ErrObjectNotFound)
			f.carrier.EXPECT().Resolve(gomock.Any(), "2000").Return(tc.body, nil)
			f.cache.EXPECT().PutIfAbsent(gomock.Any(), gomock.Any()).Return(nil)

			dest, err := f.r.Resolve(context.Background(), "2000")
			require.NoError(t, err)
			assert.Equal(t, "santa fe", dest.State)
		})
	}
}

func TestResolver_QuoteProbeFallback(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "5000").Return(nil, repository.ErrObjectNotFound)
	f.carrier.EXPECT().Resolve(gomock.Any(), "5000").Return(map[string]any{"zipcode": "5000"}, nil)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req carrier.QuoteRequest) (map[string]any, error) {
			require.Len(t, req.Items, 1)
			assert.Equal(t, 500, req.Items[0].Weight)
			assert.Equal(t, "5000", req.Destination.Zipcode)
			return map[string]any{
				"all_results": []any{
					map[string]any{"destination": map[string]any{"city": "Córdoba", "state": "Córdoba", "id": 77.0}},
				},
			}, nil
		})
	f.cache.EXPECT().PutIfAbsent(gomock.Any(), repository.ZipEntry{
		Zipcode: "5000", City: "córdoba", State: "córdoba", DestinationID: "77",
	}).Return(nil)

	dest, err := f.r.Resolve(context.Background(), "5000")
	require.NoError(t, err)
	assert.Equal(t, resolver.SourceQuote, dest.Source)
	assert.Equal(t, "77", dest.DestinationID)
}

func TestResolver_Unresolvable(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "1234").Return(nil, repository.ErrObjectNotFound)
	f.carrier.EXPECT().Resolve(gomock.Any(), "1234").Return(nil, carrier.ErrUnavailable)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(map[string]any{"options": []any{}}, nil)

	_, err := f.r.Resolve(context.Background(), "1234")
	assert.ErrorIs(t, err, resolver.ErrUnresolvableDestination)
}

func TestResolver_CacheWriteFailureStillResolves(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "2000").Return(nil, repository.ErrObjectNotFound)
	f.carrier.EXPECT().Resolve(gomock.Any(), "2000").Return(map[string]any{"city": "Rosario", "state": "Santa Fe"}, nil)
	f.cache.EXPECT().PutIfAbsent(gomock.Any(), gomock.Any()).Return(assert.AnError)

	dest, err := f.r.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Equal(t, "rosario", dest.City)
}

func TestResolver_CarrierDown(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "2000").Return(nil, repository.ErrObjectNotFound)
	f.carrier.EXPECT().Resolve(gomock.Any(), "2000").Return(nil, carrier.ErrUnavailable)
	f.carrier.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, carrier.ErrUnavailable)

	_, err := f.r.Resolve(context.Background(), "2000")
	assert.ErrorIs(t, err, carrier.ErrUnavailable)
	assert.NotErrorIs(t, err, resolver.ErrUnresolvableDestination)
}

// newCachedResolver resolves through the real zip cache over an in-memory sheet.
func newCachedResolver(t *testing.T) (*resolver.Resolver, *mock_resolver.MockCarrier) {
	t.Helper()
	store := tabular.NewMemoryStore()
	require.NoError(t, sheets.EnsureAll(context.Background(), store))
	zips := cache.NewZipCache(sheets.NewZipRepo(tabular.NewAdapter(store)), zap.NewNop())

	carrierMock := mock_resolver.NewMockCarrier(gomock.NewController(t))
	return resolver.New(zips, carrierMock, decimal.NewFromInt(1000), zap.NewNop()), carrierMock
}

func TestResolver_SecondResolveIsServedFromCache(t *testing.T) {
	r, carrierMock := newCachedResolver(t)
	carrierMock.EXPECT().Resolve(gomock.Any(), "2000").
		Return(map[string]any{"city": "Rosario", "state": "Santa Fe"}, nil).Times(1)

	first, err := r.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Equal(t, resolver.SourceResolve, first.Source)

	second, err := r.Resolve(context.Background(), " S2000 ")
	require.NoError(t, err)
	assert.Equal(t, resolver.SourceCache, second.Source)
	assert.Equal(t, first.City, second.City)
	assert.Equal(t, first.State, second.State)
}

func TestResolver_CancelledCallerDoesNotFailOthers(t *testing.T) {
	r, carrierMock := newCachedResolver(t)

	started := make(chan struct{})
	release := make(chan struct{})
	carrierMock.EXPECT().Resolve(gomock.Any(), "2000").
		DoAndReturn(func(ctx context.Context, _ string) (map[string]any, error) {
			close(started)
			<-release
			return map[string]any{"city": "Rosario", "state": "Santa Fe"}, ctx.Err()
		}).Times(1)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := r.Resolve(firstCtx, "2000")
		firstErr <- err
	}()
	<-started

	type result struct {
		dest resolver.Destination
		err  error
	}
	second := make(chan result, 1)
	go func() {
		dest, err := r.Resolve(context.Background(), "2000")
		second <- result{dest, err}
	}()

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller is still waiting")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, "rosario", res.dest.City)
		assert.Equal(t, "santa fe", res.dest.State)
	case <-time.After(time.Second):
		t.Fatal("second caller never got a result")
	}
}
