package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:       srv.URL + "/",
		APIKey:        "key",
		APISecret:     "secret",
		AccountID:     "acc-1",
		OriginID:      "orig-1",
		Country:       "AR",
		ResolvePath:   "/v1/resolve",
		QuotePath:     "/quote",
		ShipmentsPath: "/shipments",
		Timeout:       2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestClient_Resolve(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/resolve", r.URL.Path)
		assert.Equal(t, "2000", r.URL.Query().Get("zipcode"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		_, _ = w.Write([]byte(`{"city":"Rosario","state":"Santa Fe"}`))
	})

	body, err := client.Resolve(context.Background(), "2000")
	require.NoError(t, err)
	assert.Equal(t, "Rosario", body["city"])
}

func TestClient_Quote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "acc-1", req.AccountID)
		assert.Equal(t, "orig-1", req.OriginID)
		assert.Equal(t, "AR", req.Destination.Country)
		assert.Equal(t, 1500.5, req.DeclaredValue)
		require.Len(t, req.Items, 1)
		assert.Equal(t, 800, req.Items[0].Weight)

		_, _ = w.Write([]byte(`{"options":[{"id":"x","price":100}]}`))
	})

	body, err := client.Quote(context.Background(), QuoteRequest{
		DeclaredValue: 1500.5,
		Items:         []Item{{SKU: "A", Weight: 800, Height: 10, Width: 20, Length: 30}},
		Destination:   Destination{Zipcode: "2000"},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "options")
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error is unavailable", http.StatusBadGateway, `oops`, ErrUnavailable},
		{"client error is request failed", http.StatusUnprocessableEntity, `{"message":"bad zipcode"}`, ErrRequestFailed},
		{"non json body", http.StatusOK, `<html>`, ErrBadResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Resolve(context.Background(), "2000")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClient_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: url, QuotePath: "/quote"})
	require.NoError(t, err)

	_, err = client.Quote(context.Background(), QuoteRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_CreateShipment(t *testing.T) {
	t.Run("numeric id and string price", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/shipments", r.URL.Path)
			var req ShipmentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ORD-1", req.ExternalReference)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":98765,"status":"created","price":"4200.00"}`))
		})

		shipment, err := client.CreateShipment(context.Background(), ShipmentRequest{ExternalReference: "ORD-1"})
		require.NoError(t, err)
		assert.Equal(t, "98765", shipment.ID)
		assert.Equal(t, "created", shipment.Status)
		assert.Equal(t, "4200", shipment.Price.String())
	})

	t.Run("missing id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"created"}`))
		})

		_, err := client.CreateShipment(context.Background(), ShipmentRequest{})
		assert.ErrorIs(t, err, ErrBadResponse)
	})
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"in_transit", StatusShipped},
		{"In Transit", StatusShipped},
		{"out-for-delivery", StatusShipped},
		{"DELIVERED", StatusDelivered},
		{"canceled", StatusCancelled},
		{"created", StatusPending},
		{"exception", StatusError},
		{"weird_unknown_code", StatusError},
		{"", StatusError},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, MapStatus(tc.raw))
		})
	}
}
