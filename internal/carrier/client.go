package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payload"
)

var (
	// ErrUnavailable covers network failures and 5xx answers.
	ErrUnavailable = errors.New("carrier unavailable")
	// ErrRequestFailed covers 4xx answers.
	ErrRequestFailed = errors.New("carrier request failed")
	ErrBadResponse   = errors.New("carrier returned an unexpected response")

	ErrMissingBaseURL = errors.New("carrier: missing base URL")
)

type Config struct {
	BaseURL           string
	APIKey            string
	APISecret         string
	AccountID         string
	OriginID          string
	Country           string
	ResolvePath       string
	QuotePath         string
	ShipmentsPath     string
	Timeout           time.Duration
	RequestsPerSecond float64
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
	}, nil
}

// Resolve asks the carrier for the city and state of a zipcode. The decoded
// body is returned as-is because its shape differs between API versions.
func (c *Client) Resolve(ctx context.Context, zipcode string) (map[string]any, error) {
	query := url.Values{"zipcode": []string{zipcode}}
	body, err := c.doRequest(ctx, http.MethodGet, c.cfg.ResolvePath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(body)
}

// Quote requests rates. AccountID and OriginID default to the configured ones.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (map[string]any, error) {
	if req.AccountID == "" {
		req.AccountID = c.cfg.AccountID
	}
	if req.OriginID == "" {
		req.OriginID = c.cfg.OriginID
	}
	if req.Destination.Country == "" {
		req.Destination.Country = c.cfg.Country
	}

	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to encode quote request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.cfg.QuotePath, encoded)
	if err != nil {
		return nil, err
	}
	return decodeObject(body)
}

func (c *Client) CreateShipment(ctx context.Context, req ShipmentRequest) (*Shipment, error) {
	if req.AccountID == "" {
		req.AccountID = c.cfg.AccountID
	}
	if req.OriginID == "" {
		req.OriginID = c.cfg.OriginID
	}
	if req.Destination.Country == "" {
		req.Destination.Country = c.cfg.Country
	}

	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to encode shipment request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.cfg.ShipmentsPath, encoded)
	if err != nil {
		return nil, err
	}

	doc, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	shipment := &Shipment{
		ID:     payload.First(doc, payload.Field("id"), payload.Field("shipment_id"), payload.Field("shipment.id")),
		Status: payload.First(doc, payload.Field("status"), payload.Field("shipment.status")),
	}
	if shipment.ID == "" {
		return nil, fmt.Errorf("%w: shipment without id", ErrBadResponse)
	}
	if price := payload.First(doc, payload.Field("price"), payload.Field("cost")); price != "" {
		if d, err := decimal.NewFromString(price); err == nil {
			shipment.Price = d
		}
	}
	return shipment, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		var errResp struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
			return nil, fmt.Errorf("%w: HTTP %d - %s%s", ErrRequestFailed, resp.StatusCode, errResp.Error, errResp.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
