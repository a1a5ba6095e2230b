package payment

import (
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

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payload"
)

const StatusApproved = "approved"

var (
	ErrUnavailable    = errors.New("payment provider unavailable")
	ErrRequestFailed  = errors.New("payment provider request failed")
	ErrNotFound       = errors.New("payment not found")
	ErrMissingBaseURL = errors.New("payment: missing base URL")
)

type Payment struct {
	ID                string
	Status            string
	ExternalReference string
	Amount            decimal.Decimal
}

// IsApproved reports whether a raw payment status means the money is in.
func IsApproved(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), StatusApproved)
}

type Config struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// Client looks payments up by id when a notification only carries the id.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/payments/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("payment: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}
	// Payment status must never come from an intermediary cache.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	p := &Payment{
		ID:                payload.First(doc, payload.Field("id")),
		Status:            payload.First(doc, payload.Field("status")),
		ExternalReference: payload.First(doc, payload.Field("external_reference"), payload.Field("metadata.draft_id")),
	}
	if p.ID == "" {
		p.ID = id
	}
	if amount := payload.First(doc, payload.Field("transaction_amount")); amount != "" {
		p.Amount, _ = decimal.NewFromString(amount)
	}
	return p, nil
}
