// Package stripe is a minimal client for the Stripe PaymentIntents REST API
// and webhook signature scheme. Only the calls the booking flow needs are
// implemented: create intent, cancel intent, verify webhook events.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// Config holds Stripe API configuration
type Config struct {
	SecretKey     string // secret API key (sk_...)
	WebhookSecret string // webhook endpoint secret (whsec_...)
	BaseURL       string // override for tests; defaults to the live API
	Timeout       time.Duration
}

// Client represents a Stripe API client
type Client struct {
	httpClient *http.Client
	config     Config
}

// CreateIntentRequest represents a PaymentIntent creation request
type CreateIntentRequest struct {
	Amount       int64             // amount in minor units (cents)
	Currency     string            // ISO currency code, e.g. "eur"
	ReceiptEmail string            // optional
	Metadata     map[string]string // optional key/value tags
}

// Intent represents the subset of a PaymentIntent the booking flow uses
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// NewClient creates a new Stripe API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// CreateIntent creates a PaymentIntent and returns its id and client secret
func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("validation error: amount must be > 0")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return nil, fmt.Errorf("validation error: currency must be non-empty")
	}
	if strings.TrimSpace(c.config.SecretKey) == "" {
		return nil, fmt.Errorf("stripe config error: secret_key is empty")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	if req.ReceiptEmail != "" {
		form.Set("receipt_email", req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out Intent
	if err := c.do(ctx, "/v1/payment_intents", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelIntent voids a previously created PaymentIntent
func (c *Client) CancelIntent(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("validation error: intent id must be non-empty")
	}
	return c.do(ctx, "/v1/payment_intents/"+url.PathEscape(id)+"/cancel", url.Values{}, &Intent{})
}

// do posts a form-encoded request to the Stripe API and decodes the JSON reply
func (c *Client) do(ctx context.Context, path string, form url.Values, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	endpoint := base + path

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("stripe api call failed: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("stripe api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stripe api returned non-2xx status: %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse stripe response: %w", err)
	}
	return nil
}
