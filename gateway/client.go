// Package gateway is the HTTP client for the hosted Afterpay API. It is the
// default implementation of the network capabilities the configuration cache
// and the checkout repository consume; both stay decoupled behind their own
// interfaces, so a host with its own transport never imports this package.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/checkout"
	"github.com/Batareeed/afterpay-go/configcache"
)

// APIError is a non-2xx response from the API, body included for
// diagnostics. The core treats it as an opaque network error.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("afterpay api status=%d body=%s", e.Status, e.Body)
}

type Client struct {
	Base string
	HTTP *http.Client
}

var (
	_ configcache.Fetcher = (*Client)(nil)
	_ checkout.Creator    = (*Client)(nil)
)

// New builds a client for the environment's API origin.
func New(env afterpay.Environment, hc *http.Client) *Client {
	return NewWithBase(env.BaseURL(), hc)
}

// NewWithBase builds a client against an explicit origin, for tests and
// self-hosted proxies.
func NewWithBase(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// FetchConfiguration returns the raw merchant configuration payload.
func (c *Client) FetchConfiguration(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/v2/configuration", nil)
	if err != nil {
		return nil, fmt.Errorf("configuration request: %w", err)
	}
	return c.do(req)
}

// CreateCheckout posts a checkout for the buyer and returns the raw
// response payload.
func (c *Client) CreateCheckout(ctx context.Context, email string, amount afterpay.Money) ([]byte, error) {
	payload := struct {
		Email  string         `json:"email"`
		Amount afterpay.Money `json:"amount"`
	}{Email: email, Amount: amount}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/v1/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("X-Request-Id", uuid.New().String())
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
