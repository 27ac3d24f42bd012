// Package checkout turns a raw checkout-creation response into the redirect
// URL the buyer is sent to. One attempt, one translation step; retry policy,
// if any, belongs to the network capability behind the Creator.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// Creator performs the checkout call against the gateway and returns the raw
// response body.
type Creator interface {
	CreateCheckout(ctx context.Context, email string, amount afterpay.Money) ([]byte, error)
}

// CreatorFunc adapts a function to the Creator interface.
type CreatorFunc func(ctx context.Context, email string, amount afterpay.Money) ([]byte, error)

func (f CreatorFunc) CreateCheckout(ctx context.Context, email string, amount afterpay.Money) ([]byte, error) {
	return f(ctx, email, amount)
}

// Repository translates checkout responses. It holds no state and performs
// no caching.
type Repository struct {
	creator Creator
}

func NewRepository(creator Creator) *Repository {
	return &Repository{creator: creator}
}

// Checkout creates a checkout for the buyer and returns the redirect URL.
// Network errors pass through wrapped; a response that does not carry an
// absolute URL is a *afterpay.DecodeError.
func (r *Repository) Checkout(ctx context.Context, email string, amount afterpay.Money) (*url.URL, error) {
	raw, err := r.creator.CreateCheckout(ctx, email, amount)
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	return decodeCheckout(raw)
}

func decodeCheckout(raw []byte) (*url.URL, error) {
	var envelope struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &afterpay.DecodeError{Cause: err}
	}
	if envelope.URL == "" {
		return nil, &afterpay.DecodeError{Cause: errors.New("url is required")}
	}
	u, err := url.Parse(envelope.URL)
	if err != nil {
		return nil, &afterpay.DecodeError{Cause: err}
	}
	if !u.IsAbs() {
		return nil, &afterpay.DecodeError{Cause: fmt.Errorf("url %q is not absolute", envelope.URL)}
	}
	return u, nil
}
