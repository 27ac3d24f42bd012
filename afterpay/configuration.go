package afterpay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration is the merchant's order-limit configuration: an optional
// minimum amount, a required maximum, and the single currency both share.
// The gateway serves it as
//
//	{"minimumAmount":{"amount":"1.00","currency":"AUD"},
//	 "maximumAmount":{"amount":"1000.00","currency":"AUD"}}
//
// Construct values with NewConfiguration or DecodeConfiguration; a value is
// never mutated, only superseded by the next successful fetch.
type Configuration struct {
	// Minimum is nil when the gateway sets no lower bound.
	Minimum  *decimal.Decimal
	Maximum  decimal.Decimal
	Currency string
}

// NewConfiguration validates the limit pair. It fails with
// ErrInvalidConfiguration when the minimum exceeds the maximum or the
// currencies differ.
func NewConfiguration(minimum *Money, maximum Money) (Configuration, error) {
	if err := maximum.validate(); err != nil {
		return Configuration{}, fmt.Errorf("maximum: %w", err)
	}
	max, _ := maximum.Decimal()
	cfg := Configuration{Maximum: max, Currency: maximum.Currency}

	if minimum == nil {
		return cfg, nil
	}
	if err := minimum.validate(); err != nil {
		return Configuration{}, fmt.Errorf("minimum: %w", err)
	}
	if minimum.Currency != maximum.Currency {
		return Configuration{}, fmt.Errorf("%w: minimum currency %s differs from maximum currency %s",
			ErrInvalidConfiguration, minimum.Currency, maximum.Currency)
	}
	min, _ := minimum.Decimal()
	if min.GreaterThan(max) {
		return Configuration{}, fmt.Errorf("%w: minimum %s exceeds maximum %s",
			ErrInvalidConfiguration, min, max)
	}
	cfg.Minimum = &min
	return cfg, nil
}

// DecodeConfiguration parses a raw gateway configuration payload. Malformed
// payloads yield a *DecodeError; payloads that parse but violate the limit
// invariant yield an error wrapping ErrInvalidConfiguration.
func DecodeConfiguration(raw []byte) (Configuration, error) {
	var envelope struct {
		MinimumAmount *Money `json:"minimumAmount"`
		MaximumAmount *Money `json:"maximumAmount"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Configuration{}, &DecodeError{Cause: err}
	}
	if envelope.MaximumAmount == nil {
		return Configuration{}, &DecodeError{Cause: errors.New("maximumAmount is required")}
	}
	return NewConfiguration(envelope.MinimumAmount, *envelope.MaximumAmount)
}
