package afterpay

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an (amount, currency) pair in the gateway's wire shape:
//
//	{"amount":"10.00","currency":"AUD"}
//
// Amount stays a decimal string end to end. Construct values with NewMoney or
// by decoding JSON; both reject amounts that do not parse as decimals and
// currencies that are not 3-letter codes.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney validates amount and currency and returns the pair. The currency
// is normalized to upper case.
func NewMoney(amount, currency string) (Money, error) {
	m := Money{Amount: amount, Currency: strings.ToUpper(currency)}
	if err := m.validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

func (m Money) validate() error {
	if _, err := decimal.NewFromString(m.Amount); err != nil {
		return fmt.Errorf("amount %q is not a decimal: %w", m.Amount, err)
	}
	if !isCurrencyCode(m.Currency) {
		return fmt.Errorf("currency %q is not a 3-letter ISO 4217 code", m.Currency)
	}
	return nil
}

// Decimal returns the amount as a decimal for comparisons. The value must
// have been validated; invalid amounts report an error.
func (m Money) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(m.Amount)
}

func (m Money) String() string {
	return m.Amount + " " + m.Currency
}

// MarshalJSON refuses to serialize a Money that would not survive decoding.
func (m Money) MarshalJSON() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	type wire Money
	return json.Marshal(wire(m))
}

func (m *Money) UnmarshalJSON(data []byte) error {
	type wire Money
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded := Money{Amount: w.Amount, Currency: strings.ToUpper(w.Currency)}
	if err := decoded.validate(); err != nil {
		return err
	}
	*m = decoded
	return nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
