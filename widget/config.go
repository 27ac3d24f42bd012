package widget

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// InitialConfig seeds the widget with either a checkout token or a plain
// amount. Exactly one is set; the value is frozen for the bridge's lifetime
// and rendered into the one-time initialization call.
type InitialConfig struct {
	token  string
	amount *afterpay.Money
}

// TokenConfig builds an InitialConfig around the token of a completed
// checkout.
func TokenConfig(token string) (InitialConfig, error) {
	if token == "" {
		return InitialConfig{}, errors.New("widget token must not be empty")
	}
	return InitialConfig{token: token}, nil
}

// AmountConfig builds an InitialConfig around a standalone amount, for
// rendering the widget before any checkout exists.
func AmountConfig(amount afterpay.Money) (InitialConfig, error) {
	if _, err := json.Marshal(amount); err != nil {
		return InitialConfig{}, fmt.Errorf("widget amount: %w", err)
	}
	return InitialConfig{amount: &amount}, nil
}

func (c InitialConfig) isZero() bool {
	return c.token == "" && c.amount == nil
}

// Style controls which chrome the widget renders around the payment
// schedule.
type Style struct {
	Logo    bool `json:"logo"`
	Heading bool `json:"heading"`
}

// DefaultStyle shows the full chrome.
var DefaultStyle = Style{Logo: true, Heading: true}
