package widget

import (
	"encoding/json"
	"fmt"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// statusScript is the pull-style query the bootstrap page exposes. It
// returns a JSON-encoded string that decodes into Status.
const statusScript = "getWidgetStatus()"

// initScript renders the one-time initialization call, for example
//
//	createAfterpayWidget("abc123", null, "en_AU", {"logo":true,"heading":true})
//
// with the unused half of the token/amount pair encoded as null.
func initScript(cfg InitialConfig, locale string, style Style) (string, error) {
	token := "null"
	if cfg.token != "" {
		raw, err := json.Marshal(cfg.token)
		if err != nil {
			return "", fmt.Errorf("encode token: %w", err)
		}
		token = string(raw)
	}

	money := "null"
	if cfg.amount != nil {
		raw, err := json.Marshal(*cfg.amount)
		if err != nil {
			return "", fmt.Errorf("encode amount: %w", err)
		}
		money = string(raw)
	}

	localeJSON, err := json.Marshal(locale)
	if err != nil {
		return "", fmt.Errorf("encode locale: %w", err)
	}
	styleJSON, err := json.Marshal(style)
	if err != nil {
		return "", fmt.Errorf("encode style: %w", err)
	}

	return fmt.Sprintf("createAfterpayWidget(%s, %s, %s, %s)", token, money, localeJSON, styleJSON), nil
}

// updateScript renders an amount push, for example
//
//	updateAmount({"amount":"25.50","currency":"AUD"})
func updateScript(amount afterpay.Money) (string, error) {
	raw, err := json.Marshal(amount)
	if err != nil {
		return "", fmt.Errorf("encode amount: %w", err)
	}
	return fmt.Sprintf("updateAmount(%s)", raw), nil
}
