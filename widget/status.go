package widget

import (
	"encoding/json"
	"errors"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// Status is the widget's self-reported state: whether the entered amount
// fits the merchant's limits, what is due today, and a checksum over the
// payment schedule for change detection.
type Status struct {
	IsValid                 bool
	AmountDueToday          *afterpay.Money
	PaymentScheduleChecksum string
}

// ParseStatus decodes the JSON payload the status query returns.
func ParseStatus(raw []byte) (Status, error) {
	var probe struct {
		IsValid                 *bool           `json:"isValid"`
		AmountDueToday          *afterpay.Money `json:"amountDueToday"`
		PaymentScheduleChecksum string          `json:"paymentScheduleChecksum"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Status{}, &afterpay.DecodeError{Cause: err}
	}
	if probe.IsValid == nil {
		return Status{}, &afterpay.DecodeError{Cause: errors.New("status missing isValid")}
	}
	return Status{
		IsValid:                 *probe.IsValid,
		AmountDueToday:          probe.AmountDueToday,
		PaymentScheduleChecksum: probe.PaymentScheduleChecksum,
	}, nil
}
