package widget

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// Event is a message posted by the widget document. The set of shapes is
// closed: ParseEvent rejects anything outside it, and the bridge dispatches
// each variant exhaustively.
type Event interface {
	eventType() string
}

// ChangeEvent reports that the widget's status changed, typically after an
// amount update.
type ChangeEvent struct {
	Status Status
}

// ReadyEvent reports that the widget finished its own setup inside the page.
// It is a protocol-level signal, distinct from the bridge's lifecycle states.
type ReadyEvent struct {
	Status Status
}

// ErrorEvent carries an error the page chose to surface.
type ErrorEvent struct {
	ErrorCode string
	Message   string
}

// ResizeEvent carries the widget's new measured height in page pixels.
// Height is nil when the page posted a resize without a measurement.
type ResizeEvent struct {
	Height *int
}

func (ChangeEvent) eventType() string { return "change" }
func (ReadyEvent) eventType() string  { return "ready" }
func (ErrorEvent) eventType() string  { return "error" }
func (ResizeEvent) eventType() string { return "resize" }

// ParseEvent decodes one page-posted message. Every failure is a
// *afterpay.DecodeError and is terminal for that message only.
func ParseEvent(raw []byte) (Event, error) {
	var probe struct {
		Type                    string          `json:"type"`
		IsValid                 *bool           `json:"isValid"`
		AmountDueToday          *afterpay.Money `json:"amountDueToday"`
		PaymentScheduleChecksum string          `json:"paymentScheduleChecksum"`
		ErrorCode               string          `json:"errorCode"`
		Message                 string          `json:"message"`
		Height                  *int            `json:"height"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &afterpay.DecodeError{Cause: err}
	}

	switch probe.Type {
	case "change", "ready":
		if probe.IsValid == nil {
			return nil, &afterpay.DecodeError{
				Cause: fmt.Errorf("%s event missing isValid", probe.Type),
			}
		}
		status := Status{
			IsValid:                 *probe.IsValid,
			AmountDueToday:          probe.AmountDueToday,
			PaymentScheduleChecksum: probe.PaymentScheduleChecksum,
		}
		if probe.Type == "ready" {
			return ReadyEvent{Status: status}, nil
		}
		return ChangeEvent{Status: status}, nil
	case "error":
		return ErrorEvent{ErrorCode: probe.ErrorCode, Message: probe.Message}, nil
	case "resize":
		return ResizeEvent{Height: probe.Height}, nil
	case "":
		return nil, &afterpay.DecodeError{Cause: errors.New("event missing type")}
	default:
		return nil, &afterpay.DecodeError{Cause: fmt.Errorf("unknown event type %q", probe.Type)}
	}
}
