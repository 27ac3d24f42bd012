package afterpay

import "errors"

// ErrInvalidConfiguration reports a configuration whose minimum exceeds its
// maximum or whose amounts carry different currencies. Wrapped errors add the
// offending values.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrNoCurrency reports an operation that needs a currency code before one
// has been configured for the process.
var ErrNoCurrency = errors.New("no currency code configured")

// DecodeError reports a payload, from the gateway or from the widget
// document, that could not be decoded into its expected shape. Decode errors
// are never retried; the payload itself is wrong.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause == nil {
		return "decode failed"
	}
	return "decode failed: " + e.Cause.Error()
}

func (e *DecodeError) Unwrap() error { return e.Cause }
