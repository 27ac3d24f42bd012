package widget

import "errors"

// ErrDisposed reports a call on a bridge after Dispose.
var ErrDisposed = errors.New("widget is disposed")

// ErrNotReady reports a status query before the document finished loading.
var ErrNotReady = errors.New("widget is not ready")

// ErrorCodeInvalidMessage is the error code handed to Handler.OnError when a
// page-posted message fails to decode. It comes from this side of the
// bridge, not from the page.
const ErrorCodeInvalidMessage = "invalidMessage"

// ScriptError wraps the failure of a script evaluation, or an evaluation
// that succeeded but returned a value outside the expected shape. Cause is
// nil in the latter case.
type ScriptError struct {
	Cause error
}

func (e *ScriptError) Error() string {
	if e.Cause == nil {
		return "script evaluation failed"
	}
	return "script evaluation failed: " + e.Cause.Error()
}

func (e *ScriptError) Unwrap() error { return e.Cause }
