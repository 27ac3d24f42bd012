package widget

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// State is the bridge's position in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Handler receives the widget's externally visible events. Resize is not
// among them; size changes surface through SuggestedHeight and the
// InvalidateSize hook instead.
type Handler interface {
	OnChanged(status Status)
	OnError(errorCode, message string)
	OnReady(status Status)
}

// Options configures a bridge at Attach time.
type Options struct {
	// Handler receives change, error and ready events. Required.
	Handler Handler

	// Currency resolves the process-wide currency code for amount updates,
	// typically (*configcache.Cache).Currency. SendUpdate fails with
	// afterpay.ErrNoCurrency while it reports no code.
	Currency func() (string, bool)

	// Locale is the widget's locale identifier. Defaults to
	// afterpay.DefaultLocale.
	Locale string

	// Style overrides the widget chrome. Defaults to DefaultStyle.
	Style *Style

	// BootstrapURL overrides the page to load. Defaults to
	// afterpay.DefaultWidgetBootstrapURL.
	BootstrapURL string

	// Dispatcher delivers handler calls and completions on the host's UI
	// context. Defaults to a bridge-owned serial goroutine that is stopped
	// on Dispose.
	Dispatcher Dispatcher

	// OpenExternal receives top-level navigations the document requested.
	// The bridge cancels them inside the document and hands the URL here,
	// so the page can never navigate away from the bootstrap document.
	OpenExternal func(u *url.URL)

	// InvalidateSize is called, through the Dispatcher, each time a resize
	// event carries a new measurement.
	InvalidateSize func()

	// Authenticate answers authentication challenges raised while loading.
	// Returning false keeps the platform's default handling. Unset behaves
	// as false.
	Authenticate func(host string) bool

	Logger *slog.Logger
}

// Bridge mediates between native code and the widget document. It is safe
// for concurrent use; handler calls and completions are serialized through
// the Dispatcher.
type Bridge struct {
	doc          Document
	config       InitialConfig
	locale       string
	style        Style
	bootstrap    *url.URL
	handler      Handler
	currency     func() (string, bool)
	dispatcher   Dispatcher
	owned        *serialDispatcher
	openExternal func(u *url.URL)
	invalidate   func()
	authenticate func(host string) bool
	logger       *slog.Logger
	subscription Subscription

	mu          sync.Mutex
	state       State
	initialized bool
	height      *int
}

// Attach subscribes to doc, starts loading the bootstrap page and returns
// the bridge in its Loading state. When the document reports the page
// loaded, the bridge injects exactly one initialization call built from cfg
// and becomes Ready.
func Attach(doc Document, cfg InitialConfig, opts Options) (*Bridge, error) {
	if doc == nil {
		return nil, errors.New("document is required")
	}
	if opts.Handler == nil {
		return nil, errors.New("handler is required")
	}
	if cfg.isZero() {
		return nil, errors.New("initial config is required")
	}

	bootstrap := opts.BootstrapURL
	if bootstrap == "" {
		bootstrap = afterpay.DefaultWidgetBootstrapURL
	}
	u, err := url.Parse(bootstrap)
	if err != nil {
		return nil, fmt.Errorf("parse bootstrap url: %w", err)
	}

	locale := opts.Locale
	if locale == "" {
		locale = afterpay.DefaultLocale
	}
	style := DefaultStyle
	if opts.Style != nil {
		style = *opts.Style
	}
	currency := opts.Currency
	if currency == nil {
		currency = func() (string, bool) { return "", false }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &Bridge{
		doc:          doc,
		config:       cfg,
		locale:       locale,
		style:        style,
		bootstrap:    u,
		handler:      opts.Handler,
		currency:     currency,
		openExternal: opts.OpenExternal,
		invalidate:   opts.InvalidateSize,
		authenticate: opts.Authenticate,
		logger:       logger,
		state:        StateLoading,
	}
	if opts.Dispatcher != nil {
		b.dispatcher = opts.Dispatcher
	} else {
		b.owned = newSerialDispatcher()
		b.dispatcher = b.owned
	}

	sub, err := doc.Subscribe(&bridgeObserver{bridge: b})
	if err != nil {
		b.closeOwned()
		return nil, fmt.Errorf("subscribe to document: %w", err)
	}
	b.subscription = sub

	if err := doc.Load(u); err != nil {
		sub.Cancel()
		b.closeOwned()
		return nil, fmt.Errorf("load bootstrap page: %w", err)
	}
	return b, nil
}

// SendUpdate pushes a new amount into the widget. The currency comes from
// the configured source; afterpay.ErrNoCurrency reports its absence. The
// script call itself is best effort: a bridge that is not yet ready skips
// the update, and an amount that does not serialize is dropped without
// error.
func (b *Bridge) SendUpdate(amount string) error {
	b.mu.Lock()
	state := b.state
	b.mu.Unlock()

	if state == StateDisposed {
		return ErrDisposed
	}
	currency, ok := b.currency()
	if !ok {
		return afterpay.ErrNoCurrency
	}
	if state != StateReady {
		return nil
	}

	money, err := afterpay.NewMoney(amount, currency)
	if err != nil {
		b.logger.Warn("widget: dropping update that does not serialize",
			slog.String("amount", amount), slog.String("error", err.Error()))
		return nil
	}
	script, err := updateScript(money)
	if err != nil {
		b.logger.Warn("widget: dropping update that does not serialize",
			slog.String("amount", amount), slog.String("error", err.Error()))
		return nil
	}
	b.doc.Evaluate(script, nil)
	return nil
}

// Status queries the widget for its current state. complete runs on the
// Dispatcher, so it may touch UI state. A failed evaluation, or a result
// that is not a JSON string of the expected shape, completes with a
// *ScriptError. A bridge that is disposed or not yet ready completes
// synchronously with ErrDisposed or ErrNotReady.
func (b *Bridge) Status(complete func(status Status, err error)) {
	if complete == nil {
		return
	}

	b.mu.Lock()
	state := b.state
	b.mu.Unlock()

	switch state {
	case StateDisposed:
		complete(Status{}, ErrDisposed)
		return
	case StateReady:
	default:
		complete(Status{}, ErrNotReady)
		return
	}

	b.doc.Evaluate(statusScript, func(result any, err error) {
		status, err := decodeStatusResult(result, err)
		b.dispatcher.Dispatch(func() {
			complete(status, err)
		})
	})
}

func decodeStatusResult(result any, err error) (Status, error) {
	if err != nil {
		return Status{}, &ScriptError{Cause: err}
	}
	raw, ok := result.(string)
	if !ok {
		return Status{}, &ScriptError{}
	}
	status, err := ParseStatus([]byte(raw))
	if err != nil {
		return Status{}, &ScriptError{Cause: err}
	}
	return status, nil
}

// SuggestedHeight reports the widget's last self-measured height in page
// pixels. ok is false until the document has reported one.
func (b *Bridge) SuggestedHeight() (height int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.height == nil {
		return 0, false
	}
	return *b.height, true
}

// State returns the bridge's lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Dispose tears the bridge down. The observer registration is cancelled so
// the document releases its reference, the owned dispatcher stops, and all
// later traffic in either direction is dropped. Dispose is idempotent. It
// does not abort evaluations already in flight; their completions are
// discarded.
func (b *Bridge) Dispose() {
	b.mu.Lock()
	if b.state == StateDisposed {
		b.mu.Unlock()
		return
	}
	b.state = StateDisposed
	b.mu.Unlock()

	if b.subscription != nil {
		b.subscription.Cancel()
	}
	b.closeOwned()
}

func (b *Bridge) closeOwned() {
	if b.owned != nil {
		b.owned.Close()
	}
}

// documentLoaded runs the Loading to Ready transition: inject the
// initialization call, then start accepting updates. Updates racing the
// transition are skipped rather than reordered ahead of initialization.
func (b *Bridge) documentLoaded() {
	b.mu.Lock()
	if b.state != StateLoading || b.initialized {
		b.mu.Unlock()
		return
	}
	b.initialized = true
	b.mu.Unlock()

	script, err := initScript(b.config, b.locale, b.style)
	if err != nil {
		b.logger.Error("widget: rendering initialization script failed",
			slog.String("error", err.Error()))
	} else {
		b.doc.Evaluate(script, nil)
	}

	b.mu.Lock()
	if b.state == StateLoading {
		b.state = StateReady
	}
	b.mu.Unlock()
}

// messageReceived is the single entry point for page-originated data.
func (b *Bridge) messageReceived(body any) {
	b.mu.Lock()
	disposed := b.state == StateDisposed
	b.mu.Unlock()
	if disposed {
		return
	}

	payload, _ := body.(string)
	event, err := ParseEvent([]byte(payload))
	if err != nil {
		b.logger.Warn("widget: dropping undecodable message",
			slog.String("error", err.Error()))
		message := err.Error()
		b.dispatcher.Dispatch(func() {
			b.handler.OnError(ErrorCodeInvalidMessage, message)
		})
		return
	}

	switch e := event.(type) {
	case ResizeEvent:
		b.applyResize(e)
	case ChangeEvent:
		b.dispatcher.Dispatch(func() { b.handler.OnChanged(e.Status) })
	case ReadyEvent:
		b.dispatcher.Dispatch(func() { b.handler.OnReady(e.Status) })
	case ErrorEvent:
		b.dispatcher.Dispatch(func() { b.handler.OnError(e.ErrorCode, e.Message) })
	}
}

// applyResize records a new measurement. Resizes without one are accepted
// and ignored.
func (b *Bridge) applyResize(e ResizeEvent) {
	if e.Height == nil {
		return
	}
	height := *e.Height
	b.mu.Lock()
	b.height = &height
	b.mu.Unlock()

	if b.invalidate != nil {
		b.dispatcher.Dispatch(b.invalidate)
	}
}

// decidePolicy cancels top-level navigations away from the bootstrap page
// and re-dispatches them to the external opener. Sub-frame loads pass.
func (b *Bridge) decidePolicy(nav Navigation) Policy {
	if !nav.TopLevel || nav.URL == nil {
		return PolicyAllow
	}
	if nav.URL.String() == b.bootstrap.String() {
		return PolicyAllow
	}
	if b.openExternal != nil {
		b.openExternal(nav.URL)
	} else {
		b.logger.Warn("widget: cancelled navigation with no external opener",
			slog.String("url", nav.URL.String()))
	}
	return PolicyCancel
}

func (b *Bridge) handleChallenge(host string) bool {
	if b.authenticate == nil {
		return false
	}
	return b.authenticate(host)
}

// bridgeObserver keeps DocumentObserver off the Bridge's public surface;
// the document talks to this adapter, hosts talk to the Bridge.
type bridgeObserver struct {
	bridge *Bridge
}

func (o *bridgeObserver) DocumentLoaded()                    { o.bridge.documentLoaded() }
func (o *bridgeObserver) MessageReceived(body any)           { o.bridge.messageReceived(body) }
func (o *bridgeObserver) DecidePolicy(nav Navigation) Policy { return o.bridge.decidePolicy(nav) }
func (o *bridgeObserver) HandleChallenge(host string) bool   { return o.bridge.handleChallenge(host) }
