package widget

import "net/url"

// Policy is the bridge's answer to a navigation the document requested.
type Policy int

const (
	// PolicyCancel stops the navigation inside the document.
	PolicyCancel Policy = iota
	// PolicyAllow lets the document perform it.
	PolicyAllow
)

// Navigation describes a navigation the document wants to perform.
// TopLevel marks a full-page navigation as opposed to a sub-frame resource
// load.
type Navigation struct {
	URL      *url.URL
	TopLevel bool
}

// Document is the embedded web document the bridge drives. Implementations
// wrap whatever actually hosts the page: a web view, a headless browser, or
// a fake in tests.
type Document interface {
	// Subscribe registers the observer for document-side signals and
	// returns the handle that releases the registration. The document holds
	// a strong reference to the observer until the subscription is
	// cancelled.
	Subscribe(observer DocumentObserver) (Subscription, error)

	// Load starts loading the page. Completion is signalled through
	// DocumentObserver.DocumentLoaded, not by this call returning.
	Load(u *url.URL) error

	// Evaluate runs script in the page and eventually calls complete with
	// the script's return value, nil when the script returned nothing.
	// complete may be nil for fire-and-forget calls and may be invoked on
	// any goroutine.
	Evaluate(script string, complete func(result any, err error))
}

// DocumentObserver receives the document-side signals the bridge cares
// about. The bridge supplies its own observer; hosts only deliver to it.
type DocumentObserver interface {
	// DocumentLoaded signals that the page finished loading.
	DocumentLoaded()
	// MessageReceived delivers one message posted by the page. The body is
	// treated as an opaque string; any other type reads as an empty payload.
	MessageReceived(body any)
	// DecidePolicy asks whether a navigation the page requested may
	// proceed.
	DecidePolicy(nav Navigation) Policy
	// HandleChallenge reports whether an authentication challenge from host
	// was handled; false falls back to the platform default.
	HandleChallenge(host string) bool
}

// Subscription is the registration handle returned by Subscribe. Cancel
// must be idempotent; after it returns the document delivers nothing more
// to the observer.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc func()

func (f SubscriptionFunc) Cancel() { f() }
