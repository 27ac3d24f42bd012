package afterpay

// Environment selects which Afterpay gateway the SDK talks to.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

const (
	sandboxBaseURL    = "https://global-api-sandbox.afterpay.com"
	productionBaseURL = "https://global-api.afterpay.com"

	// DefaultWidgetBootstrapURL hosts the page that loads afterpay.js and
	// relays widget messages back to the native side.
	DefaultWidgetBootstrapURL = "https://afterpay.github.io/sdk-example-server/widget-bootstrap.html"

	// DefaultLocale is used when the caller does not pick one.
	DefaultLocale = "en_AU"
)

// BaseURL returns the API origin for the environment. Anything but
// EnvironmentProduction resolves to the sandbox.
func (e Environment) BaseURL() string {
	if e == EnvironmentProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// Valid reports whether e is one of the two known environments.
func (e Environment) Valid() bool {
	return e == EnvironmentSandbox || e == EnvironmentProduction
}
