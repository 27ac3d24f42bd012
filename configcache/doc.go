// Package configcache serves the merchant's order-limit configuration from
// persistent storage, refreshing it over the network once a freshness window
// elapses. Storage backends range from process memory to SQLite, Redis and
// Postgres; all of them persist the raw gateway payload, never a re-encoded
// form, and only after it has decoded and validated.
package configcache
