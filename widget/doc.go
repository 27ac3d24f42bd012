// Package widget drives the pay-in-installments widget embedded in a web
// document. It owns two directions of a message bridge: native calls are
// rendered into script evaluations the bootstrap page understands, and
// messages posted by the page are parsed into a closed set of typed events.
// A lifecycle state machine sequences the page load, the one-time
// initialization call, and teardown.
package widget
