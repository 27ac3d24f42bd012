// Package afterpay holds the domain values shared by the SDK: money amounts,
// the merchant's pricing-limit configuration, gateway environments, and the
// error kinds the other packages surface.
//
// Values here are transport types. They are validated when constructed or
// decoded and never mutated afterwards; no arithmetic is performed on them.
package afterpay
