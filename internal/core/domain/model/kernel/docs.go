// Package kernel holds the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders and order items
//   - Money: non-negative decimal amount with an ISO 4217 currency code
//
// Values are immutable and must be created through their constructors; the
// zero value of each type fails Validate.
package kernel
