// Package kernel holds the identifier value objects shared by the order and
// notification models.
//
//   - OrderID: the host platform's opaque order reference (a positive integer)
//   - UUID: identifiers for order notes and status-change events
//
// Both are immutable and safe for concurrent use.
package kernel
