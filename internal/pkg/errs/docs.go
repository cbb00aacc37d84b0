// Package errs provides the typed errors shared by the order status extension and
// the host order runtime.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrObjectNotFound) usable with errors.Is
//   - a struct type carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel
//
// Repositories return ObjectNotFoundError for unknown orders, which the bulk
// status handler treats as "skip this order".
package errs
