// Package services provides domain services that work across the order and
// notification models.
//
// The package includes:
//   - NotificationDispatcher: decides which customer notifications a batch of
//     status changes triggers, given the enabled notification actions
package services
