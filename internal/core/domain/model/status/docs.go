// Package status models the host platform's order status tokens.
//
// A status is identified by a Key carrying the host's "wc-" prefix (for example
// "wc-on-hold"); the unprefixed Slug is what order records and notification
// action names use. List is the ordered key to label mapping that drives admin
// menu rendering, and Registry is the host-global set of registered Definitions.
package status
