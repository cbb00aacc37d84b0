// Package queries contains read-only operations over the host order store and
// the filtered status list.
package queries
