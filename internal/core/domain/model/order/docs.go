// Package order contains the host platform's order aggregate as seen by the
// status extension: an identifier, a current status key, a note history and the
// status-change events raised since the aggregate was loaded.
//
// Status transitions are not validated beyond the host rule that an unknown
// target status falls back to pending; which transitions are legal is a host
// policy outside this package.
package order
