// Package services defines shared error classification and context
// annotation used across favsync components.
//
// Errors surfaced by the source reader, store, and reconciliation engine are
// tagged with sentinel markers via Wrap so callers can branch with errors.Is
// without string matching. Context helpers carry the scan correlation ID and
// component name into structured logs.
package services
