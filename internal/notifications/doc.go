// Package notifications delivers scan lifecycle events to pluggable
// listeners.
//
// The Broadcaster fans events out synchronously; a panicking listener is
// isolated so it can never disturb the scan or the other listeners. Bundled
// listeners cover structured logging and ntfy push, the latter enabled only
// when a topic is configured in config.toml. Per-event toggles let users
// receive completion summaries, error alerts, both, or neither without
// touching the reconciler.
package notifications
