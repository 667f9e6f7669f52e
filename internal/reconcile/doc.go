// Package reconcile turns a Kodi favourites document into durable favorite
// state. A pass locates the document, skips cleanly when it is unchanged,
// parses and classifies each favourite, matches file targets against the
// local media catalog, and commits everything in one transaction so readers
// never observe a half-applied scan. Favorites that vanish from the document
// are retired in place rather than deleted.
package reconcile
