// Package store persists favorites, scan audit records, and the local media
// catalog in a single SQLite database. Favorite rows are never deleted: a
// reconcile pass marks every row absent and then re-asserts presence for the
// favorites found in the source document, so retired favorites survive with
// present = 0 and their original first_seen timestamp intact.
package store
