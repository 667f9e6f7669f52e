// Package favsource reads the external Kodi favourites document.
//
// The document is a small XML tree of favourite records, each carrying a
// display name and a built-in command string. Parsing is deliberately
// forgiving: a record missing either field is skipped with a warning, and
// only top-level markup corruption fails the read. The reconciler treats the
// result as an opaque ordered sequence.
package favsource
