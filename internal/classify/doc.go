// Package classify assigns a coarse category to favorite command targets.
//
// Kodi favorites store a built-in command string such as
// PlayMedia("smb://host/share/movie.mkv") or ActivateWindow(Videos,
// videodb://movies/titles/). Classify recognizes a fixed set of command
// shapes and extracts the embedded path for the ones that can be matched
// against the library.
package classify
