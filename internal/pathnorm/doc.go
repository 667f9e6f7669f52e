// Package pathnorm canonicalizes favorite target paths for comparison.
//
// Two raw paths that refer to the same resource but differ in case, separator
// convention, or embedded credentials must normalize identically; the
// normalized form is what the favorite dedup key and the library index match
// on. Credential stripping is a privacy requirement: the normalized form must
// never retain a user:password@ segment.
package pathnorm
