package pathnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeySeparator joins the components of a normalized favorite key. U+001F is
// not expected in favorite names, paths, or classification labels.
const KeySeparator = "\x1f"

var lowerCaser = cases.Lower(language.Und)

// Normalize canonicalizes a raw path or URI string into a comparison key.
// It is total: unparseable input degrades to a lowercased, separator-fixed
// form instead of erroring.
//
// Steps, in order: lowercase, backslash separators to forward slashes,
// scheme canonicalization (file:// unwrapped to a plain path, network-share
// schemes kept), and irreversible removal of any user:password@ credential
// segment from the authority.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = trimMatchingQuotes(s)
	s = lowerCaser.String(s)
	s = strings.ReplaceAll(s, "\\", "/")

	scheme, rest, ok := splitScheme(s)
	if !ok {
		return trimTrailingSlashes(s)
	}

	if scheme == "file" {
		// file:///movies/a.mkv carries an empty authority; unwrap to the
		// plain path form so it compares equal to a direct path.
		return trimTrailingSlashes(rest)
	}

	rest = stripCredentials(rest)
	return scheme + "://" + trimTrailingSlashes(rest)
}

// Key derives the deduplication identity for a favorite from its display
// name, normalized path, and classification label.
func Key(name, normalizedPath, classification string) string {
	return strings.Join([]string{name, normalizedPath, classification}, KeySeparator)
}

func splitScheme(s string) (scheme, rest string, ok bool) {
	idx := strings.Index(s, "://")
	if idx <= 0 {
		return "", s, false
	}
	scheme = s[:idx]
	for _, r := range scheme {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return "", s, false
		}
	}
	return scheme, s[idx+len("://"):], true
}

// stripCredentials removes a user[:password]@ prefix from the authority
// component, preserving host, port, and path.
func stripCredentials(rest string) string {
	authorityEnd := strings.IndexByte(rest, '/')
	authority := rest
	remainder := ""
	if authorityEnd >= 0 {
		authority = rest[:authorityEnd]
		remainder = rest[authorityEnd:]
	}
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		authority = authority[at+1:]
	}
	return authority + remainder
}

func trimMatchingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func trimTrailingSlashes(s string) string {
	trimmed := strings.TrimRight(s, "/")
	if trimmed == "" {
		// Keep a lone root slash instead of collapsing to nothing.
		if strings.HasPrefix(s, "/") {
			return "/"
		}
	}
	return trimmed
}
