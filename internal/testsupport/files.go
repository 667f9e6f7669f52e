package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// FavoriteFixture is one <favourite> element written into a test document.
type FavoriteFixture struct {
	Name   string
	Target string
	Thumb  string
}

// WriteFavoritesXML renders a favourites document to the given path, creating
// parent directories as needed.
func WriteFavoritesXML(t testing.TB, path string, favorites ...FavoriteFixture) {
	t.Helper()

	var b strings.Builder
	b.WriteString("<favourites>\n")
	for _, fav := range favorites {
		b.WriteString("    <favourite")
		if fav.Name != "" {
			fmt.Fprintf(&b, " name=%q", fav.Name)
		}
		if fav.Thumb != "" {
			fmt.Fprintf(&b, " thumb=%q", fav.Thumb)
		}
		b.WriteString(">")
		b.WriteString(xmlEscape(fav.Target))
		b.WriteString("</favourite>\n")
	}
	b.WriteString("</favourites>\n")

	WriteDocument(t, path, b.String())
}

// WriteDocument writes raw document content to path, creating parent
// directories as needed.
func WriteDocument(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Touch sets the modification time on path so change detection can be
// exercised deterministically.
func Touch(t testing.TB, path string, modified time.Time) {
	t.Helper()

	if err := os.Chtimes(path, modified, modified); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(value)
}
