package favsource_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"favsync/internal/favsource"
	"favsync/internal/logging"
	"favsync/internal/services"
	"favsync/internal/testsupport"
)

func writeFavorites(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "favourites.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write favourites: %v", err)
	}
	return path
}

func TestReadPreservesDocumentOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := writeFavorites(t, dir, `<favourites>
	<favourite name="Movie B" thumb="b.jpg">PlayMedia("/movies/b.mkv")</favourite>
	<favourite name="Movie A">PlayMedia("/movies/a.mkv")</favourite>
</favourites>`)

	reader := favsource.NewReader(cfg, logging.NewNop())
	entries, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Movie B" || entries[1].Name != "Movie A" {
		t.Fatalf("expected document order preserved, got %#v", entries)
	}
	if entries[0].Thumb != "b.jpg" {
		t.Fatalf("expected thumb attribute carried, got %q", entries[0].Thumb)
	}
}

func TestReadSkipsRecordsMissingFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := writeFavorites(t, dir, `<favourites>
	<favourite name="">PlayMedia("/movies/a.mkv")</favourite>
	<favourite name="No Target">   </favourite>
	<favourite name="Kept">PlayMedia("/movies/kept.mkv")</favourite>
</favourites>`)

	reader := favsource.NewReader(cfg, logging.NewNop())
	entries, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Kept" {
		t.Fatalf("expected only the valid record, got %#v", entries)
	}
}

func TestReadEmptyDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := writeFavorites(t, dir, `<favourites></favourites>`)

	reader := favsource.NewReader(cfg, logging.NewNop())
	entries, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected zero entries, got %d", len(entries))
	}
}

func TestReadMalformedDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := writeFavorites(t, dir, `<favourites><favourite name="A">PlayMedia(`)

	reader := favsource.NewReader(cfg, logging.NewNop())
	entries, err := reader.Read(path)
	if !errors.Is(err, services.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries from malformed document, got %d", len(entries))
	}
}

func TestReadSalvagesRecordsBeforeCorruption(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := writeFavorites(t, dir, `<favourites>
	<favourite name="Movie A">PlayMedia("/movies/a.mkv")</favourite>
	<favourite name="broken">`)

	reader := favsource.NewReader(cfg, logging.NewNop())
	entries, err := reader.Read(path)
	if !errors.Is(err, services.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Movie A" {
		t.Fatalf("expected the record before the corruption point, got %#v", entries)
	}
}

func TestLocateSearchOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	profileDir := t.TempDir()
	extraDir := t.TempDir()
	cfg.Source.ProfileDir = profileDir
	extraPath := filepath.Join(extraDir, "favourites.xml")
	cfg.Source.ExtraPaths = []string{extraPath}

	reader := favsource.NewReader(cfg, logging.NewNop())
	if _, found := reader.Locate(); found {
		t.Fatal("expected no document when none exists")
	}

	if err := os.WriteFile(extraPath, []byte("<favourites/>"), 0o644); err != nil {
		t.Fatalf("write extra: %v", err)
	}
	located, found := reader.Locate()
	if !found || located != extraPath {
		t.Fatalf("expected fallback location %q, got %q (%v)", extraPath, located, found)
	}

	primary := writeFavorites(t, profileDir, "<favourites/>")
	located, found = reader.Locate()
	if !found || located != primary {
		t.Fatalf("expected primary location %q to win, got %q", primary, located)
	}
}

func TestLocateHonorsExplicitOverride(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	pinned := writeFavorites(t, dir, "<favourites/>")
	cfg.Source.FavoritesPath = pinned

	reader := favsource.NewReader(cfg, logging.NewNop())
	located, found := reader.Locate()
	if !found || located != pinned {
		t.Fatalf("expected pinned path %q, got %q", pinned, located)
	}
}

func TestModifiedTime(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	path := writeFavorites(t, dir, "<favourites/>")
	stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	reader := favsource.NewReader(cfg, logging.NewNop())
	got, ok := reader.ModifiedTime(path)
	if !ok || !got.Equal(stamp) {
		t.Fatalf("expected %v, got %v (%v)", stamp, got, ok)
	}
	if _, ok := reader.ModifiedTime(filepath.Join(dir, "missing.xml")); ok {
		t.Fatal("expected missing file to report no timestamp")
	}
}
