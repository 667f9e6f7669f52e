package testsupport

import (
	"context"
	"testing"

	"favsync/internal/config"
	"favsync/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// AddMovie inserts a media catalog row for tests and returns its ID.
func AddMovie(t testing.TB, st *store.Store, title string, year int, path, normalizedPath string) int64 {
	t.Helper()

	item := &store.MediaItem{
		Title:          title,
		Year:           year,
		Path:           path,
		NormalizedPath: normalizedPath,
	}
	if err := st.AddMedia(context.Background(), item); err != nil {
		t.Fatalf("store.AddMedia: %v", err)
	}
	return item.ID
}
