package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"favsync/internal/library"
)

type countingIndex struct {
	calls int
	paths map[string]int64
}

func (c *countingIndex) FindByNormalizedPath(_ context.Context, path string) (int64, bool, error) {
	c.calls++
	id, ok := c.paths[path]
	return id, ok, nil
}

func TestCachedIndexMemoizesLookups(t *testing.T) {
	inner := &countingIndex{paths: map[string]int64{"/movies/a.mkv": 7}}
	cached := library.NewCachedIndex(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, found, err := cached.FindByNormalizedPath(ctx, "/movies/a.mkv")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if !found || id != 7 {
			t.Fatalf("expected match 7, got %d (%v)", id, found)
		}
	}
	if _, found, _ := cached.FindByNormalizedPath(ctx, "/movies/missing.mkv"); found {
		t.Fatal("expected miss for unknown path")
	}
	if _, _, err := cached.FindByNormalizedPath(ctx, "/movies/missing.mkv"); err != nil {
		t.Fatalf("cached miss lookup failed: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 inner lookups (one per distinct path), got %d", inner.calls)
	}
}

func TestStatProberLocalPaths(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.mkv")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	prober := library.StatProber{}
	ctx := context.Background()
	if got := prober.Probe(ctx, existing); got != library.ProbeReachable {
		t.Fatalf("expected reachable, got %v", got)
	}
	if got := prober.Probe(ctx, filepath.Join(dir, "gone.mkv")); got != library.ProbeMissing {
		t.Fatalf("expected missing, got %v", got)
	}
}

func TestStatProberLeavesNetworkSchemesUnknown(t *testing.T) {
	prober := library.StatProber{}
	ctx := context.Background()
	for _, path := range []string{"smb://host/share/a.mkv", "nfs://nas/export/a.mkv", ""} {
		if got := prober.Probe(ctx, path); got != library.ProbeUnknown {
			t.Fatalf("expected unknown for %q, got %v", path, got)
		}
	}
}
