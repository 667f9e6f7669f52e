package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"favsync/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace_OK(t *testing.T) {
	result := CheckFreeSpace("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckSourceDocument(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Source.ProfileDir = filepath.Join(base, "userdata")
	cfg.Source.FavoritesPath = ""

	result := CheckSourceDocument(&cfg)
	if result.Passed {
		t.Fatal("expected failure when no document exists")
	}

	docPath := filepath.Join(cfg.Source.ProfileDir, "favourites.xml")
	if err := os.MkdirAll(cfg.Source.ProfileDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(docPath, []byte("<favourites/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	result = CheckSourceDocument(&cfg)
	if !result.Passed {
		t.Fatalf("expected pass once document exists, got: %s", result.Detail)
	}
	if result.Detail != docPath {
		t.Fatalf("expected detail %q, got %q", docPath, result.Detail)
	}
}
