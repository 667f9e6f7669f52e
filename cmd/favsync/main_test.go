package main

import (
	"testing"
)

func TestScanThenFavoritesList(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestFavorites(t, env, `<favourites>
    <favourite name="Movie A" thumb="a.png">PlayMedia("/media/a.mkv")</favourite>
    <favourite name="Weather">ActivateWindow(Weather)</favourite>
</favourites>
`)

	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "favorites found:  2")
	requireContains(t, out, "rows added:       2")

	out, _, err = runCLI(t, []string{"favorites", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites list: %v", err)
	}
	requireContains(t, out, "Movie A")
	requireContains(t, out, "Weather")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "manual")
}

func TestScanSkipReportedToUser(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestFavorites(t, env, `<favourites>
    <favourite name="Movie A">PlayMedia("/media/a.mkv")</favourite>
</favourites>
`)

	if _, _, err := runCLI(t, []string{"scan"}, env.configPath); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	requireContains(t, out, "unchanged")
}

func TestScanFailsWithoutSource(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err == nil {
		t.Fatal("expected scan to fail without a favourites document")
	}
}

func TestLibraryAddListRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"library", "add", "--title", "Movie A", "--year", "2008", "/media/a.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("library add: %v", err)
	}
	requireContains(t, out, "Added Movie A")

	out, _, err = runCLI(t, []string{"library", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	requireContains(t, out, "Movie A")
	requireContains(t, out, "2008")

	out, _, err = runCLI(t, []string{"library", "remove", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("library remove: %v", err)
	}
	requireContains(t, out, "Removed catalog entry 1")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "favsync")
}
