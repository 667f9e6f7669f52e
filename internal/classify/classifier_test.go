package classify_test

import (
	"testing"

	"favsync/internal/classify"
)

func TestClassifyCommandShapes(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPath  string
		wantClass classify.Classification
	}{
		{
			name:      "quoted play media",
			target:    `PlayMedia("smb://host/share/movie.mkv")`,
			wantPath:  "smb://host/share/movie.mkv",
			wantClass: classify.ClassFileOrMedia,
		},
		{
			name:      "unquoted play media",
			target:    `PlayMedia(/movies/movie.mkv)`,
			wantPath:  "/movies/movie.mkv",
			wantClass: classify.ClassFileOrMedia,
		},
		{
			name:      "single quoted play media",
			target:    `PlayMedia('/movies/movie.mkv')`,
			wantPath:  "/movies/movie.mkv",
			wantClass: classify.ClassFileOrMedia,
		},
		{
			name:      "database reference",
			target:    `PlayMedia("videodb://movies/titles/42")`,
			wantClass: classify.ClassDatabaseItem,
		},
		{
			name:      "stack file takes first part",
			target:    `PlayMedia("stack:///movies/part1.mkv , /movies/part2.mkv")`,
			wantPath:  "/movies/part1.mkv",
			wantClass: classify.ClassStackFile,
		},
		{
			name:      "plugin target",
			target:    `PlayMedia("plugin://plugin.video.example/?id=1")`,
			wantClass: classify.ClassPluginOrScript,
		},
		{
			name:      "activate window with database path",
			target:    `ActivateWindow(Videos,videodb://movies/titles/,return)`,
			wantClass: classify.ClassDatabaseItem,
		},
		{
			name:      "activate window addon",
			target:    `ActivateWindow(10025,"plugin://plugin.video.example/",return)`,
			wantClass: classify.ClassPluginOrScript,
		},
		{
			name:      "run script",
			target:    `RunScript(script.example)`,
			wantClass: classify.ClassPluginOrScript,
		},
		{
			name:      "run addon",
			target:    `RunAddon(plugin.video.example)`,
			wantClass: classify.ClassPluginOrScript,
		},
		{
			name:      "unrecognized command",
			target:    `ReloadSkin()`,
			wantClass: classify.ClassUnknown,
		},
		{
			name:      "bare string",
			target:    `not a command`,
			wantClass: classify.ClassUnknown,
		},
		{
			name:      "empty",
			target:    "",
			wantClass: classify.ClassUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, class := classify.Classify(tc.target)
			if class != tc.wantClass {
				t.Fatalf("Classify(%q) class = %s, want %s", tc.target, class, tc.wantClass)
			}
			if path != tc.wantPath {
				t.Fatalf("Classify(%q) path = %q, want %q", tc.target, path, tc.wantPath)
			}
			if path != "" && !class.HasPath() {
				t.Fatalf("classification %s should not yield a path", class)
			}
		})
	}
}

func TestClassifyPlayMediaWithExtraArguments(t *testing.T) {
	path, class := classify.Classify(`PlayMedia("/movies/a.mkv",resume)`)
	if class != classify.ClassFileOrMedia || path != "/movies/a.mkv" {
		t.Fatalf("unexpected result %q/%s", path, class)
	}
}

func TestFavoriteType(t *testing.T) {
	tests := []struct {
		path  string
		class classify.Classification
		want  string
	}{
		{"/movies/a.mkv", classify.ClassFileOrMedia, "video"},
		{"/music/song.flac", classify.ClassFileOrMedia, "audio"},
		{"/docs/readme.txt", classify.ClassFileOrMedia, "file"},
		{"/movies/part1.mkv", classify.ClassStackFile, "video"},
		{"", classify.ClassDatabaseItem, "library"},
		{"", classify.ClassPluginOrScript, "addon"},
		{"", classify.ClassUnknown, "unknown"},
	}
	for _, tc := range tests {
		if got := classify.FavoriteType(tc.path, tc.class); got != tc.want {
			t.Fatalf("FavoriteType(%q, %s) = %q, want %q", tc.path, tc.class, got, tc.want)
		}
	}
}
