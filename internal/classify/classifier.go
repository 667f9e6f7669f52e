package classify

import (
	"path/filepath"
	"strings"
)

// Classification is the coarse category assigned to a favorite's command
// target. Only file and stack targets are eligible for library matching.
type Classification string

const (
	ClassFileOrMedia    Classification = "file_or_media"
	ClassDatabaseItem   Classification = "database_item"
	ClassStackFile      Classification = "stack_file"
	ClassPluginOrScript Classification = "plugin_or_script"
	ClassUnknown        Classification = "unknown"
)

// HasPath reports whether the classification carries an extracted path.
func (c Classification) HasPath() bool {
	return c == ClassFileOrMedia || c == ClassStackFile
}

// Classify inspects a raw favorite command string and extracts the embedded
// path argument when one exists. Unrecognized command shapes classify as
// unknown rather than failing; classification is advisory, not a validity
// gate.
func Classify(targetRaw string) (string, Classification) {
	trimmed := strings.TrimSpace(targetRaw)
	if trimmed == "" {
		return "", ClassUnknown
	}

	command, arg, ok := splitCommand(trimmed)
	if !ok {
		return "", ClassUnknown
	}

	switch command {
	case "playmedia":
		return classifyMediaTarget(unquote(firstArgument(arg)))
	case "activatewindow":
		if containsDatabaseRef(arg) {
			return "", ClassDatabaseItem
		}
		return "", ClassPluginOrScript
	case "runscript", "runplugin", "runaddon":
		return "", ClassPluginOrScript
	default:
		return "", ClassUnknown
	}
}

// FavoriteType derives the coarse media kind persisted alongside a favorite.
func FavoriteType(extractedPath string, classification Classification) string {
	switch classification {
	case ClassDatabaseItem:
		return "library"
	case ClassPluginOrScript:
		return "addon"
	case ClassUnknown:
		return "unknown"
	}
	switch strings.ToLower(filepath.Ext(extractedPath)) {
	case ".mkv", ".mp4", ".avi", ".m2ts", ".ts", ".mov", ".wmv", ".iso", ".flv", ".webm":
		return "video"
	case ".mp3", ".flac", ".ogg", ".wav", ".m4a", ".aac":
		return "audio"
	default:
		return "file"
	}
}

func classifyMediaTarget(path string) (string, Classification) {
	lower := strings.ToLower(path)
	switch {
	case path == "":
		return "", ClassUnknown
	case strings.HasPrefix(lower, "videodb://"), strings.HasPrefix(lower, "musicdb://"):
		return "", ClassDatabaseItem
	case strings.HasPrefix(lower, "stack://"):
		return firstStackPart(path), ClassStackFile
	case strings.HasPrefix(lower, "plugin://"), strings.HasPrefix(lower, "script://"):
		return "", ClassPluginOrScript
	default:
		return path, ClassFileOrMedia
	}
}

// splitCommand separates "Command(arguments)" into a lowercased command name
// and its raw argument text.
func splitCommand(s string) (command, arg string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	command = strings.ToLower(strings.TrimSpace(s[:open]))
	if command == "" {
		return "", "", false
	}
	arg = s[open+1 : len(s)-1]
	return command, arg, true
}

// firstArgument returns the first comma-separated argument, honoring a quoted
// leading argument that may itself contain commas.
func firstArgument(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}
	if arg[0] == '"' || arg[0] == '\'' {
		quote := arg[0]
		if end := strings.IndexByte(arg[1:], quote); end >= 0 {
			return arg[:end+2]
		}
		return arg
	}
	if comma := strings.IndexByte(arg, ','); comma >= 0 {
		return strings.TrimSpace(arg[:comma])
	}
	return arg
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// firstStackPart extracts the first file of a stack:// multi-part reference.
// Kodi joins stack parts with " , ".
func firstStackPart(path string) string {
	rest := path[len("stack://"):]
	if idx := strings.Index(rest, " , "); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSpace(rest)
}

func containsDatabaseRef(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.Contains(lower, "videodb://") || strings.Contains(lower, "musicdb://")
}
