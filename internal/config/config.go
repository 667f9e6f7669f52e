package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Source describes where the Kodi favourites document is searched for.
type Source struct {
	// ProfileDir is the Kodi userdata directory; the primary candidate is
	// <profile_dir>/favourites.xml.
	ProfileDir string `toml:"profile_dir"`
	// FavoritesPath pins an explicit document path and wins over all
	// candidate locations when set.
	FavoritesPath string `toml:"favorites_path"`
	// ExtraPaths are additional fallback locations for non-standard
	// deployments, tried after the built-in candidates.
	ExtraPaths []string `toml:"extra_paths"`
}

// Scan contains reconciliation behavior settings.
type Scan struct {
	// ProbeMissing controls whether unmatched file targets are checked for
	// reachability before being flagged missing.
	ProbeMissing bool `toml:"probe_missing"`
	// LockTimeout is the number of seconds to wait for the scan lock before
	// reporting a scan already in progress.
	LockTimeout int `toml:"lock_timeout"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	ScanComplete   bool   `toml:"scan_complete"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for favsync.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Source: favourites document location search order
//   - Scan: reconciliation behavior (probing, locking)
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Source        Source        `toml:"source"`
	Scan          Scan          `toml:"scan"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/favsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The second and third return
// values report the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("favsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	pathFields := []*string{
		&c.Paths.DataDir,
		&c.Paths.LogDir,
		&c.Source.ProfileDir,
		&c.Source.FavoritesPath,
	}
	for _, field := range pathFields {
		if strings.TrimSpace(*field) == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	extras := make([]string, 0, len(c.Source.ExtraPaths))
	for _, extra := range c.Source.ExtraPaths {
		if strings.TrimSpace(extra) == "" {
			continue
		}
		expanded, err := expandPath(extra)
		if err != nil {
			return err
		}
		extras = append(extras, expanded)
	}
	c.Source.ExtraPaths = extras

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	return nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the favorites database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "favsync.db")
}

// FavoritesCandidates returns the ordered list of locations to search for the
// favourites document. When FavoritesPath is set it is the only candidate.
func (c *Config) FavoritesCandidates() []string {
	if c.Source.FavoritesPath != "" {
		return []string{c.Source.FavoritesPath}
	}
	candidates := make([]string, 0, 3+len(c.Source.ExtraPaths))
	if c.Source.ProfileDir != "" {
		candidates = append(candidates, filepath.Join(c.Source.ProfileDir, "favourites.xml"))
	}
	for _, fallback := range defaultFallbackProfiles {
		expanded, err := expandPath(fallback)
		if err != nil {
			continue
		}
		candidates = append(candidates, filepath.Join(expanded, "favourites.xml"))
	}
	candidates = append(candidates, c.Source.ExtraPaths...)
	return candidates
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
