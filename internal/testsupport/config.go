package testsupport

import (
	"path/filepath"
	"testing"

	"favsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Source.ProfileDir = filepath.Join(base, "userdata")
	cfgVal.Scan.ProbeMissing = false
	// Short lock wait keeps contended-lock tests fast.
	cfgVal.Scan.LockTimeout = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFavoritesPath pins the favourites document location on the test config.
func WithFavoritesPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.FavoritesPath = path
	}
}

// WithProbeMissing enables reachability probing on the test config.
func WithProbeMissing() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.ProbeMissing = true
	}
}

// WithNtfyTopic sets the push notification topic on the test config.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}
