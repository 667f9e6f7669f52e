package reconcile

import (
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"favsync/internal/config"
	"favsync/internal/favsource"
	"favsync/internal/library"
	"favsync/internal/logging"
	"favsync/internal/notifications"
	"favsync/internal/store"
)

// Engine coordinates one favorites reconciliation pass: locate the source
// document, detect change, parse, classify, match against the library, and
// commit the resulting favorite state in a single transaction.
type Engine struct {
	cfg    *config.Config
	store  *store.Store
	source *favsource.Reader
	index  library.Index
	prober library.Prober
	events *notifications.Broadcaster
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock
	scanning atomic.Bool
}

// EngineOption configures optional Engine behavior.
type EngineOption func(*Engine)

// WithBroadcaster overrides the scan event broadcaster (used in tests).
func WithBroadcaster(broadcaster *notifications.Broadcaster) EngineOption {
	return func(e *Engine) {
		e.events = broadcaster
	}
}

// WithIndex overrides the library index consulted during matching.
func WithIndex(index library.Index) EngineOption {
	return func(e *Engine) {
		e.index = index
	}
}

// WithProber overrides the reachability prober.
func WithProber(prober library.Prober) EngineOption {
	return func(e *Engine) {
		e.prober = prober
	}
}

// NewEngine constructs a reconciliation engine. The store doubles as the
// library index unless an override is supplied; results are memoized per
// scan through a fresh cache on each pass.
func NewEngine(cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.DataDir, "favsync.scan.lock")
	engine := &Engine{
		cfg:      cfg,
		store:    st,
		source:   favsource.NewReader(cfg, logger),
		index:    st,
		events:   notifications.NewBroadcaster(cfg, logger),
		logger:   logging.NewComponentLogger(logger, "reconcile"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	if cfg.Scan.ProbeMissing {
		engine.prober = library.StatProber{}
	} else {
		engine.prober = library.NoopProber{}
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// LockPath returns the scan lock file location.
func (e *Engine) LockPath() string {
	return e.lockPath
}
