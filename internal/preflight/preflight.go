package preflight

import (
	"context"

	"favsync/internal/config"
	"favsync/internal/store"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config. The
// store may be nil when the database has not been opened yet.
func RunAll(ctx context.Context, cfg *config.Config, st *store.Store) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckFreeSpace("Data volume", cfg.Paths.DataDir))
	results = append(results, CheckSourceDocument(cfg))

	if st != nil {
		results = append(results, CheckDatabase(ctx, st))
	}

	return results
}
