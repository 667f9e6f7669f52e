package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"favsync/internal/config"
	"favsync/internal/store"
)

// minFreeBytes is the free-space floor below which the data volume check
// fails. The database itself is tiny; this guards against a full disk
// corrupting the WAL.
const minFreeBytes = 64 << 20

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem backing path has headroom for
// database growth.
func CheckFreeSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: only %d MiB free)", path, free>>20)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}

// CheckSourceDocument verifies a favourites document exists at one of the
// candidate locations and is readable.
func CheckSourceDocument(cfg *config.Config) Result {
	const name = "Favourites document"

	for _, candidate := range cfg.FavoritesCandidates() {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if err := unix.Access(candidate, unix.R_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", candidate, err)}
		}
		return Result{Name: name, Passed: true, Detail: candidate}
	}
	return Result{Name: name, Detail: "not found at any candidate location"}
}

// CheckDatabase verifies the favorites database is reachable and structurally
// sound.
func CheckDatabase(ctx context.Context, st *store.Store) Result {
	const name = "Database"

	health, err := st.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if !health.DatabaseExists {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", health.DBPath)}
	}
	if !health.TableExists {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: schema not initialized)", health.DBPath)}
	}
	if len(health.MissingColumns) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: missing columns: %v)", health.DBPath, health.MissingColumns)}
	}
	if !health.IntegrityCheck {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: integrity check failed)", health.DBPath)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d favorites)", health.DBPath, health.TotalFavorites)}
}
