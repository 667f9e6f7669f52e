package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"favsync/internal/classify"
	"favsync/internal/favsource"
	"favsync/internal/library"
	"favsync/internal/logging"
	"favsync/internal/notifications"
	"favsync/internal/pathnorm"
	"favsync/internal/services"
	"favsync/internal/store"
)

// Scan types recorded in the audit log.
const (
	ScanTypeManual  = "manual"
	ScanTypeForced  = "forced"
	ScanTypeInitial = "initial"
)

// lockRetryInterval is how often a blocked scan re-attempts the cross-process
// file lock while waiting out scan.lock_timeout.
const lockRetryInterval = 100 * time.Millisecond

// Options controls a single reconciliation pass.
type Options struct {
	// Force skips change detection and reconciles even when the source
	// document is unchanged since the last successful scan.
	Force bool
	// Type labels the scan in the audit log. Empty defaults to manual, or
	// forced when Force is set.
	Type string
}

// Outcome summarizes one reconciliation pass.
type Outcome struct {
	ScanID     string
	SourcePath string
	// Skipped is true when change detection found the document unmodified;
	// a skipped pass writes nothing, not even an audit row.
	Skipped      bool
	ItemsFound   int
	ItemsMapped  int
	ItemsAdded   int
	ItemsUpdated int
	Duration     time.Duration
	// Warning carries a non-fatal parse problem: a corrupt document still
	// reconciles with whatever records parsed before the corruption point
	// rather than failing the scan.
	Warning string
}

// Scan runs one reconciliation pass. A concurrent call in this process is
// rejected with ErrScanInProgress immediately; a lock held by another process
// is retried for up to scan.lock_timeout seconds before the same error is
// returned.
func (e *Engine) Scan(ctx context.Context, opts Options) (*Outcome, error) {
	if !e.scanning.CompareAndSwap(false, true) {
		return nil, services.Wrap(services.ErrScanInProgress, "reconcile", "scan", "another scan is running in this process", nil)
	}
	defer e.scanning.Store(false)

	lockCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Scan.LockTimeout)*time.Second)
	defer cancel()
	locked, err := e.lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrScanInProgress, "reconcile", "scan", "scan lock held by another process", nil)
	}
	defer func() {
		_ = e.lock.Unlock()
	}()

	scanID := uuid.NewString()
	ctx = services.WithScanID(ctx, scanID)
	log := logging.WithContext(ctx, e.logger)

	scanType := opts.Type
	if scanType == "" {
		if opts.Force {
			scanType = ScanTypeForced
		} else {
			scanType = ScanTypeManual
		}
	}

	start := time.Now()
	outcome := &Outcome{ScanID: scanID}

	sourcePath, found := e.source.Locate()
	if !found {
		scanErr := services.Wrap(services.ErrSourceNotFound, "reconcile", "locate", "no favourites document at any candidate location", nil)
		e.recordFailure(ctx, log, scanType, "", nil, start, scanErr)
		return nil, scanErr
	}
	outcome.SourcePath = sourcePath

	modTime, haveModTime := e.source.ModifiedTime(sourcePath)

	if !opts.Force && haveModTime {
		latest, err := e.store.LatestSuccessfulScan(ctx, sourcePath)
		if err != nil {
			return nil, fmt.Errorf("change detection: %w", err)
		}
		if latest != nil && latest.FileModified != nil && latest.FileModified.Equal(modTime) {
			log.Info("favourites unchanged since last scan, skipping",
				logging.String(logging.FieldSourcePath, sourcePath),
				logging.Time("file_modified", modTime))
			outcome.Skipped = true
			outcome.Duration = time.Since(start)
			return outcome, nil
		}
	}

	e.events.Publish(ctx, notifications.Event{
		Kind:       notifications.EventScanStarted,
		ScanID:     scanID,
		SourcePath: sourcePath,
	})

	entries, readErr := e.source.Read(sourcePath)
	if readErr != nil {
		if !errors.Is(readErr, services.ErrMalformedDocument) {
			e.recordFailure(ctx, log, scanType, sourcePath, modTimePtr(modTime, haveModTime), start, readErr)
			return nil, readErr
		}
		// Corrupt markup stops the parse but the records before the
		// corruption point survive: they reconcile normally, everything
		// after is treated as absent, the pass succeeds, and the parse
		// error lands in the audit row so the corruption shows in history.
		log.Warn("favourites document is malformed past the last parsed record",
			logging.String(logging.FieldSourcePath, sourcePath),
			logging.Int("records_salvaged", len(entries)),
			logging.Error(readErr))
		outcome.Warning = readErr.Error()
	}
	outcome.ItemsFound = len(entries)

	upserts, mapped, err := e.buildUpserts(ctx, entries)
	if err != nil {
		e.recordFailure(ctx, log, scanType, sourcePath, modTimePtr(modTime, haveModTime), start, err)
		return nil, err
	}
	outcome.ItemsMapped = mapped

	result, err := e.store.ReconcileFavorites(ctx, upserts)
	if err != nil {
		commitErr := fmt.Errorf("commit favorites: %w", err)
		e.recordFailure(ctx, log, scanType, sourcePath, modTimePtr(modTime, haveModTime), start, commitErr)
		return nil, commitErr
	}
	outcome.ItemsAdded = result.Added
	outcome.ItemsUpdated = result.Updated
	outcome.Duration = time.Since(start)

	record := &store.ScanRecord{
		ScanType:       scanType,
		FilePath:       sourcePath,
		FileModified:   modTimePtr(modTime, haveModTime),
		ItemsFound:     outcome.ItemsFound,
		ItemsMapped:    outcome.ItemsMapped,
		ItemsAdded:     outcome.ItemsAdded,
		ItemsUpdated:   outcome.ItemsUpdated,
		ScanDurationMS: outcome.Duration.Milliseconds(),
		Success:        true,
		ErrorMessage:   outcome.Warning,
	}
	if err := e.store.RecordScan(ctx, record); err != nil {
		return nil, fmt.Errorf("record scan: %w", err)
	}

	e.events.Publish(ctx, notifications.Event{
		Kind:         notifications.EventScanCompleted,
		ScanID:       scanID,
		SourcePath:   sourcePath,
		ItemsFound:   outcome.ItemsFound,
		ItemsMapped:  outcome.ItemsMapped,
		ItemsAdded:   outcome.ItemsAdded,
		ItemsUpdated: outcome.ItemsUpdated,
		Duration:     outcome.Duration,
	})

	return outcome, nil
}

// buildUpserts turns parsed favourites into store upserts: classify the
// target, normalize the extracted path, match it against the library, and
// probe unmatched file targets for reachability. Duplicate normalized keys
// collapse to the last occurrence, mirroring how Kodi resolves duplicate
// document entries.
func (e *Engine) buildUpserts(ctx context.Context, entries []favsource.Entry) ([]store.FavoriteUpsert, int, error) {
	index := library.NewCachedIndex(e.index)

	keyed := make(map[string]int, len(entries))
	upserts := make([]store.FavoriteUpsert, 0, len(entries))

	for _, entry := range entries {
		extractedPath, classification := classify.Classify(entry.Target)
		normalizedPath := ""
		if classification.HasPath() && extractedPath != "" {
			normalizedPath = pathnorm.Normalize(extractedPath)
		}

		upsert := store.FavoriteUpsert{
			Name:                 entry.Name,
			NormalizedPath:       normalizedPath,
			OriginalPath:         extractedPath,
			FavoriteType:         classify.FavoriteType(extractedPath, classification),
			TargetRaw:            entry.Target,
			TargetClassification: string(classification),
			NormalizedKey:        pathnorm.Key(entry.Name, normalizedPath, string(classification)),
			ThumbRef:             entry.Thumb,
		}

		if normalizedPath != "" {
			movieID, matched, err := index.FindByNormalizedPath(ctx, normalizedPath)
			if err != nil {
				return nil, 0, fmt.Errorf("library lookup for %q: %w", normalizedPath, err)
			}
			if matched {
				id := movieID
				upsert.LibraryMovieID = &id
				upsert.IsMapped = true
			}
		}

		if !upsert.IsMapped && probeEligible(classification) {
			if e.prober.Probe(ctx, extractedPath) == library.ProbeMissing {
				upsert.IsMissing = true
			}
		}

		if at, seen := keyed[upsert.NormalizedKey]; seen {
			e.logger.Debug("duplicate favorite collapsed, last occurrence wins",
				logging.String(logging.FieldNormalizedKey, upsert.NormalizedKey))
			upserts[at] = upsert
			continue
		}
		keyed[upsert.NormalizedKey] = len(upserts)
		upserts = append(upserts, upsert)
	}

	mapped := 0
	for _, upsert := range upserts {
		if upsert.IsMapped {
			mapped++
		}
	}
	return upserts, mapped, nil
}

func probeEligible(classification classify.Classification) bool {
	return classification == classify.ClassFileOrMedia || classification == classify.ClassStackFile
}

func (e *Engine) recordFailure(ctx context.Context, log *slog.Logger, scanType, sourcePath string, modified *time.Time, start time.Time, scanErr error) {
	record := &store.ScanRecord{
		ScanType:       scanType,
		FilePath:       sourcePath,
		FileModified:   modified,
		ScanDurationMS: time.Since(start).Milliseconds(),
		Success:        false,
		ErrorMessage:   scanErr.Error(),
	}
	if err := e.store.RecordScan(ctx, record); err != nil {
		log.Error("recording failed scan", logging.Error(err))
	}
	log.Error("reconciliation failed",
		logging.String(logging.FieldScanType, scanType),
		logging.String(logging.FieldSourcePath, sourcePath),
		logging.Error(scanErr))

	scanID, _ := services.ScanIDFromContext(ctx)
	e.events.Publish(ctx, notifications.Event{
		Kind:       notifications.EventScanFailed,
		ScanID:     scanID,
		SourcePath: sourcePath,
		Err:        scanErr,
	})
}

func modTimePtr(modTime time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	t := modTime
	return &t
}
