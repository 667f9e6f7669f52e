package store

import "time"

// Favorite is a reconciled favorite persisted in SQLite. Rows are soft-retired
// via the Present flag and never deleted, preserving history and any external
// references to them.
type Favorite struct {
	ID                   int64
	Name                 string
	NormalizedPath       string
	OriginalPath         string
	FavoriteType         string
	TargetRaw            string
	TargetClassification string
	NormalizedKey        string
	LibraryMovieID       *int64
	IsMapped             bool
	IsMissing            bool
	Present              bool
	ThumbRef             string
	FirstSeen            time.Time
	LastSeen             time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// FavoriteUpsert carries the per-scan state applied to a favorite row. The
// engine guarantees NormalizedKey is unique within one batch.
type FavoriteUpsert struct {
	Name                 string
	NormalizedPath       string
	OriginalPath         string
	FavoriteType         string
	TargetRaw            string
	TargetClassification string
	NormalizedKey        string
	LibraryMovieID       *int64
	IsMapped             bool
	IsMissing            bool
	ThumbRef             string
}

// ReconcileResult reports the row changes applied by one reconcile transaction.
type ReconcileResult struct {
	Added   int
	Updated int
}

// FavoriteFilter narrows favorite listings.
type FavoriteFilter struct {
	PresentOnly  bool
	UnmappedOnly bool
	MissingOnly  bool
}

// ScanRecord is one append-only audit row per reconciliation attempt.
type ScanRecord struct {
	ID             int64
	ScanType       string
	FilePath       string
	FileModified   *time.Time
	ItemsFound     int
	ItemsMapped    int
	ItemsAdded     int
	ItemsUpdated   int
	ScanDurationMS int64
	Success        bool
	ErrorMessage   string
	CreatedAt      time.Time
}

// MediaItem is a movie in the local catalog the reconciler matches against.
type MediaItem struct {
	ID             int64
	Title          string
	Year           int
	Path           string
	NormalizedPath string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FavoriteStats aggregates favorite counts for diagnostics.
type FavoriteStats struct {
	Total   int
	Present int
	Mapped  int
	Missing int
}

// DatabaseHealth captures diagnostic information about the database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	IntegrityCheck   bool
	TotalFavorites   int
	Error            string
}
