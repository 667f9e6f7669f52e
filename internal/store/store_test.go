package store_test

import (
	"context"
	"testing"
	"time"

	"favsync/internal/store"
	"favsync/internal/testsupport"
)

func upsertFor(name, path, class string) store.FavoriteUpsert {
	return store.FavoriteUpsert{
		Name:                 name,
		NormalizedPath:       path,
		OriginalPath:         path,
		FavoriteType:         "video",
		TargetRaw:            "PlayMedia(" + path + ")",
		TargetClassification: class,
		NormalizedKey:        name + "\x1f" + path + "\x1f" + class,
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	health, err := st.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.TableExists {
		t.Fatalf("expected migrated database, got %#v", health)
	}
	if len(health.MissingColumns) != 0 {
		t.Fatalf("unexpected missing columns: %v", health.MissingColumns)
	}
	if !health.IntegrityCheck {
		t.Fatal("expected integrity check to pass")
	}
}

func TestReconcileInsertsAndRetires(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := upsertFor("Movie A", "/media/a.mkv", "file_or_media")
	second := upsertFor("Movie B", "/media/b.mkv", "file_or_media")

	result, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{first, second})
	if err != nil {
		t.Fatalf("ReconcileFavorites failed: %v", err)
	}
	if result.Added != 2 || result.Updated != 0 {
		t.Fatalf("unexpected result: %#v", result)
	}

	// Second pass drops Movie B. Its row must survive with present = 0.
	result, err = st.ReconcileFavorites(ctx, []store.FavoriteUpsert{first})
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if result.Added != 0 || result.Updated != 1 {
		t.Fatalf("unexpected second result: %#v", result)
	}

	all, err := st.ListFavorites(ctx, store.FavoriteFilter{})
	if err != nil {
		t.Fatalf("ListFavorites failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}

	retired, err := st.FavoriteByKey(ctx, second.NormalizedKey)
	if err != nil {
		t.Fatalf("FavoriteByKey failed: %v", err)
	}
	if retired == nil {
		t.Fatal("expected retired favorite to persist")
	}
	if retired.Present {
		t.Fatal("expected retired favorite to be marked absent")
	}

	present, err := st.ListFavorites(ctx, store.FavoriteFilter{PresentOnly: true})
	if err != nil {
		t.Fatalf("ListFavorites present failed: %v", err)
	}
	if len(present) != 1 || present[0].Name != "Movie A" {
		t.Fatalf("unexpected present rows: %#v", present)
	}
}

func TestReconcilePreservesFirstSeen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	upsert := upsertFor("Movie A", "/media/a.mkv", "file_or_media")
	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{upsert}); err != nil {
		t.Fatalf("first reconcile failed: %v", err)
	}
	original, err := st.FavoriteByKey(ctx, upsert.NormalizedKey)
	if err != nil {
		t.Fatalf("FavoriteByKey failed: %v", err)
	}
	if original == nil || original.FirstSeen.IsZero() {
		t.Fatalf("expected first_seen to be set, got %#v", original)
	}

	time.Sleep(5 * time.Millisecond)

	upsert.ThumbRef = "special://thumbnails/a.png"
	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{upsert}); err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	updated, err := st.FavoriteByKey(ctx, upsert.NormalizedKey)
	if err != nil {
		t.Fatalf("FavoriteByKey after update failed: %v", err)
	}
	if !updated.FirstSeen.Equal(original.FirstSeen) {
		t.Fatalf("first_seen changed: %v -> %v", original.FirstSeen, updated.FirstSeen)
	}
	if !updated.LastSeen.After(original.LastSeen) {
		t.Fatalf("last_seen did not advance: %v -> %v", original.LastSeen, updated.LastSeen)
	}
	if updated.ThumbRef != "special://thumbnails/a.png" {
		t.Fatalf("thumb ref not updated: %q", updated.ThumbRef)
	}
}

func TestReconcileRollsBackOnBadMapping(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	good := upsertFor("Movie A", "/media/a.mkv", "file_or_media")
	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{good}); err != nil {
		t.Fatalf("seed reconcile failed: %v", err)
	}

	// The second upsert references a catalog row that does not exist, so the
	// foreign key rejects it and the whole batch must roll back, including
	// the presence sweep.
	bogusID := int64(9999)
	bad := upsertFor("Movie B", "/media/b.mkv", "file_or_media")
	bad.LibraryMovieID = &bogusID
	bad.IsMapped = true

	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{good, bad}); err == nil {
		t.Fatal("expected reconcile to fail on bad mapping")
	}

	row, err := st.FavoriteByKey(ctx, good.NormalizedKey)
	if err != nil {
		t.Fatalf("FavoriteByKey failed: %v", err)
	}
	if row == nil || !row.Present {
		t.Fatalf("rollback left favorite absent: %#v", row)
	}
	if missing, err := st.FavoriteByKey(ctx, bad.NormalizedKey); err != nil || missing != nil {
		t.Fatalf("expected no row for failed upsert, got %#v err %v", missing, err)
	}
}

func TestReconcileMapsLibraryMovie(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	movieID := testsupport.AddMovie(t, st, "Movie A", 2008, "/media/a.mkv", "/media/a.mkv")

	upsert := upsertFor("Movie A", "/media/a.mkv", "file_or_media")
	upsert.LibraryMovieID = &movieID
	upsert.IsMapped = true
	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{upsert}); err != nil {
		t.Fatalf("ReconcileFavorites failed: %v", err)
	}

	row, err := st.FavoriteByKey(ctx, upsert.NormalizedKey)
	if err != nil {
		t.Fatalf("FavoriteByKey failed: %v", err)
	}
	if row.LibraryMovieID == nil || *row.LibraryMovieID != movieID {
		t.Fatalf("expected mapping to %d, got %#v", movieID, row.LibraryMovieID)
	}

	// Removing the movie clears the mapping but keeps the favorite.
	if err := st.RemoveMedia(ctx, movieID); err != nil {
		t.Fatalf("RemoveMedia failed: %v", err)
	}
	row, err = st.FavoriteByKey(ctx, upsert.NormalizedKey)
	if err != nil {
		t.Fatalf("FavoriteByKey after removal failed: %v", err)
	}
	if row == nil || row.LibraryMovieID != nil {
		t.Fatalf("expected mapping cleared, got %#v", row)
	}
}

func TestRecordScanAndLatestSuccessful(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	modified := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	failed := &store.ScanRecord{
		ScanType:     "manual",
		FilePath:     "/data/favourites.xml",
		FileModified: &modified,
		Success:      false,
		ErrorMessage: "source not found",
	}
	if err := st.RecordScan(ctx, failed); err != nil {
		t.Fatalf("RecordScan failed: %v", err)
	}
	if failed.ID == 0 {
		t.Fatal("expected scan ID to be assigned")
	}

	latest, err := st.LatestSuccessfulScan(ctx, "/data/favourites.xml")
	if err != nil {
		t.Fatalf("LatestSuccessfulScan failed: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected no successful scan yet, got %#v", latest)
	}

	ok := &store.ScanRecord{
		ScanType:     "manual",
		FilePath:     "/data/favourites.xml",
		FileModified: &modified,
		ItemsFound:   3,
		ItemsMapped:  1,
		ItemsAdded:   3,
		Success:      true,
	}
	if err := st.RecordScan(ctx, ok); err != nil {
		t.Fatalf("RecordScan success failed: %v", err)
	}

	latest, err = st.LatestSuccessfulScan(ctx, "/data/favourites.xml")
	if err != nil {
		t.Fatalf("LatestSuccessfulScan failed: %v", err)
	}
	if latest == nil || latest.ID != ok.ID {
		t.Fatalf("unexpected latest scan: %#v", latest)
	}
	if latest.FileModified == nil || !latest.FileModified.Equal(modified) {
		t.Fatalf("file_modified did not round-trip: %#v", latest.FileModified)
	}

	records, err := st.ListScans(ctx, 10)
	if err != nil {
		t.Fatalf("ListScans failed: %v", err)
	}
	if len(records) != 2 || records[0].ID != ok.ID {
		t.Fatalf("unexpected scan history: %#v", records)
	}
}

func TestFavoriteCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a := upsertFor("Movie A", "/media/a.mkv", "file_or_media")
	b := upsertFor("Movie B", "/media/b.mkv", "file_or_media")
	b.IsMissing = true
	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{a, b}); err != nil {
		t.Fatalf("ReconcileFavorites failed: %v", err)
	}
	if _, err := st.ReconcileFavorites(ctx, []store.FavoriteUpsert{a}); err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}

	stats, err := st.FavoriteCounts(ctx)
	if err != nil {
		t.Fatalf("FavoriteCounts failed: %v", err)
	}
	if stats.Total != 2 || stats.Present != 1 || stats.Missing != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}
