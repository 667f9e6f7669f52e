package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ReconcileFavorites applies one scan's worth of favorite state inside a
// single transaction: every existing row is first marked absent, then each
// upsert re-asserts presence by normalized key. Existing rows keep their
// first_seen timestamp; new rows are stamped with the current time. On any
// failure the transaction rolls back and the table is left exactly as it was.
func (s *Store) ReconcileFavorites(ctx context.Context, upserts []FavoriteUpsert) (ReconcileResult, error) {
	var result ReconcileResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin reconcile tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE favorite SET present = 0`); err != nil {
		return ReconcileResult{}, fmt.Errorf("presence sweep: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, upsert := range upserts {
		if upsert.NormalizedKey == "" {
			return ReconcileResult{}, errors.New("favorite upsert missing normalized key")
		}

		var existingID int64
		row := tx.QueryRowContext(ctx, `SELECT id FROM favorite WHERE normalized_key = ?`, upsert.NormalizedKey)
		err := row.Scan(&existingID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO favorite (
                    name, normalized_path, original_path, favorite_type,
                    target_raw, target_classification, normalized_key,
                    library_movie_id, is_mapped, is_missing, present, thumb_ref,
                    first_seen, last_seen, created_at, updated_at
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?, ?, ?)`,
				upsert.Name,
				upsert.NormalizedPath,
				upsert.OriginalPath,
				upsert.FavoriteType,
				upsert.TargetRaw,
				upsert.TargetClassification,
				upsert.NormalizedKey,
				nullableID(upsert.LibraryMovieID),
				boolToInt(upsert.IsMapped),
				boolToInt(upsert.IsMissing),
				nullableString(upsert.ThumbRef),
				now,
				now,
				now,
				now,
			); err != nil {
				return ReconcileResult{}, fmt.Errorf("insert favorite %q: %w", upsert.Name, err)
			}
			result.Added++
		case err != nil:
			return ReconcileResult{}, fmt.Errorf("lookup favorite key: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE favorite
                 SET name = ?, normalized_path = ?, original_path = ?, favorite_type = ?,
                     target_raw = ?, target_classification = ?, library_movie_id = ?,
                     is_mapped = ?, is_missing = ?, present = 1, thumb_ref = ?,
                     last_seen = ?, updated_at = ?
                 WHERE id = ?`,
				upsert.Name,
				upsert.NormalizedPath,
				upsert.OriginalPath,
				upsert.FavoriteType,
				upsert.TargetRaw,
				upsert.TargetClassification,
				nullableID(upsert.LibraryMovieID),
				boolToInt(upsert.IsMapped),
				boolToInt(upsert.IsMissing),
				nullableString(upsert.ThumbRef),
				now,
				now,
				existingID,
			); err != nil {
				return ReconcileResult{}, fmt.Errorf("update favorite %q: %w", upsert.Name, err)
			}
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return ReconcileResult{}, fmt.Errorf("commit reconcile: %w", err)
	}
	return result, nil
}

// FavoriteByKey fetches a favorite row by its normalized key.
func (s *Store) FavoriteByKey(ctx context.Context, key string) (*Favorite, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+favoriteColumns+` FROM favorite WHERE normalized_key = ?`, key)
	favorite, err := scanFavorite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return favorite, nil
}

// ListFavorites returns favorite rows matching the filter, ordered by name.
func (s *Store) ListFavorites(ctx context.Context, filter FavoriteFilter) ([]*Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorite`
	var clauses []string
	if filter.PresentOnly {
		clauses = append(clauses, "present = 1")
	}
	if filter.UnmappedOnly {
		clauses = append(clauses, "is_mapped = 0")
	}
	if filter.MissingOnly {
		clauses = append(clauses, "is_missing = 1")
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY name, id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}
	return favorites, rows.Err()
}

// FavoriteCounts aggregates favorite totals for diagnostics and audit output.
func (s *Store) FavoriteCounts(ctx context.Context) (FavoriteStats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
            COUNT(1),
            COALESCE(SUM(present), 0),
            COALESCE(SUM(is_mapped), 0),
            COALESCE(SUM(is_missing), 0)
        FROM favorite`)
	var stats FavoriteStats
	if err := row.Scan(&stats.Total, &stats.Present, &stats.Mapped, &stats.Missing); err != nil {
		return FavoriteStats{}, fmt.Errorf("favorite counts: %w", err)
	}
	return stats, nil
}

const favoriteColumns = "id, name, normalized_path, original_path, favorite_type, target_raw, target_classification, normalized_key, library_movie_id, is_mapped, is_missing, present, thumb_ref, first_seen, last_seen, created_at, updated_at"

func scanFavorite(scanner interface{ Scan(dest ...any) error }) (*Favorite, error) {
	var (
		id             int64
		name           string
		normalizedPath string
		originalPath   string
		favoriteType   string
		targetRaw      string
		classification string
		normalizedKey  string
		libraryMovieID sql.NullInt64
		isMapped       sql.NullInt64
		isMissing      sql.NullInt64
		present        sql.NullInt64
		thumbRef       sql.NullString
		firstSeenRaw   string
		lastSeenRaw    string
		createdRaw     string
		updatedRaw     string
	)

	if err := scanner.Scan(
		&id,
		&name,
		&normalizedPath,
		&originalPath,
		&favoriteType,
		&targetRaw,
		&classification,
		&normalizedKey,
		&libraryMovieID,
		&isMapped,
		&isMissing,
		&present,
		&thumbRef,
		&firstSeenRaw,
		&lastSeenRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	favorite := &Favorite{
		ID:                   id,
		Name:                 name,
		NormalizedPath:       normalizedPath,
		OriginalPath:         originalPath,
		FavoriteType:         favoriteType,
		TargetRaw:            targetRaw,
		TargetClassification: classification,
		NormalizedKey:        normalizedKey,
		IsMapped:             isMapped.Valid && isMapped.Int64 != 0,
		IsMissing:            isMissing.Valid && isMissing.Int64 != 0,
		Present:              present.Valid && present.Int64 != 0,
		ThumbRef:             thumbRef.String,
	}
	if libraryMovieID.Valid {
		value := libraryMovieID.Int64
		favorite.LibraryMovieID = &value
	}

	if firstSeen, err := parseTimeString(firstSeenRaw); err == nil {
		favorite.FirstSeen = firstSeen
	}
	if lastSeen, err := parseTimeString(lastSeenRaw); err == nil {
		favorite.LastSeen = lastSeen
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		favorite.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		favorite.UpdatedAt = updated
	}
	return favorite, nil
}
