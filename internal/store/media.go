package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"favsync/internal/services"
)

// AddMedia inserts a catalog entry or updates the existing one sharing the
// same normalized path. The returned item carries the row ID.
func (s *Store) AddMedia(ctx context.Context, item *MediaItem) error {
	if item == nil {
		return errors.New("media item is nil")
	}
	if item.NormalizedPath == "" {
		return errors.New("media item missing normalized path")
	}
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339Nano)

	var existingID int64
	row := s.db.QueryRowContext(ctx, `SELECT id FROM media WHERE normalized_path = ?`, item.NormalizedPath)
	err := row.Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		result, execErr := s.db.ExecContext(ctx,
			`INSERT INTO media (title, year, path, normalized_path, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			item.Title, item.Year, item.Path, item.NormalizedPath, stamp, stamp)
		if execErr != nil {
			return fmt.Errorf("insert media: %w", execErr)
		}
		id, idErr := result.LastInsertId()
		if idErr != nil {
			return fmt.Errorf("insert media id: %w", idErr)
		}
		item.ID = id
	case err != nil:
		return fmt.Errorf("lookup media: %w", err)
	default:
		if _, execErr := s.db.ExecContext(ctx,
			`UPDATE media SET title = ?, year = ?, path = ?, updated_at = ? WHERE id = ?`,
			item.Title, item.Year, item.Path, stamp, existingID); execErr != nil {
			return fmt.Errorf("update media: %w", execErr)
		}
		item.ID = existingID
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// RemoveMedia deletes a catalog entry. Favorites referencing it keep their
// rows; the foreign key clears their library mapping.
func (s *Store) RemoveMedia(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove media rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: media %d", services.ErrNotFound, id)
	}
	return nil
}

// ListMedia returns the full catalog ordered by title.
func (s *Store) ListMedia(ctx context.Context) ([]*MediaItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, year, path, normalized_path, created_at, updated_at
         FROM media ORDER BY title, year, id`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []*MediaItem
	for rows.Next() {
		var (
			item       MediaItem
			createdRaw string
			updatedRaw string
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Year, &item.Path, &item.NormalizedPath, &createdRaw, &updatedRaw); err != nil {
			return nil, err
		}
		if created, parseErr := parseTimeString(createdRaw); parseErr == nil {
			item.CreatedAt = created
		}
		if updated, parseErr := parseTimeString(updatedRaw); parseErr == nil {
			item.UpdatedAt = updated
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// FindByNormalizedPath looks up a catalog row ID by normalized path. It
// satisfies the library index interface used during reconciliation.
func (s *Store) FindByNormalizedPath(ctx context.Context, normalizedPath string) (int64, bool, error) {
	var id int64
	row := s.db.QueryRowContext(ctx, `SELECT id FROM media WHERE normalized_path = ?`, normalizedPath)
	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find media by path: %w", err)
	}
	return id, true, nil
}
