package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RecordScan appends one audit row. Rows are never updated or deleted; every
// reconciliation attempt, including failed ones, leaves a record.
func (s *Store) RecordScan(ctx context.Context, record *ScanRecord) error {
	if record == nil {
		return errors.New("scan record is nil")
	}
	now := time.Now().UTC()
	record.CreatedAt = now

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_log (
            scan_type, file_path, file_modified, items_found, items_mapped,
            items_added, items_updated, scan_duration_ms, success,
            error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ScanType,
		record.FilePath,
		nullableTime(record.FileModified),
		record.ItemsFound,
		record.ItemsMapped,
		record.ItemsAdded,
		record.ItemsUpdated,
		record.ScanDurationMS,
		boolToInt(record.Success),
		nullableString(record.ErrorMessage),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("record scan id: %w", err)
	}
	record.ID = id
	return nil
}

// LatestSuccessfulScan returns the most recent successful scan of the given
// source file, or nil when the file has never been scanned successfully.
func (s *Store) LatestSuccessfulScan(ctx context.Context, filePath string) (*ScanRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+scanColumns+` FROM scan_log
         WHERE file_path = ? AND success = 1
         ORDER BY id DESC LIMIT 1`, filePath)
	record, err := scanScanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest scan: %w", err)
	}
	return record, nil
}

// ListScans returns the most recent scan records, newest first. A limit of
// zero or less returns all rows.
func (s *Store) ListScans(ctx context.Context, limit int) ([]*ScanRecord, error) {
	query := `SELECT ` + scanColumns + ` FROM scan_log ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var records []*ScanRecord
	for rows.Next() {
		record, err := scanScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

const scanColumns = "id, scan_type, file_path, file_modified, items_found, items_mapped, items_added, items_updated, scan_duration_ms, success, error_message, created_at"

func scanScanRecord(scanner interface{ Scan(dest ...any) error }) (*ScanRecord, error) {
	var (
		id           int64
		scanType     string
		filePath     string
		fileModified sql.NullString
		itemsFound   int
		itemsMapped  int
		itemsAdded   int
		itemsUpdated int
		durationMS   int64
		success      sql.NullInt64
		errorMessage sql.NullString
		createdRaw   string
	)

	if err := scanner.Scan(
		&id,
		&scanType,
		&filePath,
		&fileModified,
		&itemsFound,
		&itemsMapped,
		&itemsAdded,
		&itemsUpdated,
		&durationMS,
		&success,
		&errorMessage,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	record := &ScanRecord{
		ID:             id,
		ScanType:       scanType,
		FilePath:       filePath,
		ItemsFound:     itemsFound,
		ItemsMapped:    itemsMapped,
		ItemsAdded:     itemsAdded,
		ItemsUpdated:   itemsUpdated,
		ScanDurationMS: durationMS,
		Success:        success.Valid && success.Int64 != 0,
		ErrorMessage:   errorMessage.String,
	}
	if fileModified.Valid {
		if modified, err := parseTimeString(fileModified.String); err == nil {
			record.FileModified = &modified
		}
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	return record, nil
}
