package logging

import (
	"context"
	"log/slog"

	"favsync/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldScanID is the standardized structured logging key for scan correlation identifiers.
	FieldScanID = "scan_id"
	// FieldScanType is the standardized structured logging key for scan trigger kinds.
	FieldScanType = "scan_type"
	// FieldSourcePath is the standardized structured logging key for the favourites document path.
	FieldSourcePath = "source_path"
	// FieldNormalizedKey is the standardized structured logging key for favorite dedup keys.
	FieldNormalizedKey = "normalized_key"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.ScanIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldScanID, id))
	}
	if component, ok := services.ComponentFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldComponent, component))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		args = append(args, field)
	}
	return logger.With(args...)
}
