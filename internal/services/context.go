package services

import "context"

type contextKey string

const (
	scanIDKey    contextKey = "scan_id"
	componentKey contextKey = "component"
)

// WithScanID annotates context with the scan correlation identifier.
func WithScanID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, scanIDKey, id)
}

// ScanIDFromContext extracts the scan correlation identifier if present.
func ScanIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(scanIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithComponent annotates context with the active component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(componentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
