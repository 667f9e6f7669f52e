package notifications

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"favsync/internal/config"
	"favsync/internal/logging"
)

// EventKind identifies a scan lifecycle event.
type EventKind int

const (
	EventScanStarted EventKind = iota
	EventScanCompleted
	EventScanFailed
)

// Event carries the details of one scan lifecycle notification.
type Event struct {
	Kind         EventKind
	ScanID       string
	SourcePath   string
	ItemsFound   int
	ItemsMapped  int
	ItemsAdded   int
	ItemsUpdated int
	Duration     time.Duration
	Err          error
}

// Listener receives scan events. Implementations must not block for long;
// delivery is synchronous.
type Listener interface {
	HandleScanEvent(ctx context.Context, event Event)
}

// Broadcaster fans scan events out to its listeners. A panicking or failing
// listener never disturbs the others or the scan itself.
type Broadcaster struct {
	listeners []Listener
	logger    *slog.Logger
}

// NewBroadcaster assembles the default listener set for the config: a
// structured-log listener, plus an ntfy listener when a topic is configured.
func NewBroadcaster(cfg *config.Config, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = logging.NewNop()
	}
	b := &Broadcaster{logger: logger}
	b.Subscribe(&LogListener{Logger: logging.NewComponentLogger(logger, "notifications")})
	if strings.TrimSpace(cfg.Notifications.NtfyTopic) != "" {
		b.Subscribe(&NtfyListener{Service: NewService(cfg)})
	}
	return b
}

// Subscribe adds a listener. Not safe for concurrent use with Publish.
func (b *Broadcaster) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	b.listeners = append(b.listeners, listener)
}

// Publish delivers the event to every listener in order.
func (b *Broadcaster) Publish(ctx context.Context, event Event) {
	for _, listener := range b.listeners {
		b.deliver(ctx, listener, event)
	}
}

func (b *Broadcaster) deliver(ctx context.Context, listener Listener, event Event) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("scan event listener panicked", logging.Any("panic", r))
		}
	}()
	listener.HandleScanEvent(ctx, event)
}

// LogListener records scan events in the structured log.
type LogListener struct {
	Logger *slog.Logger
}

func (l *LogListener) HandleScanEvent(ctx context.Context, event Event) {
	if l.Logger == nil {
		return
	}
	switch event.Kind {
	case EventScanStarted:
		l.Logger.Info("scan started",
			logging.String(logging.FieldScanID, event.ScanID),
			logging.String(logging.FieldSourcePath, event.SourcePath))
	case EventScanCompleted:
		l.Logger.Info("scan completed",
			logging.String(logging.FieldScanID, event.ScanID),
			logging.String(logging.FieldSourcePath, event.SourcePath),
			logging.Int("items_found", event.ItemsFound),
			logging.Int("items_mapped", event.ItemsMapped),
			logging.Int("items_added", event.ItemsAdded),
			logging.Int("items_updated", event.ItemsUpdated),
			logging.Duration("duration", event.Duration))
	case EventScanFailed:
		l.Logger.Error("scan failed",
			logging.String(logging.FieldScanID, event.ScanID),
			logging.String(logging.FieldSourcePath, event.SourcePath),
			logging.Error(event.Err))
	}
}

// NtfyListener forwards completion and failure events to the push service.
// Delivery failures are swallowed; push is best effort.
type NtfyListener struct {
	Service Service
}

func (l *NtfyListener) HandleScanEvent(ctx context.Context, event Event) {
	if l.Service == nil {
		return
	}
	switch event.Kind {
	case EventScanCompleted:
		_ = l.Service.NotifyScanCompleted(ctx, event.SourcePath, event.ItemsFound, event.ItemsMapped, event.ItemsAdded, event.ItemsUpdated, event.Duration)
	case EventScanFailed:
		_ = l.Service.NotifyScanFailed(ctx, event.SourcePath, event.Err)
	}
}
