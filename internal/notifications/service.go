package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"favsync/internal/config"
)

const userAgent = "favsync/0.1.0"

// Service defines the notification surface exposed to the reconciler.
type Service interface {
	NotifyScanCompleted(ctx context.Context, sourcePath string, found, mapped, added, updated int, duration time.Duration) error
	NotifyScanFailed(ctx context.Context, sourcePath string, scanErr error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:     topic,
		client:       client,
		scanComplete: cfg.Notifications.ScanComplete,
		errors:       cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	scanComplete bool
	errors       bool
}

func (n *ntfyService) NotifyScanCompleted(ctx context.Context, sourcePath string, found, mapped, added, updated int, duration time.Duration) error {
	if !n.scanComplete {
		return nil
	}
	duration = duration.Round(time.Millisecond)
	if duration < 0 {
		duration = 0
	}
	data := payload{
		title: "favsync - Scan Complete",
		message: fmt.Sprintf("Scanned %s: %d favorites (%d mapped, %d added, %d updated) in %s",
			sourcePath, found, mapped, added, updated, duration),
		tags: []string{"favsync", "scan", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanFailed(ctx context.Context, sourcePath string, scanErr error) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Scan failed")
	if sourcePath = strings.TrimSpace(sourcePath); sourcePath != "" {
		builder.WriteString(" for ")
		builder.WriteString(sourcePath)
	}
	builder.WriteString(": ")
	if scanErr != nil {
		builder.WriteString(strings.TrimSpace(scanErr.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "favsync - Error",
		message:  builder.String(),
		tags:     []string{"favsync", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "favsync - Test",
		message:  "Notification system test",
		tags:     []string{"favsync", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanCompleted(context.Context, string, int, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyScanFailed(context.Context, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error                { return nil }
