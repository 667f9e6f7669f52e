package notifications_test

import (
	"context"
	"testing"
	"time"

	"favsync/internal/logging"
	"favsync/internal/notifications"
)

type recordingListener struct {
	events []notifications.Event
}

func (l *recordingListener) HandleScanEvent(_ context.Context, event notifications.Event) {
	l.events = append(l.events, event)
}

type panickingListener struct{}

func (panickingListener) HandleScanEvent(context.Context, notifications.Event) {
	panic("listener blew up")
}

func TestBroadcasterDeliversInOrder(t *testing.T) {
	b := &notifications.Broadcaster{}
	first := &recordingListener{}
	second := &recordingListener{}
	b.Subscribe(first)
	b.Subscribe(second)

	event := notifications.Event{
		Kind:       notifications.EventScanCompleted,
		ScanID:     "scan-1",
		SourcePath: "/data/favourites.xml",
		ItemsFound: 3,
		Duration:   time.Second,
	}
	b.Publish(context.Background(), event)

	for _, listener := range []*recordingListener{first, second} {
		if len(listener.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(listener.events))
		}
		if listener.events[0].ScanID != "scan-1" || listener.events[0].ItemsFound != 3 {
			t.Fatalf("unexpected event: %#v", listener.events[0])
		}
	}
}

func TestBroadcasterIsolatesPanickingListener(t *testing.T) {
	b := &notifications.Broadcaster{}
	b.Subscribe(panickingListener{})
	after := &recordingListener{}
	b.Subscribe(after)

	b.Publish(context.Background(), notifications.Event{Kind: notifications.EventScanStarted})

	if len(after.events) != 1 {
		t.Fatalf("listener after panic did not receive event: %d", len(after.events))
	}
}

func TestLogListenerHandlesAllKinds(t *testing.T) {
	listener := &notifications.LogListener{Logger: logging.NewNop()}
	for _, kind := range []notifications.EventKind{
		notifications.EventScanStarted,
		notifications.EventScanCompleted,
		notifications.EventScanFailed,
	} {
		listener.HandleScanEvent(context.Background(), notifications.Event{Kind: kind})
	}
}
