package services_test

import (
	"errors"
	"testing"

	"favsync/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("disk unplugged")
	err := services.Wrap(services.ErrSourceNotFound, "source", "locate", "no candidates", base)
	if !errors.Is(err, services.ErrSourceNotFound) {
		t.Fatalf("expected wrapped error to match marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "engine", "commit", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected nil marker to default to transient, got %v", err)
	}
}

func TestWrapBuildsDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "store", "upsert", "empty key", nil)
	want := "validation error: store: upsert: empty key"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
