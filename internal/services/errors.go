package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceNotFound reports that no favourites document exists at any
	// known location.
	ErrSourceNotFound = errors.New("favorites source not found")
	// ErrMalformedDocument reports top-level markup corruption in the
	// favourites document.
	ErrMalformedDocument = errors.New("malformed favorites document")
	// ErrScanInProgress reports a second scan attempted while one is running.
	ErrScanInProgress = errors.New("scan already in progress")

	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
