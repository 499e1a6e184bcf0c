package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMetadataUnavailable indicates the book folder has no readable
	// metadata document. The folder is skipped, not failed.
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	// ErrNoImages indicates the folder contains no recognized image files,
	// typically because an upload is still in progress.
	ErrNoImages = errors.New("no images found")
	// ErrWrite indicates output files could not be written. The folder is
	// reported failed; processing of other folders continues.
	ErrWrite = errors.New("write failure")
	// ErrConfiguration indicates the configuration is unusable. Fatal at
	// process start.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound indicates a referenced folder or catalog row does not exist.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsSkippable reports whether an error represents a recoverable per-folder
// condition that should skip the folder rather than fail it.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrMetadataUnavailable) || errors.Is(err, ErrNoImages)
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
