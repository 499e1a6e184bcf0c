package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrMetadataUnavailable, "metadata", "open document", "no docx in folder", nil)
	if !errors.Is(err, ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "metadata: open document") {
		t.Fatalf("expected component context in message, got %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrWrite, "pipeline", "write manifest", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite marker, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToWrite(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite default, got %v", err)
	}
}

func TestIsSkippable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"metadata", Wrap(ErrMetadataUnavailable, "metadata", "", "", nil), true},
		{"images", Wrap(ErrNoImages, "imageset", "", "", nil), true},
		{"write", Wrap(ErrWrite, "pipeline", "", "", nil), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSkippable(tc.err); got != tc.want {
				t.Fatalf("IsSkippable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
