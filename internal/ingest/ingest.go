// Package ingest normalizes the three ways an image can enter the app
// (file dialog, drop, clipboard paste) into a single candidate event.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind identifies which ingestion channel produced a candidate.
type SourceKind int

const (
	SourceDialog SourceKind = iota
	SourceDrop
	SourceClipboard
)

func (s SourceKind) String() string {
	switch s {
	case SourceDialog:
		return "dialog"
	case SourceDrop:
		return "drop"
	case SourceClipboard:
		return "clipboard"
	default:
		return "unknown"
	}
}

// Candidate is a user-selected image that has not been processed yet.
// Path is empty only for the clipboard source, where the image bytes
// live in the system clipboard and are read daemon-side.
type Candidate struct {
	Source      SourceKind
	Path        string
	DisplayName string
}

// Extensions lists the accepted image file extensions, without dots.
var Extensions = []string{"png", "jpg", "jpeg", "webp", "gif"}

// Allowed reports whether the file name has an accepted image extension.
func Allowed(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FromPath builds a candidate from a file-dialog selection.
func FromPath(path string) (Candidate, error) {
	if !Allowed(path) {
		return Candidate{}, fmt.Errorf("unsupported file type %q (want %s)",
			filepath.Ext(path), strings.Join(Extensions, ", "))
	}
	return Candidate{
		Source:      SourceDialog,
		Path:        path,
		DisplayName: filepath.Base(path),
	}, nil
}

// FromDrop builds a candidate from dropped paths. Only the first path
// with an accepted extension is used; the rest are ignored.
func FromDrop(paths []string) (Candidate, error) {
	for _, p := range paths {
		if !Allowed(p) {
			continue
		}
		return Candidate{
			Source:      SourceDrop,
			Path:        p,
			DisplayName: filepath.Base(p),
		}, nil
	}
	return Candidate{}, fmt.Errorf("no image among %d dropped file(s)", len(paths))
}

// FromClipboard builds a candidate for the current clipboard image.
func FromClipboard() Candidate {
	return Candidate{
		Source:      SourceClipboard,
		DisplayName: "clipboard",
	}
}
