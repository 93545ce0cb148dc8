package ingest_test

import (
	"testing"

	"github.com/blackwell-systems/optibridge/internal/ingest"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"shot.png", true},
		{"photo.JPG", true},
		{"anim.gif", true},
		{"pic.webp", true},
		{"pic.jpeg", true},
		{"doc.pdf", false},
		{"archive.tar.gz", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := ingest.Allowed(c.name); got != c.want {
			t.Errorf("Allowed(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFromPath_Valid(t *testing.T) {
	c, err := ingest.FromPath("/home/u/pics/shot.png")
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	if c.Source != ingest.SourceDialog {
		t.Errorf("Source = %v, want dialog", c.Source)
	}
	if c.Path != "/home/u/pics/shot.png" {
		t.Errorf("Path = %q", c.Path)
	}
	if c.DisplayName != "shot.png" {
		t.Errorf("DisplayName = %q, want %q", c.DisplayName, "shot.png")
	}
}

func TestFromPath_RejectsUnsupported(t *testing.T) {
	if _, err := ingest.FromPath("/tmp/notes.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestFromDrop_FirstMatchWins(t *testing.T) {
	c, err := ingest.FromDrop([]string{"/a/one.png", "/a/two.jpg", "/a/three.gif"})
	if err != nil {
		t.Fatalf("FromDrop: %v", err)
	}
	if c.Path != "/a/one.png" {
		t.Errorf("Path = %q, want first dropped file", c.Path)
	}
	if c.Source != ingest.SourceDrop {
		t.Errorf("Source = %v, want drop", c.Source)
	}
}

func TestFromDrop_SkipsNonImages(t *testing.T) {
	c, err := ingest.FromDrop([]string{"/a/readme.md", "/a/two.jpg"})
	if err != nil {
		t.Fatalf("FromDrop: %v", err)
	}
	if c.Path != "/a/two.jpg" {
		t.Errorf("Path = %q, want %q", c.Path, "/a/two.jpg")
	}
}

func TestFromDrop_NoImages(t *testing.T) {
	if _, err := ingest.FromDrop([]string{"/a/readme.md"}); err == nil {
		t.Error("expected error when nothing droppable")
	}
}

func TestFromClipboard_NoPath(t *testing.T) {
	c := ingest.FromClipboard()
	if c.Source != ingest.SourceClipboard {
		t.Errorf("Source = %v, want clipboard", c.Source)
	}
	if c.Path != "" {
		t.Errorf("Path = %q, want empty (data lives in memory)", c.Path)
	}
	if c.DisplayName != "clipboard" {
		t.Errorf("DisplayName = %q, want %q", c.DisplayName, "clipboard")
	}
}
