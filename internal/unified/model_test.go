package unified

import (
	"testing"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/config"
	"github.com/blackwell-systems/optibridge/internal/ingest"
)

func TestSpinnerTick_ReachesUploadViewFromAnyTab(t *testing.T) {
	m := New(&config.Config{}, backend.New("", 0))
	if _, err := m.machine.Begin(ingest.FromClipboard()); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	m.currentView = ViewHistory

	// The tick must keep chaining even though the upload view is not
	// the one on screen.
	_, cmd := m.Update(m.upload.spin.Tick())
	if cmd == nil {
		t.Fatal("spinner tick chain broken while a request is outstanding")
	}
}
