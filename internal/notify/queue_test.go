package notify_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blackwell-systems/optibridge/internal/notify"
)

func TestPush_ActiveUntilTTL(t *testing.T) {
	q := notify.NewQueue()
	now := time.Now()

	q.Push("Upload successful", "Image uploaded to cloud", notify.SeveritySuccess, now)

	if got := q.Active(now.Add(time.Second)); len(got) != 1 {
		t.Fatalf("Active() = %d entries, want 1", len(got))
	}
	if got := q.Active(now.Add(10 * time.Second)); len(got) != 0 {
		t.Errorf("Active() after TTL = %d entries, want 0", len(got))
	}
}

func TestPush_BoundedDropsOldest(t *testing.T) {
	q := notify.NewQueue()
	now := time.Now()

	for i := 0; i < 8; i++ {
		q.Push(fmt.Sprintf("toast %d", i), "", notify.SeverityInfo, now)
	}

	got := q.Active(now)
	if len(got) != 5 {
		t.Fatalf("Active() = %d entries, want capacity 5", len(got))
	}
	if got[0].Title != "toast 3" {
		t.Errorf("oldest surviving = %q, want %q", got[0].Title, "toast 3")
	}
	if got[len(got)-1].Title != "toast 7" {
		t.Errorf("newest = %q, want %q", got[len(got)-1].Title, "toast 7")
	}
}

func TestError_UsesErrorString(t *testing.T) {
	q := notify.NewQueue()
	now := time.Now()

	q.Error("Processing failed", errors.New("network error"), now)

	got := q.Active(now)
	if len(got) != 1 {
		t.Fatalf("Active() = %d entries, want 1", len(got))
	}
	if got[0].Severity != notify.SeverityDestructive {
		t.Errorf("Severity = %v, want destructive", got[0].Severity)
	}
	if got[0].Description != "network error" {
		t.Errorf("Description = %q, want %q", got[0].Description, "network error")
	}
}

func TestPush_UniqueIDs(t *testing.T) {
	q := notify.NewQueue()
	now := time.Now()

	a := q.Push("a", "", notify.SeverityInfo, now)
	b := q.Push("b", "", notify.SeverityInfo, now)
	if a.ID == b.ID {
		t.Error("notifications must have unique ids")
	}
}

func TestSeverityString(t *testing.T) {
	if got := notify.SeverityDestructive.String(); got != "destructive" {
		t.Errorf("String() = %q, want %q", got, "destructive")
	}
	if got := notify.SeverityInfo.String(); got != "info" {
		t.Errorf("String() = %q, want %q", got, "info")
	}
}

func TestActive_PrunesExpired(t *testing.T) {
	q := notify.NewQueue()
	now := time.Now()

	q.Push("old", "", notify.SeverityInfo, now)
	q.Push("new", "", notify.SeverityInfo, now.Add(3*time.Second))

	got := q.Active(now.Add(5 * time.Second))
	if len(got) != 1 {
		t.Fatalf("Active() = %d entries, want 1", len(got))
	}
	if got[0].Title != "new" {
		t.Errorf("surviving toast = %q, want %q", got[0].Title, "new")
	}
	if q.Len() != 1 {
		t.Errorf("Len() after prune = %d, want 1", q.Len())
	}
}
