package history_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/history"
)

func makeItems(n int) []backend.HistoryItem {
	items := make([]backend.HistoryItem, n)
	for i := range items {
		items[i] = backend.HistoryItem{
			ID:           fmt.Sprintf("id-%02d", i),
			Provider:     backend.ProviderCloudinary,
			OriginalName: fmt.Sprintf("image-%02d.webp", i),
			URL:          fmt.Sprintf("https://cdn.example/%02d.webp", i),
			CreatedAt:    1700000000 - int64(i),
		}
	}
	return items
}

func reload(t *testing.T, m *history.Manager, items []backend.HistoryItem) {
	t.Helper()
	token := m.BeginReload()
	if !m.FinishReload(token, items, nil) {
		t.Fatal("reload not applied")
	}
}

// --- Page window invariants ---

func TestEmptyCollection_IsPageOne(t *testing.T) {
	m := history.New()
	if m.Page() != 1 {
		t.Errorf("Page() = %d, want 1", m.Page())
	}
	if m.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1", m.PageCount())
	}
	if got := m.PageItems(); len(got) != 0 {
		t.Errorf("PageItems() = %d items, want 0", len(got))
	}
}

func TestSetPage_Clamps(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(25)) // 3 pages

	m.SetPage(99)
	if m.Page() != 3 {
		t.Errorf("Page() = %d, want 3", m.Page())
	}
	m.SetPage(-5)
	if m.Page() != 1 {
		t.Errorf("Page() = %d, want 1", m.Page())
	}
}

func TestPageItems_LastPagePartial(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(25))
	m.SetPage(3)

	got := m.PageItems()
	if len(got) != 5 {
		t.Fatalf("page 3 has %d items, want 5", len(got))
	}
	if got[0].ID != "id-20" {
		t.Errorf("first item on page 3 = %q, want %q", got[0].ID, "id-20")
	}
}

func TestReloadShrink_ClampsCurrentPage(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(25))
	m.SetPage(3)

	// Deleting the 6 items on page 3 leaves 19; after the follow-up
	// reload the window must land on page 2 (ceil(19/10) = 2).
	reload(t, m, makeItems(19))
	if m.Page() != 2 {
		t.Errorf("Page() after shrink = %d, want 2", m.Page())
	}
}

func TestReloadToEmpty_ClampsToPageOne(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(11))
	m.SetPage(2)

	reload(t, m, nil)
	if m.Page() != 1 {
		t.Errorf("Page() after emptying = %d, want 1", m.Page())
	}
}

func TestDeleteSequence_PageAlwaysInBounds(t *testing.T) {
	m := history.New()
	for n := 25; n >= 0; n-- {
		reload(t, m, makeItems(n))
		m.SetPage(m.PageCount()) // ride the last page down
		if m.Page() < 1 || m.Page() > m.PageCount() {
			t.Fatalf("n=%d: page %d out of [1,%d]", n, m.Page(), m.PageCount())
		}
	}
}

func TestNextPrevPage_Clamp(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(15)) // 2 pages

	m.PrevPage()
	if m.Page() != 1 {
		t.Errorf("PrevPage on first page: Page() = %d, want 1", m.Page())
	}
	m.NextPage()
	m.NextPage()
	if m.Page() != 2 {
		t.Errorf("NextPage past end: Page() = %d, want 2", m.Page())
	}
}

// --- Stale reloads ---

func TestStaleReload_Discarded(t *testing.T) {
	m := history.New()
	tokenA := m.BeginReload()
	tokenB := m.BeginReload()

	if !m.FinishReload(tokenB, makeItems(3), nil) {
		t.Fatal("latest reload should be applied")
	}
	// The slower, older response arrives afterwards.
	if m.FinishReload(tokenA, makeItems(99), nil) {
		t.Error("superseded reload must be discarded")
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestFailedReload_LeavesCacheUnchanged(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(5))

	token := m.BeginReload()
	if m.FinishReload(token, nil, errors.New("boom")) {
		t.Error("failed reload must not be applied")
	}
	if m.Len() != 5 {
		t.Errorf("Len() = %d, want 5", m.Len())
	}
}

func TestIsLatest(t *testing.T) {
	m := history.New()
	a := m.BeginReload()
	b := m.BeginReload()
	if m.IsLatest(a) {
		t.Error("old token reported as latest")
	}
	if !m.IsLatest(b) {
		t.Error("newest token not reported as latest")
	}
}

// --- Page number strip ---

func TestPageNumbers_NoElisionWhenFew(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(30)) // 3 pages
	m.SetPage(2)

	got := m.PageNumbers()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("PageNumbers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PageNumbers() = %v, want %v", got, want)
		}
	}
}

func TestPageNumbers_ElidesBothSides(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(120)) // 12 pages
	m.SetPage(6)

	got := m.PageNumbers()
	want := []int{1, history.Ellipsis, 5, 6, 7, history.Ellipsis, 12}
	if len(got) != len(want) {
		t.Fatalf("PageNumbers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PageNumbers() = %v, want %v", got, want)
		}
	}
}

func TestPageNumbers_NoGapNoEllipsis(t *testing.T) {
	m := history.New()
	reload(t, m, makeItems(40)) // 4 pages
	m.SetPage(2)

	// 1 2 3 4 — page 3 is adjacent and page 4 is last; no gap exists.
	for _, p := range m.PageNumbers() {
		if p == history.Ellipsis {
			t.Fatalf("unexpected ellipsis in %v", m.PageNumbers())
		}
	}
}

// --- Copy highlight ---

func TestMarkCopied_ExpiresAfterWindow(t *testing.T) {
	m := history.New()
	now := time.Now()

	m.MarkCopied("id-01", now)
	if got := m.CopiedID(now.Add(time.Second)); got != "id-01" {
		t.Errorf("CopiedID within window = %q, want %q", got, "id-01")
	}
	if got := m.CopiedID(now.Add(3 * time.Second)); got != "" {
		t.Errorf("CopiedID after window = %q, want empty", got)
	}
}

func TestMarkCopied_NewTargetSupersedes(t *testing.T) {
	m := history.New()
	now := time.Now()

	m.MarkCopied("id-01", now)
	m.MarkCopied("id-02", now.Add(time.Second))

	if got := m.CopiedID(now.Add(time.Second)); got != "id-02" {
		t.Errorf("CopiedID = %q, want %q (at most one highlight)", got, "id-02")
	}
}
