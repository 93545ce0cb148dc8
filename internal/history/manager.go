// Package history owns the cached list of past uploads and the page
// window derived from it.
package history

import (
	"time"

	"github.com/blackwell-systems/optibridge/internal/backend"
)

// PageSize is the fixed number of history items per page.
const PageSize = 10

// Ellipsis marks a gap in the page-number strip returned by PageNumbers.
const Ellipsis = -1

// copyHighlightTTL is how long a copied item stays highlighted.
const copyHighlightTTL = 2 * time.Second

// Manager holds the history cache, replaced wholesale on every reload,
// and the 1-based page window over it. Reloads are sequence-stamped so
// a stale response can never overwrite a newer one. Deletes go through
// the backend and are followed by a reload, never a local splice.
type Manager struct {
	items []backend.HistoryItem
	page  int
	seq   uint64

	copiedID    string
	copiedUntil time.Time
}

// New returns an empty manager on page 1.
func New() *Manager {
	return &Manager{page: 1}
}

// BeginReload stamps a new reload request and returns its token.
func (m *Manager) BeginReload() uint64 {
	m.seq++
	return m.seq
}

// FinishReload applies a reload response. Responses whose token is not
// the latest issued are discarded, as are failed reloads (the cache is
// left unchanged either way). Reports whether the cache was replaced.
func (m *Manager) FinishReload(token uint64, items []backend.HistoryItem, err error) bool {
	if token != m.seq || err != nil {
		return false
	}
	m.items = items
	m.clampPage()
	return true
}

// IsLatest reports whether token belongs to the most recently issued
// reload. Lets callers surface an error only when it is not stale.
func (m *Manager) IsLatest(token uint64) bool { return token == m.seq }

// Items returns the full cached collection, newest first.
func (m *Manager) Items() []backend.HistoryItem { return m.items }

// Len returns the number of cached items.
func (m *Manager) Len() int { return len(m.items) }

// Page returns the current 1-based page number.
func (m *Manager) Page() int { return m.page }

// PageCount returns the number of pages; an empty cache has one page.
func (m *Manager) PageCount() int {
	n := (len(m.items) + PageSize - 1) / PageSize
	if n < 1 {
		n = 1
	}
	return n
}

// SetPage moves to page n, clamped into the valid range.
func (m *Manager) SetPage(n int) {
	m.page = n
	m.clampPage()
}

// NextPage advances one page, clamped.
func (m *Manager) NextPage() { m.SetPage(m.page + 1) }

// PrevPage goes back one page, clamped.
func (m *Manager) PrevPage() { m.SetPage(m.page - 1) }

// PageItems returns the slice of the cache visible on the current page.
func (m *Manager) PageItems() []backend.HistoryItem {
	start := (m.page - 1) * PageSize
	if start >= len(m.items) {
		return nil
	}
	end := start + PageSize
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.items[start:end]
}

// PageNumbers returns the page numbers to display: first, last, and the
// pages adjacent to the current one, with Ellipsis entries for gaps.
// Pure rendering policy; the whole collection is already client-side.
func (m *Manager) PageNumbers() []int {
	total := m.PageCount()
	var out []int
	last := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && (p < m.page-1 || p > m.page+1) {
			continue
		}
		if last != 0 && p-last > 1 {
			out = append(out, Ellipsis)
		}
		out = append(out, p)
		last = p
	}
	return out
}

// MarkCopied highlights one item as just-copied for a fixed 2-second
// window. A new mark supersedes the previous one immediately.
func (m *Manager) MarkCopied(id string, now time.Time) {
	m.copiedID = id
	m.copiedUntil = now.Add(copyHighlightTTL)
}

// CopiedID returns the id of the currently highlighted item, or "" once
// the display window has passed.
func (m *Manager) CopiedID(now time.Time) string {
	if m.copiedID == "" || now.After(m.copiedUntil) {
		return ""
	}
	return m.copiedID
}

func (m *Manager) clampPage() {
	if max := m.PageCount(); m.page > max {
		m.page = max
	}
	if m.page < 1 {
		m.page = 1
	}
}
