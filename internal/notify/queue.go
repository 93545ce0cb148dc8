// Package notify is the process-wide queue of ephemeral user-facing
// messages. Producers push fire-and-forget; the TUI renders whatever is
// active and entries expire on their own timers.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityDestructive
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityDestructive:
		return "destructive"
	default:
		return "unknown"
	}
}

// Notification is one toast entry.
type Notification struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	expiresAt   time.Time
}

const (
	// defaultTTL is how long a toast stays visible.
	defaultTTL = 4 * time.Second

	// capacity bounds the queue; pushing beyond it drops the oldest.
	capacity = 5
)

// Queue is a bounded queue of notifications with a TTL per entry. It is
// owned by the single TUI event loop and needs no locking.
type Queue struct {
	entries []Notification
	ttl     time.Duration
}

// NewQueue returns an empty queue with the default TTL.
func NewQueue() *Queue {
	return &Queue{ttl: defaultTTL}
}

// Push enqueues a notification at the given time. The oldest entry is
// dropped when the queue is full.
func (q *Queue) Push(title, description string, sev Severity, now time.Time) Notification {
	n := Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Severity:    sev,
		expiresAt:   now.Add(q.ttl),
	}
	q.entries = append(q.entries, n)
	if len(q.entries) > capacity {
		q.entries = q.entries[len(q.entries)-capacity:]
	}
	return n
}

// Info pushes an informational toast.
func (q *Queue) Info(title, description string, now time.Time) {
	q.Push(title, description, SeverityInfo, now)
}

// Success pushes a success toast.
func (q *Queue) Success(title, description string, now time.Time) {
	q.Push(title, description, SeveritySuccess, now)
}

// Error pushes a destructive toast. err may be nil.
func (q *Queue) Error(title string, err error, now time.Time) {
	desc := ""
	if err != nil {
		desc = err.Error()
	}
	q.Push(title, desc, SeverityDestructive, now)
}

// Active prunes expired entries and returns the remaining ones, oldest
// first.
func (q *Queue) Active(now time.Time) []Notification {
	live := q.entries[:0]
	for _, n := range q.entries {
		if now.Before(n.expiresAt) {
			live = append(live, n)
		}
	}
	q.entries = live
	return q.entries
}

// Len returns the number of entries, including not-yet-pruned expired
// ones.
func (q *Queue) Len() int { return len(q.entries) }
