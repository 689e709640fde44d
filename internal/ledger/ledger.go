// Package ledger manages the persisted meeting list.
package ledger

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the fixed lexical form of every stored meeting time.
// The ledger only stores strings produced by the phrase interpreter, so
// stored times must always parse back under this layout.
const TimeLayout = "2006-01-02 15:04"

// Meeting is one scheduled entry. Title is the identity for deletes,
// compared case-insensitively.
type Meeting struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

// Store abstracts the persisted meeting collection.
type Store interface {
	Load(def []Meeting) ([]Meeting, error)
	Save([]Meeting) error
}

// Ledger reads and rewrites the meeting list wholesale on every operation.
type Ledger struct {
	store Store
}

// New returns a ledger backed by store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Add appends a meeting and rewrites the list. Duplicates are allowed.
func (l *Ledger) Add(title, timeStr string) (string, error) {
	meetings, err := l.store.Load(nil)
	if err != nil {
		return "", err
	}
	meetings = append(meetings, Meeting{Title: title, Time: timeStr})
	if err := l.store.Save(meetings); err != nil {
		return "", err
	}
	return fmt.Sprintf("Meeting '%s' scheduled for %s.", title, timeStr), nil
}

// Upcoming renders every stored entry. Entries that expired mid-session
// still appear; staleness is handled by PruneExpired at startup only.
func (l *Ledger) Upcoming() (string, error) {
	meetings, err := l.store.Load(nil)
	if err != nil {
		return "", err
	}
	if len(meetings) == 0 {
		return "No upcoming meetings found.", nil
	}
	lines := make([]string, 0, len(meetings)+1)
	lines = append(lines, "Upcoming Meetings:")
	for _, m := range meetings {
		lines = append(lines, fmt.Sprintf("- %s at %s", m.Title, m.Time))
	}
	return strings.Join(lines, "\n"), nil
}

// DeleteByTitle removes every entry whose title matches case-insensitively
// and rewrites the list. Deleting a missing title is not an error.
func (l *Ledger) DeleteByTitle(title string) (string, error) {
	meetings, err := l.store.Load(nil)
	if err != nil {
		return "", err
	}
	kept := make([]Meeting, 0, len(meetings))
	for _, m := range meetings {
		if !strings.EqualFold(m.Title, title) {
			kept = append(kept, m)
		}
	}
	if err := l.store.Save(kept); err != nil {
		return "", err
	}
	if len(kept) == len(meetings) {
		return "Meeting not found.", nil
	}
	return fmt.Sprintf("Deleted meeting '%s'.", title), nil
}

// PruneExpired keeps only entries strictly after now and rewrites the
// list. Called once at process start, not per listing.
func (l *Ledger) PruneExpired(now time.Time) error {
	meetings, err := l.store.Load(nil)
	if err != nil {
		return err
	}
	active := make([]Meeting, 0, len(meetings))
	for _, m := range meetings {
		at, err := time.ParseInLocation(TimeLayout, m.Time, now.Location())
		if err != nil {
			return fmt.Errorf("ledger: stored time %q: %w", m.Time, err)
		}
		if at.After(now) {
			active = append(active, m)
		}
	}
	return l.store.Save(active)
}
