// Package history provides the persisted conversation transcript.
//
// Persistence model:
//   - Messages are text-only, role-tagged "human" or "ai" on the wire.
//   - Ordering is append-only and significant; the whole log is
//     rewritten after each chat turn, never edited in place.
package history

import "fmt"

// Wire role tags of the persisted transcript.
const (
	RoleHuman = "human"
	RoleAI    = "ai"
)

// Message is one persisted turn of the transcript.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Store abstracts the persisted transcript resource.
type Store interface {
	Load(def []Message) ([]Message, error)
	Save([]Message) error
}

// Log is the in-memory transcript backed by a store resource.
type Log struct {
	store Store
	msgs  []Message
}

// NewLog returns an empty log backed by store.
func NewLog(store Store) *Log {
	return &Log{store: store}
}

// Load replaces the in-memory transcript with the persisted one. A
// missing resource yields an empty transcript.
func (l *Log) Load() error {
	msgs, err := l.store.Load(nil)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	l.msgs = msgs
	return nil
}

// Messages returns the transcript in order.
func (l *Log) Messages() []Message { return l.msgs }

// Len returns the number of persisted-or-pending messages.
func (l *Log) Len() int { return len(l.msgs) }

// Append adds one turn to the in-memory transcript. Call Save to persist.
func (l *Log) Append(role, content string) {
	l.msgs = append(l.msgs, Message{Type: role, Content: content})
}

// Save rewrites the persisted transcript wholesale.
func (l *Log) Save() error {
	if err := l.store.Save(l.msgs); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}
