package application

import (
	"slices"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
)

// SessionCache is the ordered list of session summaries, most recently active
// first. It is not safe for concurrent use; Controller serializes access.
type SessionCache struct {
	entries []domain.Session
}

func NewSessionCache() *SessionCache {
	return &SessionCache{}
}

// ReplaceAll keeps the order the remote service returned. Later duplicates of
// an id are dropped.
func (c *SessionCache) ReplaceAll(sessions []domain.Session) {
	entries := make([]domain.Session, 0, len(sessions))
	seen := make(map[domain.SessionID]struct{}, len(sessions))
	for _, session := range sessions {
		if _, ok := seen[session.ID]; ok {
			continue
		}
		seen[session.ID] = struct{}{}
		entries = append(entries, session.Summary())
	}

	c.entries = entries
}

// InsertAtFront stores the summary of session as the most recent entry. When
// its activity is older than the current front, UpdatedAt is raised to the
// front's so the ordering holds; clamped reports that rewrite.
func (c *SessionCache) InsertAtFront(session domain.Session) (stored domain.Session, clamped bool) {
	summary := session.Summary()
	c.Remove(summary.ID)
	if front, ok := c.front(); ok && summary.LastActivity().Before(front.LastActivity()) {
		summary.UpdatedAt = front.LastActivity()
		clamped = true
	}

	c.entries = slices.Insert(c.entries, 0, summary)
	return summary, clamped
}

// TouchAndPromote moves the session to the front and advances its UpdatedAt.
// It reports false when the id is not cached, which is not an error: a send
// can race a delete of the same session.
func (c *SessionCache) TouchAndPromote(id domain.SessionID, updatedAt time.Time) bool {
	index := c.indexOf(id)
	if index < 0 {
		return false
	}

	entry := c.entries[index]
	touched := latest(updatedAt, entry.LastActivity())
	if front, ok := c.front(); ok {
		touched = latest(touched, front.LastActivity())
	}
	entry.UpdatedAt = touched

	c.entries = slices.Delete(c.entries, index, index+1)
	c.entries = slices.Insert(c.entries, 0, entry)

	return true
}

func (c *SessionCache) Remove(id domain.SessionID) bool {
	index := c.indexOf(id)
	if index < 0 {
		return false
	}

	c.entries = slices.Delete(c.entries, index, index+1)
	return true
}

func (c *SessionCache) Clear() {
	c.entries = nil
}

func (c *SessionCache) Sessions() []domain.Session {
	return slices.Clone(c.entries)
}

func (c *SessionCache) Get(id domain.SessionID) (domain.Session, bool) {
	index := c.indexOf(id)
	if index < 0 {
		return domain.Session{}, false
	}

	return c.entries[index], true
}

func (c *SessionCache) Len() int {
	return len(c.entries)
}

func (c *SessionCache) indexOf(id domain.SessionID) int {
	return slices.IndexFunc(c.entries, func(session domain.Session) bool {
		return session.ID == id
	})
}

func (c *SessionCache) front() (domain.Session, bool) {
	if len(c.entries) == 0 {
		return domain.Session{}, false
	}

	return c.entries[0], true
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}

	return a
}
