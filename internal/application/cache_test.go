package application

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func summary(id string, updated time.Time) domain.Session {
	return domain.Session{ID: domain.SessionID(id), CreatedAt: updated.Add(-time.Hour), UpdatedAt: updated}
}

func cacheIDs(c *SessionCache) []domain.SessionID {
	ids := make([]domain.SessionID, 0, c.Len())
	for _, session := range c.Sessions() {
		ids = append(ids, session.ID)
	}
	return ids
}

func TestSessionCacheReplaceAllKeepsServiceOrderAndDropsDuplicates(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	withMessages := summary("a", baseTime)
	withMessages.Messages = []domain.Message{{Role: domain.RoleUser, Content: "x", CreatedAt: baseTime}}

	cache.ReplaceAll([]domain.Session{withMessages, summary("b", baseTime.Add(-time.Hour)), summary("a", baseTime.Add(-2*time.Hour))})

	assert.Equal(t, []domain.SessionID{"a", "b"}, cacheIDs(cache))
	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Nil(t, got.Messages)
	assert.Equal(t, baseTime, got.UpdatedAt)
}

func TestSessionCacheInsertAtFrontReplacesExistingEntry(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	cache.ReplaceAll([]domain.Session{summary("x", baseTime), summary("y", baseTime.Add(-time.Hour))})

	cache.InsertAtFront(summary("y", baseTime.Add(time.Minute)))

	assert.Equal(t, []domain.SessionID{"y", "x"}, cacheIDs(cache))
	assert.Equal(t, 2, cache.Len())
}

func TestSessionCacheInsertAtFrontClampsSkewedTimestamp(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	_, clamped := cache.InsertAtFront(summary("x", baseTime))
	assert.False(t, clamped)

	stored, clamped := cache.InsertAtFront(summary("new", baseTime.Add(-time.Minute)))
	assert.True(t, clamped)
	assert.Equal(t, baseTime, stored.UpdatedAt)

	sessions := cache.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, domain.SessionID("new"), sessions[0].ID)
	assert.False(t, sessions[0].UpdatedAt.Before(sessions[1].UpdatedAt))
}

func TestSessionCacheTouchAndPromote(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	cache.ReplaceAll([]domain.Session{summary("x", baseTime), summary("y", baseTime.Add(-time.Hour))})

	ok := cache.TouchAndPromote("y", baseTime.Add(5*time.Minute))
	require.True(t, ok)

	sessions := cache.Sessions()
	assert.Equal(t, []domain.SessionID{"y", "x"}, cacheIDs(cache))
	assert.Equal(t, baseTime.Add(5*time.Minute), sessions[0].UpdatedAt)
	assert.Equal(t, baseTime, sessions[1].UpdatedAt)
}

func TestSessionCacheTouchAndPromoteMissingIsNoOp(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	cache.ReplaceAll([]domain.Session{summary("x", baseTime)})

	assert.False(t, cache.TouchAndPromote("gone", baseTime.Add(time.Hour)))
	assert.Equal(t, []domain.SessionID{"x"}, cacheIDs(cache))
}

func TestSessionCacheTouchAndPromoteNeverMovesTimeBackwards(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	cache.ReplaceAll([]domain.Session{summary("x", baseTime), summary("y", baseTime.Add(-time.Hour))})

	require.True(t, cache.TouchAndPromote("y", baseTime.Add(-2*time.Hour)))

	sessions := cache.Sessions()
	assert.Equal(t, domain.SessionID("y"), sessions[0].ID)
	assert.Equal(t, baseTime, sessions[0].UpdatedAt)
}

func TestSessionCacheRemoveAndClear(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	cache.ReplaceAll([]domain.Session{summary("x", baseTime), summary("y", baseTime.Add(-time.Hour))})

	assert.True(t, cache.Remove("x"))
	assert.False(t, cache.Remove("x"))
	assert.Equal(t, []domain.SessionID{"y"}, cacheIDs(cache))

	cache.Clear()
	assert.Zero(t, cache.Len())
	cache.Clear()
	assert.Empty(t, cache.Sessions())
}

func TestSessionCacheSessionsReturnsCopy(t *testing.T) {
	t.Parallel()

	cache := NewSessionCache()
	cache.ReplaceAll([]domain.Session{summary("x", baseTime)})

	sessions := cache.Sessions()
	sessions[0].Title = "mutated"

	got, _ := cache.Get("x")
	assert.Empty(t, got.Title)
}

func TestSessionCacheOrderAndUniquenessHoldForRandomSequences(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	cache := NewSessionCache()
	now := baseTime

	for step := 0; step < 500; step++ {
		id := domain.SessionID(fmt.Sprintf("s%d", rng.Intn(8)))
		now = now.Add(time.Duration(rng.Intn(90)) * time.Second)

		switch rng.Intn(4) {
		case 0:
			cache.InsertAtFront(summary(string(id), now))
		case 1, 2:
			if cache.TouchAndPromote(id, now) {
				assert.Equal(t, id, cache.Sessions()[0].ID)
			}
		case 3:
			cache.Remove(id)
		}

		sessions := cache.Sessions()
		seen := map[domain.SessionID]bool{}
		for i, session := range sessions {
			require.False(t, seen[session.ID], "duplicate id %s at step %d", session.ID, step)
			seen[session.ID] = true
			if i > 0 {
				require.False(t, session.LastActivity().After(sessions[i-1].LastActivity()), "order broken at step %d", step)
			}
		}
	}
}

func TestActiveViewAppendExchangeGuardsSessionIdentity(t *testing.T) {
	t.Parallel()

	view := NewActiveView()
	view.Open(summary("a", baseTime))

	exchange := testExchange("hi", baseTime.Add(time.Minute))
	assert.False(t, view.AppendExchange("b", exchange))
	assert.True(t, view.AppendExchange("a", exchange))

	session, ok := view.Session()
	require.True(t, ok)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, domain.RoleUser, session.Messages[0].Role)
	assert.Equal(t, domain.RoleAssistant, session.Messages[1].Role)
	assert.Equal(t, baseTime.Add(time.Minute), session.UpdatedAt)
}

func TestActiveViewOpenInitializesMessagesAndClose(t *testing.T) {
	t.Parallel()

	view := NewActiveView()
	view.Open(summary("a", baseTime))

	session, ok := view.Session()
	require.True(t, ok)
	assert.NotNil(t, session.Messages)
	assert.Empty(t, session.Messages)

	view.Close()
	_, ok = view.Session()
	assert.False(t, ok)
	assert.False(t, view.AppendExchange("a", testExchange("late", baseTime)))
}

func testExchange(content string, at time.Time) domain.Exchange {
	return domain.Exchange{
		User:      domain.Message{Role: domain.RoleUser, Content: content, CreatedAt: at},
		Assistant: domain.Message{Role: domain.RoleAssistant, Content: "re: " + content, CreatedAt: at.Add(time.Second)},
	}
}
