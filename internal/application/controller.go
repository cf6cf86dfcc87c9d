package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/bnema/recruit-chat-cli/internal/observability"
	"github.com/bnema/recruit-chat-cli/internal/ports"
)

const controllerSource = "chat.controller"

type Intent string

const (
	IntentSend         Intent = "send"
	IntentListSessions Intent = "list_sessions"
	IntentOpenSession  Intent = "open_session"
	IntentDelete       Intent = "delete_session"
	IntentClearAll     Intent = "clear_all"
	IntentLogout       Intent = "logout"
)

// CredentialResetter removes the persisted bearer credential on logout.
type CredentialResetter interface {
	Clear(ctx context.Context) error
}

type SendOptions struct {
	// JobID scopes a newly created session to a job posting. It is ignored
	// when a session is already open.
	JobID domain.JobID
}

// Controller owns the session cache and the active view. Every intent that
// reaches the remote service applies its cache and view effects in a single
// critical section, and only after the remote call succeeded. Readers may call
// the accessors at any time.
type Controller struct {
	remote      ports.SessionService
	credentials CredentialResetter
	clock       ports.Clock
	observer    observability.Observer

	mu    sync.RWMutex
	cache *SessionCache
	view  *ActiveView
	// viewEpoch advances whenever the view actually changes hands.
	viewEpoch uint64
	// generation advances on ClearAll and Logout. Responses to intents
	// begun under an older generation are dropped.
	generation  uint64
	openSeq     uint64
	openPending map[uint64]struct{}
	lastErr     error
	inFlight    int
	version     uint64
	subscribers map[int]chan struct{}
	nextSubID   int
}

func NewController(remote ports.SessionService, credentials CredentialResetter, clock ports.Clock, observer observability.Observer) *Controller {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	return &Controller{
		remote:      remote,
		credentials: credentials,
		clock:       clock,
		observer:    observer,
		cache:       NewSessionCache(),
		view:        NewActiveView(),
		openPending: map[uint64]struct{}{},
		subscribers: map[int]chan struct{}{},
	}
}

// Send posts content to the open session, or creates a new session when none
// is open. It returns the exchange the service recorded.
func (c *Controller) Send(ctx context.Context, content string, opts SendOptions) (domain.Exchange, error) {
	if strings.TrimSpace(content) == "" {
		err := fmt.Errorf("%w: message is empty", domain.ErrInvalid)
		c.rejectLocally(ctx, IntentSend, err)
		return domain.Exchange{}, err
	}

	c.mu.RLock()
	target, open := c.view.ID()
	c.mu.RUnlock()

	if !open {
		return c.sendNew(ctx, content, opts)
	}

	return c.sendExisting(ctx, target, content)
}

func (c *Controller) sendNew(ctx context.Context, content string, opts SendOptions) (domain.Exchange, error) {
	p := c.begin(ctx, IntentSend, map[string]any{"job_id": string(opts.JobID), "new_session": true})

	session, exchange, err := c.remote.CreateAndSend(ctx, content, opts.JobID)
	if err != nil {
		err = fmt.Errorf("create session: %w", err)
		c.fail(ctx, IntentSend, err)
		return domain.Exchange{}, err
	}
	session.UpdatedAt = latest(session.UpdatedAt, exchange.Assistant.CreatedAt)

	c.complete(ctx, IntentSend, func(notes *[]observability.Event) {
		if c.generation != p.generation {
			*notes = append(*notes, c.staleEvent(IntentSend, session.ID))
			return
		}

		if stored, clamped := c.cache.InsertAtFront(session); clamped {
			*notes = append(*notes, c.event(observability.EventActivityClamped, observability.LevelDebug, map[string]any{
				"session_id":        string(session.ID),
				"server_updated_at": session.UpdatedAt,
				"clamped_to":        stored.UpdatedAt,
			}))
		}

		// A later open still waiting on the service wins the view.
		_, open := c.view.ID()
		if open || c.viewEpoch != p.epoch || c.openPendingAfterLocked(p.openSeq) {
			*notes = append(*notes, c.staleEvent(IntentSend, session.ID))
			return
		}
		c.view.Open(session.Summary())
		c.view.AppendExchange(session.ID, exchange)
		c.viewEpoch++
	}, map[string]any{"session_id": string(session.ID)})

	return exchange, nil
}

func (c *Controller) sendExisting(ctx context.Context, target domain.SessionID, content string) (domain.Exchange, error) {
	p := c.begin(ctx, IntentSend, map[string]any{"session_id": string(target)})

	exchange, err := c.remote.SendToExisting(ctx, target, content)
	if err != nil {
		err = fmt.Errorf("send to session %s: %w", target, err)
		c.fail(ctx, IntentSend, err)
		return domain.Exchange{}, err
	}

	touchedAt := exchange.Assistant.CreatedAt
	if touchedAt.IsZero() {
		touchedAt = c.clock.Now()
	}

	c.complete(ctx, IntentSend, func(notes *[]observability.Event) {
		if c.generation != p.generation {
			*notes = append(*notes, c.staleEvent(IntentSend, target))
			return
		}
		if !c.cache.TouchAndPromote(target, touchedAt) {
			*notes = append(*notes, c.event(observability.EventPromoteMissing, observability.LevelWarning, map[string]any{
				"intent":     string(IntentSend),
				"session_id": string(target),
			}))
		}
		if !c.view.AppendExchange(target, exchange) {
			*notes = append(*notes, c.staleEvent(IntentSend, target))
		}
	}, map[string]any{"session_id": string(target)})

	return exchange, nil
}

// ListSessions replaces the cache with the service's list.
func (c *Controller) ListSessions(ctx context.Context) ([]domain.Session, error) {
	p := c.begin(ctx, IntentListSessions, nil)

	sessions, err := c.remote.ListSessions(ctx)
	if err != nil {
		err = fmt.Errorf("list sessions: %w", err)
		c.fail(ctx, IntentListSessions, err)
		return nil, err
	}

	var listed []domain.Session
	c.complete(ctx, IntentListSessions, func(notes *[]observability.Event) {
		if c.generation != p.generation {
			*notes = append(*notes, c.staleEvent(IntentListSessions, ""))
			listed = c.cache.Sessions()
			return
		}
		c.cache.ReplaceAll(sessions)
		listed = c.cache.Sessions()
	}, map[string]any{"count": len(sessions)})

	return listed, nil
}

// OpenSession hydrates the active view with the full session. The cache is
// left as is. The response is discarded when the view changed hands while it
// was in flight, or when a later open is still pending. A failed open leaves
// everything as it was.
func (c *Controller) OpenSession(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	c.mu.Lock()
	c.openSeq++
	token := c.openSeq
	c.openPending[token] = struct{}{}
	c.mu.Unlock()

	p := c.begin(ctx, IntentOpenSession, map[string]any{"session_id": string(id)})

	session, err := c.remote.FetchSession(ctx, id)
	if err != nil {
		c.mu.Lock()
		delete(c.openPending, token)
		c.mu.Unlock()

		err = fmt.Errorf("open session %s: %w", id, err)
		c.fail(ctx, IntentOpenSession, err)
		return domain.Session{}, err
	}

	c.complete(ctx, IntentOpenSession, func(notes *[]observability.Event) {
		delete(c.openPending, token)
		if c.generation != p.generation || c.viewEpoch != p.epoch || c.openPendingAfterLocked(token) {
			*notes = append(*notes, c.staleEvent(IntentOpenSession, id))
			return
		}
		c.view.Open(session)
		c.viewEpoch++
	}, map[string]any{"session_id": string(id), "messages": len(session.Messages)})

	return session.Clone(), nil
}

func (c *Controller) DeleteSession(ctx context.Context, id domain.SessionID) error {
	c.begin(ctx, IntentDelete, map[string]any{"session_id": string(id)})

	if err := c.remote.DeleteSession(ctx, id); err != nil {
		err = fmt.Errorf("delete session %s: %w", id, err)
		c.fail(ctx, IntentDelete, err)
		return err
	}

	c.complete(ctx, IntentDelete, func(*[]observability.Event) {
		c.cache.Remove(id)
		if open, ok := c.view.ID(); ok && open == id {
			c.view.Close()
			c.viewEpoch++
		}
	}, map[string]any{"session_id": string(id)})

	return nil
}

func (c *Controller) ClearAll(ctx context.Context) error {
	c.begin(ctx, IntentClearAll, nil)

	if err := c.remote.ClearAllSessions(ctx); err != nil {
		err = fmt.Errorf("clear sessions: %w", err)
		c.fail(ctx, IntentClearAll, err)
		return err
	}

	c.complete(ctx, IntentClearAll, func(*[]observability.Event) {
		c.resetLocked()
	}, nil)

	return nil
}

// CloseSession empties the active view without touching the service.
func (c *Controller) CloseSession() {
	c.mu.Lock()
	c.view.Close()
	c.viewEpoch++
	c.bumpLocked()
	c.mu.Unlock()
}

// Logout resets the cache, the view and the last error, then clears the
// stored credential. The local reset always happens; a credential store
// failure is returned afterwards.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.resetLocked()
	c.lastErr = nil
	c.bumpLocked()
	c.mu.Unlock()

	c.observer.OnEvent(ctx, c.event(observability.EventStateReset, observability.LevelInfo, map[string]any{
		"intent": string(IntentLogout),
	}))

	if c.credentials == nil {
		return nil
	}
	if err := c.credentials.Clear(ctx); err != nil {
		c.observer.OnEvent(ctx, c.event(observability.EventCredentialClear, observability.LevelError, map[string]any{
			"error": err.Error(),
		}))
		return fmt.Errorf("clear credential: %w", err)
	}

	return nil
}

func (c *Controller) Sessions() []domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cache.Sessions()
}

func (c *Controller) ActiveSession() (domain.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.view.Session()
}

func (c *Controller) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastErr
}

// Busy reports whether any intent is waiting on the remote service.
func (c *Controller) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.inFlight > 0
}

// Version increases on every observable state change, busy flag included.
func (c *Controller) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// Subscribe returns a channel that receives a signal after state changes.
// Signals coalesce: a slow reader sees one pending signal, then re-reads.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan struct{}, 1)
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}

// pending is the state an intent observed when it was issued. complete
// compares it against the current state to decide whether the response still
// applies.
type pending struct {
	epoch      uint64
	generation uint64
	openSeq    uint64
}

func (c *Controller) begin(ctx context.Context, intent Intent, data map[string]any) pending {
	c.mu.Lock()
	c.inFlight++
	c.lastErr = nil
	p := pending{epoch: c.viewEpoch, generation: c.generation, openSeq: c.openSeq}
	c.bumpLocked()
	c.mu.Unlock()

	c.observer.OnEvent(ctx, c.event(observability.EventIntentStart, observability.LevelDebug, withIntent(intent, data)))

	return p
}

func (c *Controller) complete(ctx context.Context, intent Intent, apply func(notes *[]observability.Event), data map[string]any) {
	var notes []observability.Event

	c.mu.Lock()
	apply(&notes)
	c.inFlight--
	c.bumpLocked()
	c.mu.Unlock()

	for _, note := range notes {
		c.observer.OnEvent(ctx, note)
	}
	c.observer.OnEvent(ctx, c.event(observability.EventIntentComplete, observability.LevelInfo, withIntent(intent, data)))
}

func (c *Controller) fail(ctx context.Context, intent Intent, err error) {
	c.mu.Lock()
	c.inFlight--
	c.lastErr = err
	c.bumpLocked()
	c.mu.Unlock()

	c.observer.OnEvent(ctx, c.event(observability.EventIntentFailed, observability.LevelWarning, map[string]any{
		"intent": string(intent),
		"kind":   string(domain.KindOf(err)),
		"error":  err.Error(),
	}))
}

func (c *Controller) rejectLocally(ctx context.Context, intent Intent, err error) {
	c.mu.Lock()
	c.lastErr = err
	c.bumpLocked()
	c.mu.Unlock()

	c.observer.OnEvent(ctx, c.event(observability.EventIntentFailed, observability.LevelWarning, map[string]any{
		"intent": string(intent),
		"kind":   string(domain.KindOf(err)),
		"error":  err.Error(),
	}))
}

func (c *Controller) resetLocked() {
	c.cache.Clear()
	c.view.Close()
	c.viewEpoch++
	c.generation++
}

func (c *Controller) openPendingAfterLocked(token uint64) bool {
	for pendingToken := range c.openPending {
		if pendingToken > token {
			return true
		}
	}
	return false
}

func (c *Controller) bumpLocked() {
	c.version++
	for _, ch := range c.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Controller) staleEvent(intent Intent, id domain.SessionID) observability.Event {
	return c.event(observability.EventStaleResponse, observability.LevelDebug, map[string]any{
		"intent":     string(intent),
		"session_id": string(id),
		"reason":     domain.ErrStaleResponse.Error(),
	})
}

func (c *Controller) event(eventType observability.EventType, level observability.Level, data map[string]any) observability.Event {
	return observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: c.clock.Now(),
		Source:    controllerSource,
		Data:      data,
	}
}

func withIntent(intent Intent, data map[string]any) map[string]any {
	merged := make(map[string]any, len(data)+1)
	for key, value := range data {
		merged[key] = value
	}
	merged["intent"] = string(intent)

	return merged
}
