// Package observability reports controller activity as structured events.
// Events are decoupled from any logging backend; SlogObserver is the one the
// CLI wires in.
package observability

import (
	"context"
	"log/slog"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type EventType string

const (
	EventIntentStart     EventType = "chat.intent.start"
	EventIntentComplete  EventType = "chat.intent.complete"
	EventIntentFailed    EventType = "chat.intent.failed"
	EventStaleResponse   EventType = "chat.response.stale"
	EventPromoteMissing  EventType = "chat.cache.promote_missing"
	EventActivityClamped EventType = "chat.cache.activity_clamped"
	EventStateReset      EventType = "chat.state.reset"
	EventCredentialClear EventType = "chat.credential.clear_failed"
)

type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

type NoOpObserver struct{}

func (NoOpObserver) OnEvent(context.Context, Event) {}
