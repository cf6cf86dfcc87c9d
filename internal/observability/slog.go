package observability

import (
	"context"
	"log/slog"
	"sort"
)

// SlogObserver writes each event as one log record whose message is the event
// type. Data keys become attributes in sorted order.
type SlogObserver struct {
	logger *slog.Logger
}

func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnEvent(ctx context.Context, event Event) {
	keys := make([]string, 0, len(event.Data))
	for key := range event.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, event.Data[key]))
	}

	o.logger.LogAttrs(ctx, event.Level.SlogLevel(), string(event.Type), attrs...)
}

// ParseLevel maps a --log-level flag value onto a slog level.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if raw == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelWarn, err
	}

	return level, nil
}
