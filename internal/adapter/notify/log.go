// Package notify provides notification dispatch adapters. Delivery is
// best-effort everywhere in the system: executors never roll back a
// mutation because a notification failed.
package notify

import (
	"context"
	"log/slog"
)

// LogDispatcher writes notifications to the structured log instead of
// delivering them. Stands in for the real mail gateway in development
// and in tests.
type LogDispatcher struct {
	from string
	log  *slog.Logger
}

// NewLogDispatcher creates a log-only notification dispatcher.
func NewLogDispatcher(log *slog.Logger, from string) *LogDispatcher {
	return &LogDispatcher{from: from, log: log.With("adapter", "notify")}
}

// Send records the notification in the log and reports success.
func (d *LogDispatcher) Send(ctx context.Context, to, subject, body string) error {
	d.log.InfoContext(ctx, "notification dispatched",
		slog.String("from", d.from),
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_len", len(body)),
	)
	return nil
}
