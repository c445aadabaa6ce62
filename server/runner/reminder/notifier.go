package reminder

import (
	"context"
	"log/slog"

	"github.com/dayfold/dayfold/store"
)

// LogNotifier writes reminders to the structured log. It stands in until a
// chat transport is plugged in.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, event *store.Event) error {
	slog.Info("event starting soon",
		slog.Int64("user", event.UserID),
		slog.String("uid", event.UID),
		slog.String("title", event.Title),
		slog.Int64("start_ts", event.StartTs))
	return nil
}
