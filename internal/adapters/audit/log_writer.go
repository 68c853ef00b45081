package audit

import (
	"XuBank/internal/core/domain"
	"XuBank/internal/core/ports"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LogWriter appends audit events as JSON lines to an io.Writer
// (normally the security.log file).
type LogWriter struct {
	out zerolog.Logger
}

// NewLogWriter wraps w so writers sharing it never interleave lines.
func NewLogWriter(w io.Writer) *LogWriter {
	return &LogWriter{
		out: zerolog.New(zerolog.SyncWriter(w)).With().Timestamp().Logger(),
	}
}

// OpenLogFile opens path for appending, creating it with owner-only
// permissions if needed.
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}
	return f, nil
}

// Handle is a ports.EventHandler.
func (w *LogWriter) Handle(_ context.Context, event ports.Event) error {
	ev, ok := eventFrom(event)
	if !ok {
		return fmt.Errorf("audit log writer: unexpected payload %T on %s", event.Data, event.Topic)
	}

	var e *zerolog.Event
	if ev.Severity == domain.SeverityError {
		e = w.out.Error()
		if ev.Cause != "" {
			e = e.Str("cause", ev.Cause)
		}
	} else {
		e = w.out.Warn()
	}

	e.Str("id", ev.ID.String()).
		Str("kind", ev.Kind).
		Str("severity", string(ev.Severity)).
		Time("occurred_at", ev.OccurredAt).
		Msg(ev.Message)
	return nil
}
