package retry

import (
	"log/slog"
	"time"

	ai "github.com/spetersoncode/blogsmith"
)

// EventType identifies a retry notification.
type EventType string

const (
	// EventRetrying is sent after a transient failure, before the backoff
	// wait.
	EventRetrying EventType = "retrying"

	// EventGaveUp is sent when a request fails for good: the error was not
	// transient or every attempt was used.
	EventGaveUp EventType = "gave_up"
)

// Event describes one failed attempt of a retried request.
type Event struct {
	Type EventType

	// Attempt is the attempt that failed, counting from 1.
	Attempt     int
	MaxAttempts int

	Error error

	// Category is the provider's classification of Error, empty when the
	// error carries none.
	Category ai.ErrorCategory

	// Delay is the wait before the next attempt. Zero for EventGaveUp.
	Delay time.Duration

	// ServerDelay is set when Delay came from the provider's Retry-After.
	ServerDelay bool

	Timestamp time.Time
}

// LogValue renders the event as a slog group.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("attempt", e.Attempt),
		slog.Int("max_attempts", e.MaxAttempts),
	}
	if e.Type == EventRetrying {
		attrs = append(attrs, slog.Duration("delay", e.Delay))
		if e.ServerDelay {
			attrs = append(attrs, slog.Bool("retry_after", true))
		}
	}
	if e.Category != "" {
		attrs = append(attrs, slog.String("category", string(e.Category)))
	}
	if e.Error != nil {
		attrs = append(attrs, slog.String("error", e.Error.Error()))
	}
	return slog.GroupValue(attrs...)
}

// emit sends without blocking; a full or nil channel drops the event.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
