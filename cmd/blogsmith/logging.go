package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spetersoncode/blogsmith/client"
	"github.com/spetersoncode/blogsmith/event"
)

// newLogger creates a slog.Logger writing to w. Logs never go to stdout,
// which carries post output and the MCP protocol.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromString(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// logClientEvents drains client events into log until events is closed.
func logClientEvents(log *slog.Logger, events <-chan client.Event) {
	for e := range events {
		switch e.Type {
		case client.EventRetry:
			if e.RetryEvent == nil {
				continue
			}
			msg := "retrying request"
			if e.RetryEvent.Type == client.RetryGaveUp {
				msg = "giving up on request"
			}
			log.Warn(msg, "operation", e.Operation, "model", e.Model, "retry", *e.RetryEvent)
		case client.EventRequestError:
			log.Debug("request failed", "operation", e.Operation, "model", e.Model, "error", e.Error)
		case client.EventRequestComplete:
			log.Debug("request complete", "operation", e.Operation, "model", e.Model, "duration", e.Duration.Round(time.Millisecond))
		}
	}
}

// progress prints one line per stage to w.
func progress(w io.Writer) event.Observer {
	return event.ObserverFunc(func(e event.Event) {
		switch e.Type {
		case event.StageStart:
			fmt.Fprintf(w, "→ %s\n", e.Stage)
		case event.StageDegraded:
			fmt.Fprintf(w, "  ! %s\n", e.Message)
		case event.RewriteCycle:
			fmt.Fprintf(w, "↻ rewrite %d\n", e.Iteration)
		case event.RunEnd:
			fmt.Fprintf(w, "✓ %s\n", e.Stage)
		}
	})
}
