package blog

import (
	"context"
	"log/slog"
	"time"

	"github.com/spetersoncode/blogsmith/event"
)

type runIDKey struct{}

func withRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func runIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// reporter sends stage diagnostics to the observer and the logger.
type reporter struct {
	obs event.Observer
	log *slog.Logger
}

// degraded records that stage substituted a fallback for a failed call.
func (r *reporter) degraded(ctx context.Context, stage, msg string, err error) {
	runID := runIDFrom(ctx)
	attrs := []any{"run_id", runID, "stage", stage}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	r.log.WarnContext(ctx, msg, attrs...)
	r.obs.OnEvent(event.Event{
		Type:      event.StageDegraded,
		RunID:     runID,
		Stage:     stage,
		Message:   msg,
		Error:     err,
		Timestamp: time.Now(),
	})
}

// logObserver writes machine events to the logger.
func logObserver(log *slog.Logger) event.Observer {
	return event.ObserverFunc(func(e event.Event) {
		switch e.Type {
		case event.RunStart:
			log.Info("run started", "run_id", e.RunID, "node", e.Stage)
		case event.StageEnd:
			log.Debug("stage completed", "run_id", e.RunID, "stage", e.Stage)
		case event.RouteSelected:
			log.Debug("route selected", "run_id", e.RunID, "from", e.Stage, "to", e.Next)
		case event.RewriteCycle:
			log.Info("rewrite requested", "run_id", e.RunID, "iteration", e.Iteration)
		case event.RunEnd:
			log.Info("run finished", "run_id", e.RunID, "terminal", e.Stage)
		case event.RunError:
			log.Error("run failed", "run_id", e.RunID, "error", e.Error)
		}
	})
}
