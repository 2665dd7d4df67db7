// Package event carries pipeline progress to observers.
//
// The pipeline core never prints or renders anything; it reports what it is
// doing through an Observer. A CLI can log the events, a UI can render them,
// and tests can record them.
package event

import "time"

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when a run or a resumed run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run reaches a terminal state.
	RunEnd Type = "run_end"

	// RunError fires when a run stops with a Go error instead of a
	// terminal state.
	RunError Type = "run_error"
)

// Stage lifecycle events
const (
	// StageStart fires before a stage runs.
	StageStart Type = "stage_start"

	// StageEnd fires after a stage's patch has been merged.
	StageEnd Type = "stage_end"

	// StageDegraded fires when a stage substitutes a fallback value for a
	// failed collaborator call.
	StageDegraded Type = "stage_degraded"
)

// Routing events
const (
	// RouteSelected fires after each transition decision.
	RouteSelected Type = "route_selected"

	// RewriteCycle fires when the router loops back for a rewrite.
	RewriteCycle Type = "rewrite_cycle"
)

// Event represents an observable occurrence during a run.
type Event struct {
	Type Type

	// RunID correlates all events from one run.
	RunID string

	// Stage names the stage for stage events and the source of a route.
	Stage string

	// Next names the destination of a RouteSelected event.
	Next string

	// Iteration is the rewrite number (1-indexed) for RewriteCycle events.
	Iteration int

	// Message is a human-readable note, e.g. the reason for a degradation.
	Message string

	Error error

	Timestamp time.Time
}

// Observer receives pipeline events. Implementations must not block for
// long; events are delivered synchronously from the running pipeline.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Discard ignores every event.
var Discard Observer = ObserverFunc(func(Event) {})

// Channel returns an observer that forwards events to ch without blocking.
// Events are dropped when ch is full.
func Channel(ch chan<- Event) Observer {
	return ObserverFunc(func(e Event) { Emit(ch, e) })
}

// Multi fans each event out to every non-nil observer in order.
func Multi(observers ...Observer) Observer {
	return ObserverFunc(func(e Event) {
		for _, o := range observers {
			if o != nil {
				o.OnEvent(e)
			}
		}
	})
}

// Emit sends an event with timestamp to the channel (non-blocking).
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case ch <- e:
	default:
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}

// Recorder collects events in memory. It is meant for tests and for
// callers that want the full trace after a run.
type Recorder struct {
	Events []Event
}

// OnEvent appends e.
func (r *Recorder) OnEvent(e Event) { r.Events = append(r.Events, e) }

// OfType returns the recorded events of type t in order.
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
