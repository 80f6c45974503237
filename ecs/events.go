package ecs

// EventKind identifies what happened to an object during a tick.
type EventKind string

const (
	EventSpawned    EventKind = "spawned"
	EventExpired    EventKind = "expired"
	EventExploded   EventKind = "exploded"
	EventDiagnostic EventKind = "diagnostic"
)

// Event is emitted by the frame loop's systems. Err is set on diagnostics.
type Event struct {
	Kind   EventKind
	Object ID
	Err    error
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Diagnostic records a non-fatal problem tied to an object.
func (q *EventQueue) Diagnostic(id ID, err error) {
	if err == nil {
		return
	}
	q.Push(Event{Kind: EventDiagnostic, Object: id, Err: err})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
