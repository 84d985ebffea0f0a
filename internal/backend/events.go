package backend

// Event represents a reconciliation lifecycle event.
type Event struct {
	Name     string
	OpID     string
	Revision uint64
	Fields   map[string]any
}

// Event names.
const (
	EventApplyStart = "apply_start"
	EventApplyDone  = "apply_done"
	EventApplyError = "apply_error"
	EventApplyStale = "apply_stale"
)

// EventPublisher receives events from the reconciler. Implementations should
// be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// MultiPublisher fans an event out to several publishers.
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(e Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(e)
		}
	}
}
