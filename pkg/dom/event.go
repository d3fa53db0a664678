package dom

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event name (e.g., "click").
	Type string

	// Target is the element the event originated from. Nil for events fired
	// on window itself (resize, scroll).
	Target Element

	// CurrentTarget is the element whose selector matched during delegation.
	CurrentTarget Element

	// Data carries arbitrary payload.
	Data any

	stopped bool
}

// StopPropagation stops the event from reaching targets further up.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// Handler handles an event.
type Handler func(*Event)

// EventTarget accepts namespaced listeners.
//
// An empty event, namespace or selector passed to Off acts as a wildcard.
type EventTarget interface {
	On(event, namespace, selector string, handler Handler)
	Off(event, namespace, selector string)
}

// Environment exposes the process-wide event targets. It is injected so the
// binding target is explicit and replaceable in tests.
type Environment interface {
	Window() EventTarget
	Document() EventTarget
}
