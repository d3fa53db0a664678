package dom

import "sync"

// listener is one registered handler.
type listener struct {
	event     string
	namespace string
	selector  string
	handler   Handler
}

// Registry is an in-memory EventTarget.
//
// When scope is non-nil, delegated lookups stop at the scope element; this
// is how per-element delegation is kept inside the element's subtree.
type Registry struct {
	mu        sync.Mutex
	listeners []listener
	scope     Element
}

// NewRegistry creates a registry. scope may be nil for window and document.
func NewRegistry(scope Element) *Registry {
	return &Registry{scope: scope}
}

// On registers handler. A nil handler or empty event name is ignored.
func (r *Registry) On(event, namespace, selector string, handler Handler) {
	if event == "" || handler == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, listener{
		event:     event,
		namespace: namespace,
		selector:  selector,
		handler:   handler,
	})
	r.mu.Unlock()
}

// Off removes every listener matching the given fields. Empty fields match
// anything, so Off("", ns, "") drops a whole namespace.
func (r *Registry) Off(event, namespace, selector string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.listeners[:0]
	for _, l := range r.listeners {
		if matchField(event, l.event) && matchField(namespace, l.namespace) && matchField(selector, l.selector) {
			continue
		}
		kept = append(kept, l)
	}
	// Clear the tail so dropped handlers can be collected.
	for i := len(kept); i < len(r.listeners); i++ {
		r.listeners[i] = listener{}
	}
	r.listeners = kept
}

func matchField(want, got string) bool {
	return want == "" || want == got
}

// Count returns the number of listeners bound under namespace. An empty
// namespace counts everything.
func (r *Registry) Count(namespace string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if namespace == "" {
		return len(r.listeners)
	}
	n := 0
	for _, l := range r.listeners {
		if l.namespace == namespace {
			n++
		}
	}
	return n
}

// Trigger runs the listeners for ev.Type in registration order.
//
// Listeners without a selector always run. Selector listeners run when the
// target or one of its ancestors below the scope matches; CurrentTarget is
// set to the closest match for the duration of the call.
func (r *Registry) Trigger(ev *Event) {
	if ev == nil {
		return
	}
	r.mu.Lock()
	snapshot := make([]listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		if l.event == ev.Type {
			snapshot = append(snapshot, l)
		}
	}
	r.mu.Unlock()

	prev := ev.CurrentTarget
	for _, l := range snapshot {
		if l.selector == "" {
			ev.CurrentTarget = r.scope
			l.handler(ev)
			continue
		}
		match := r.closest(ev.Target, l.selector)
		if match == nil {
			continue
		}
		ev.CurrentTarget = match
		l.handler(ev)
	}
	ev.CurrentTarget = prev
}

// closest walks from el up to (not including) the scope looking for a match.
func (r *Registry) closest(el Element, selector string) Element {
	for cur := el; cur != nil; cur = cur.Parent() {
		if r.scope != nil && cur == r.scope {
			return nil
		}
		if cur.Matches(selector) {
			return cur
		}
	}
	return nil
}
