// Package events is a small named-event emitter shared by views, models
// and collections.
//
// Handlers are registered per event name; several names may be given at
// once separated by spaces. The special name "all" receives every event,
// with the event name prepended to the arguments.
//
// An emitter can also listen to another emitter. Those subscriptions are
// remembered so StopListening can drop them in one call, which is what a
// view does when it is removed.
package events

import (
	"strings"
	"sync"
	"sync/atomic"
)

// All is the catch-all event name.
const All = "all"

// Callback receives the arguments passed to Trigger.
type Callback func(args ...any)

// Source is anything that can be listened to.
type Source interface {
	On(events string, cb Callback) *Subscription
}

var subscriptionIDs uint64

type handler struct {
	id uint64
	cb Callback
}

// Emitter dispatches named events. The zero value is ready to use.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[string][]handler

	listenMu  sync.Mutex
	listening []listening
}

type listening struct {
	source Source
	sub    *Subscription
}

// Subscription identifies handlers added by one On call.
type Subscription struct {
	emitter *Emitter
	events  []string
	id      uint64
	once    sync.Once
}

// Cancel removes the handlers. Calling it more than once is harmless.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.emitter.removeHandlers(s.events, s.id)
	})
}

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// On registers cb for each space-separated event name.
func (e *Emitter) On(events string, cb Callback) *Subscription {
	names := strings.Fields(events)
	sub := &Subscription{
		emitter: e,
		events:  names,
		id:      atomic.AddUint64(&subscriptionIDs, 1),
	}
	if cb == nil || len(names) == 0 {
		return sub
	}

	e.mu.Lock()
	if e.handlers == nil {
		e.handlers = make(map[string][]handler)
	}
	for _, name := range names {
		e.handlers[name] = append(e.handlers[name], handler{id: sub.id, cb: cb})
	}
	e.mu.Unlock()
	return sub
}

// Once registers cb to run on the first matching event only.
func (e *Emitter) Once(events string, cb Callback) *Subscription {
	if cb == nil {
		return e.On(events, nil)
	}
	var sub *Subscription
	var fired atomic.Bool
	sub = e.On(events, func(args ...any) {
		if fired.Swap(true) {
			return
		}
		sub.Cancel()
		cb(args...)
	})
	return sub
}

// Off removes every handler for the given event names. An empty string
// removes every handler.
func (e *Emitter) Off(events string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := strings.Fields(events)
	if len(names) == 0 {
		e.handlers = nil
		return
	}
	for _, name := range names {
		delete(e.handlers, name)
	}
}

func (e *Emitter) removeHandlers(events []string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, name := range events {
		list := e.handlers[name]
		kept := make([]handler, 0, len(list))
		for _, h := range list {
			if h.id != id {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(e.handlers, name)
		} else {
			e.handlers[name] = kept
		}
	}
}

// Trigger calls the handlers for event, then the "all" handlers.
func (e *Emitter) Trigger(event string, args ...any) {
	e.mu.RLock()
	direct := append([]handler(nil), e.handlers[event]...)
	var catchAll []handler
	if event != All {
		catchAll = append(catchAll, e.handlers[All]...)
	}
	e.mu.RUnlock()

	for _, h := range direct {
		h.cb(args...)
	}
	if len(catchAll) == 0 {
		return
	}
	withName := append([]any{event}, args...)
	for _, h := range catchAll {
		h.cb(withName...)
	}
}

// HasListeners reports whether any handler is registered for event.
func (e *Emitter) HasListeners(event string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers[event]) > 0
}

// ListenTo subscribes cb to events on source and remembers the
// subscription.
func (e *Emitter) ListenTo(source Source, events string, cb Callback) *Subscription {
	if source == nil {
		return nil
	}
	sub := source.On(events, cb)
	e.listenMu.Lock()
	e.listening = append(e.listening, listening{source: source, sub: sub})
	e.listenMu.Unlock()
	return sub
}

// StopListening cancels subscriptions made with ListenTo. A nil source
// cancels all of them.
func (e *Emitter) StopListening(source Source) {
	e.listenMu.Lock()
	var drop []*Subscription
	kept := e.listening[:0]
	for _, l := range e.listening {
		if source == nil || l.source == source {
			drop = append(drop, l.sub)
			continue
		}
		kept = append(kept, l)
	}
	for i := len(kept); i < len(e.listening); i++ {
		e.listening[i] = listening{}
	}
	e.listening = kept
	e.listenMu.Unlock()

	for _, sub := range drop {
		sub.Cancel()
	}
}

// StopListeningTo is StopListening for one source. A nil source is a no-op
// rather than a request to stop listening to everything.
func (e *Emitter) StopListeningTo(source Source) {
	if source == nil {
		return
	}
	e.StopListening(source)
}

// FunnelFrom re-triggers any of fromEvents on source as toEvent on e. The
// original arguments arrive as a single []any.
func (e *Emitter) FunnelFrom(source Source, fromEvents, toEvent string) *Subscription {
	return e.ListenTo(source, fromEvents, func(args ...any) {
		e.Trigger(toEvent, args)
	})
}
