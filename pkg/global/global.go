// Package global binds event handlers on the process-wide window and
// document targets under a per-owner namespace.
//
// Every binding made through a Channel carries the channel's namespace, so
// Undelegate removes exactly that owner's global listeners and nobody
// else's, however many event names or selectors were registered.
//
// An event spec key has the form "<event> <selector>". Without a selector
// the handler is bound on window; with one it is delegated from document,
// since window has no descendants to match against.
package global

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/vango-dev/backtension/pkg/dom"
)

var specSplitter = regexp.MustCompile(`^(\S+)\s*(.*)$`)

// ParseSpec splits an event spec key into event name and selector.
// ok is false when the key has no event name.
func ParseSpec(key string) (event, selector string, ok bool) {
	m := specSplitter.FindStringSubmatch(key)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Specs maps event spec keys to handlers. A value is a dom.Handler, a
// func(*dom.Event), a func() or the name of a method to resolve.
type Specs map[string]any

// Resolver looks up handlers by method name.
type Resolver interface {
	Method(name string) (dom.Handler, bool)
}

// Methods is a map-backed Resolver.
type Methods map[string]dom.Handler

// Method implements Resolver.
func (m Methods) Method(name string) (dom.Handler, bool) {
	h, ok := m[name]
	return h, ok && h != nil
}

// ResolveHandler turns a spec value into a handler. Unresolvable values
// return ok == false.
func ResolveHandler(value any, r Resolver) (dom.Handler, bool) {
	switch v := value.(type) {
	case dom.Handler:
		return v, v != nil
	case func(*dom.Event):
		return v, v != nil
	case func():
		if v == nil {
			return nil, false
		}
		return func(*dom.Event) { v() }, true
	case string:
		if r == nil {
			return nil, false
		}
		return r.Method(v)
	}
	return nil, false
}

// Channel owns one namespace on an environment's window and document.
type Channel struct {
	env       dom.Environment
	namespace string
	logger    *slog.Logger

	bound int
}

// New creates a channel. A nil logger falls back to slog.Default().
func New(env dom.Environment, namespace string, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{env: env, namespace: namespace, logger: logger}
}

// Namespace returns the namespace every binding carries.
func (c *Channel) Namespace() string { return c.namespace }

// Bound returns the number of bindings made since the last Undelegate.
func (c *Channel) Bound() int { return c.bound }

// Delegate replaces the channel's bindings with specs. Keys are bound in
// sorted order. Malformed keys and unresolvable handlers are skipped.
// It returns the number of bindings made.
func (c *Channel) Delegate(specs Specs, r Resolver) int {
	c.Undelegate()
	if len(specs) == 0 {
		return 0
	}

	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := 0
	for _, key := range keys {
		handler, ok := ResolveHandler(specs[key], r)
		if !ok {
			c.logger.Debug("global event handler not resolved", "spec", key, "namespace", c.namespace)
			continue
		}
		event, selector, ok := ParseSpec(key)
		if !ok {
			c.logger.Debug("malformed global event spec", "spec", key, "namespace", c.namespace)
			continue
		}
		c.DelegateOne(event, selector, handler)
		n++
	}
	return n
}

// DelegateOne adds a single binding without touching existing ones.
func (c *Channel) DelegateOne(event, selector string, handler dom.Handler) {
	target := c.target(selector)
	if target == nil || event == "" || handler == nil {
		return
	}
	target.On(event, c.namespace, selector, handler)
	c.bound++
}

// UndelegateOne removes the bindings for event and selector.
func (c *Channel) UndelegateOne(event, selector string) {
	target := c.target(selector)
	if target == nil {
		return
	}
	target.Off(event, c.namespace, selector)
	c.recount()
}

// Undelegate removes every binding in the namespace from both targets.
// It is safe to call with nothing bound.
func (c *Channel) Undelegate() {
	if c.env == nil {
		return
	}
	if w := c.env.Window(); w != nil {
		w.Off("", c.namespace, "")
	}
	if d := c.env.Document(); d != nil {
		d.Off("", c.namespace, "")
	}
	c.bound = 0
}

func (c *Channel) target(selector string) dom.EventTarget {
	if c.env == nil {
		return nil
	}
	if selector == "" {
		return c.env.Window()
	}
	return c.env.Document()
}

// counter is implemented by targets that can report listener counts.
type counter interface {
	Count(namespace string) int
}

// recount refreshes bound from targets that can report it; otherwise the
// previous count is kept as an upper bound.
func (c *Channel) recount() {
	w, wok := c.env.Window().(counter)
	d, dok := c.env.Document().(counter)
	if !wok || !dok {
		return
	}
	c.bound = w.Count(c.namespace) + d.Count(c.namespace)
}
