// Package history tracks the current location fragment and offers the
// prefix and relative-URL helpers views use to build links, plus
// redirects that run on the next loop turn.
package history

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/backtension/pkg/events"
	"github.com/vango-dev/backtension/pkg/loop"
)

// RouteEvent is triggered by Navigate with the new fragment.
const RouteEvent = "route"

// History holds the current fragment. It is not safe for concurrent use.
type History struct {
	*events.Emitter

	fragment string
	sched    loop.Scheduler
	logger   *slog.Logger
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(h *History) {
		h.logger = logger
	}
}

// WithFragment sets the starting fragment.
func WithFragment(fragment string) Option {
	return func(h *History) {
		h.fragment = trimHash(fragment)
	}
}

// New creates a History that defers redirects through sched. A nil
// scheduler runs redirects inline.
func New(sched loop.Scheduler, opts ...Option) *History {
	h := &History{Emitter: events.NewEmitter(), sched: sched}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Fragment returns the current fragment without the leading '#'.
func (h *History) Fragment() string { return h.fragment }

// Hash returns the current location hash without the leading '#'.
func (h *History) Hash() string { return h.fragment }

// HasPrefix reports whether the current fragment starts with prefix. A
// leading '#' on prefix is ignored.
func (h *History) HasPrefix(prefix string) bool {
	return strings.HasPrefix(h.Hash(), trimHash(prefix))
}

// Relative builds a fragment URL below the current fragment:
// "#/" + fragment + "/" + url. The separator is not doubled when the
// fragment already ends in '/'.
func (h *History) Relative(url string) string {
	fragment := h.Fragment()
	if !strings.HasSuffix(fragment, "/") {
		fragment += "/"
	}
	return "#/" + fragment + url
}

// Navigate sets the fragment and triggers RouteEvent. Navigating to the
// current fragment does nothing.
func (h *History) Navigate(fragment string) {
	fragment = trimHash(fragment)
	if fragment == h.fragment {
		return
	}
	h.fragment = fragment
	h.logger.Debug("history navigate", "fragment", fragment)
	h.Trigger(RouteEvent, fragment)
}

// Redirect navigates to fragment on the next loop turn, after the event
// that requested it has finished.
func (h *History) Redirect(fragment string) {
	if h.sched == nil {
		h.Navigate(fragment)
		return
	}
	h.sched.Defer(func() { h.Navigate(fragment) })
}

func trimHash(s string) string {
	return strings.TrimPrefix(s, "#")
}
