package inspect

import (
	"context"
	"log/slog"

	"github.com/vango-dev/backtension/internal/errors"
	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/dom/htmldom"
	"github.com/vango-dev/backtension/pkg/global"
	"github.com/vango-dev/backtension/pkg/loop"
	"github.com/vango-dev/backtension/pkg/telemetry"
	"github.com/vango-dev/backtension/pkg/view"
	"github.com/vango-dev/backtension/pkg/zone"
)

// recordMethod is the handler name watched events resolve to.
const recordMethod = "record"

// Options configures a Page.
type Options struct {
	// Root selects the root view's element. Defaults to "body".
	Root string

	// Regions is resolved against the root view.
	Regions zone.Descriptor

	// Watch lists global event specs ("resize", "click .btn") the root view
	// binds and counts.
	Watch []string

	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	Tracer  *telemetry.Tracer
}

// Page is a document with a root view over it and one child view per
// matched zone leaf.
type Page struct {
	doc    *htmldom.Document
	queue  *loop.Queue
	rt     *view.Runtime
	root   *view.View
	logger *slog.Logger
	seen   map[string]int
}

// Open builds the view tree over doc. It fails only when the root
// selector matches nothing.
func Open(doc *htmldom.Document, opts Options) (*Page, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Root == "" {
		opts.Root = "body"
	}
	rootEl := doc.Find(opts.Root).Get(0)
	if rootEl == nil {
		return nil, errors.New("E145").
			WithDetail("No element matches " + opts.Root)
	}

	p := &Page{
		doc:    doc,
		logger: opts.Logger,
		seen:   make(map[string]int),
	}
	p.queue = loop.New(loop.WithLogger(opts.Logger), loop.WithObserver(opts.Metrics))
	p.rt = view.NewRuntime(doc, p.queue,
		view.WithLogger(opts.Logger),
		view.WithMetrics(opts.Metrics),
		view.WithTracer(opts.Tracer),
	)

	specs := make(global.Specs, len(opts.Watch))
	for _, spec := range opts.Watch {
		specs[spec] = recordMethod
	}
	p.root = p.rt.NewView(view.Config{
		Element:      rootEl,
		Regions:      opts.Regions,
		GlobalEvents: specs,
		Methods:      global.Methods{recordMethod: p.record},
	})

	zones := p.root.GenerateZones()
	zones.Walk(func(path string, handle dom.Selection) {
		if handle.IsEmpty() {
			p.logger.Debug("zone matched nothing", "zone", path)
			return
		}
		child := p.rt.NewView(view.Config{})
		p.root.Assign(child, handle, view.Options{})
		p.root.AddChild(child)
		p.root.SetView(path, child)
	})
	return p, nil
}

func (p *Page) record(ev *dom.Event) {
	p.seen[ev.Type]++
	p.logger.Info("global event", "type", ev.Type, "view", p.root.Namespace())
}

// Document returns the underlying document.
func (p *Page) Document() *htmldom.Document { return p.doc }

// Queue returns the page loop. Drive it with Run, or with RunPending in
// tests.
func (p *Page) Queue() *loop.Queue { return p.queue }

// Root returns the root view.
func (p *Page) Root() *view.View { return p.root }

// Do runs fn on the loop and waits for it. It returns ctx.Err() if ctx
// ends first; fn still runs on its turn.
func (p *Page) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	p.queue.Defer(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ZoneInfo describes one resolved leaf.
type ZoneInfo struct {
	Path    string `json:"path"`
	Matches int    `json:"matches"`
	Tag     string `json:"tag,omitempty"`
}

// Zones reports every leaf of the root view's zone map in path order.
func (p *Page) Zones() []ZoneInfo {
	var out []ZoneInfo
	p.root.Zones().Walk(func(path string, handle dom.Selection) {
		info := ZoneInfo{Path: path, Matches: handle.Len()}
		if el := handle.Get(0); el != nil {
			info.Tag = el.Tag()
		}
		out = append(out, info)
	})
	return out
}

// ViewInfo describes one view and its owned children.
type ViewInfo struct {
	ID             uint64     `json:"id"`
	Namespace      string     `json:"namespace"`
	State          string     `json:"state"`
	Tag            string     `json:"tag,omitempty"`
	GlobalBindings int        `json:"globalBindings"`
	Children       []ViewInfo `json:"children,omitempty"`
}

// Views reports the view tree from the root.
func (p *Page) Views() ViewInfo {
	return describe(p.root)
}

func describe(v *view.View) ViewInfo {
	info := ViewInfo{
		ID:             v.ID(),
		Namespace:      v.Namespace(),
		State:          v.State().String(),
		GlobalBindings: v.GlobalBindings(),
	}
	if el := v.Element(); el != nil {
		info.Tag = el.Tag()
	}
	for _, c := range v.Children() {
		if cv, ok := c.(*view.View); ok {
			info.Children = append(info.Children, describe(cv))
		}
	}
	return info
}

// Dispatch fires an event of type eventType at every element matching
// selector, or once at window level when selector is empty. It returns the
// number of dispatches.
func (p *Page) Dispatch(eventType, selector string) int {
	if selector == "" {
		p.doc.Dispatch(&dom.Event{Type: eventType})
		return 1
	}
	targets := p.doc.Find(selector)
	for _, el := range targets {
		p.doc.Dispatch(&dom.Event{Type: eventType, Target: el})
	}
	return targets.Len()
}

// Seen returns how many times each watched event type was recorded.
func (p *Page) Seen() map[string]int {
	out := make(map[string]int, len(p.seen))
	for k, n := range p.seen {
		out[k] = n
	}
	return out
}

// Close removes the root view and with it every child and global binding.
// Like every view operation it must run on the loop.
func (p *Page) Close() {
	p.root.Remove(view.Options{})
}
