package view

import (
	"sort"
	"strconv"

	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/events"
	"github.com/vango-dev/backtension/pkg/global"
	"github.com/vango-dev/backtension/pkg/zone"
)

// State is a view's lifecycle state.
type State uint8

const (
	StateConstructed State = iota // no element yet
	StateBound                    // bound to an element
	StateDisabled                 // scoped events unbound
	StateRemoved                  // terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateBound:
		return "bound"
	case StateDisabled:
		return "disabled"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Options controls how Disable and Remove run.
type Options struct {
	// Defer queues the operation for the next loop turn.
	Defer bool
}

// Component is anything a view can own. Remove must honor Options.Defer.
type Component interface {
	Render()
	Remove(opts Options)
}

// Disabler is implemented by components that can be disabled.
type Disabler interface {
	Disable(opts Options)
}

// Assignable is a component that can be bound to an element by Assign.
type Assignable interface {
	SetElement(el dom.Element)
	ApplyAttributes()
	Render()
}

// Mountable is a component RenderViews can place into a zone.
type Mountable interface {
	Render()
	Element() dom.Element
}

// Config declares a view.
type Config struct {
	// Element is the initial root element. May be nil and set later.
	Element dom.Element

	// ElementID, ClassName and Attributes are applied to the root element
	// by ApplyAttributes.
	ElementID  string
	ClassName  string
	Attributes map[string]string

	// Regions is the region descriptor resolved by GenerateZones.
	Regions zone.Descriptor

	// Events are delegated from the root element: "<event> <selector>".
	Events global.Specs

	// GlobalEvents are bound on window (no selector) or document.
	GlobalEvents global.Specs

	// Methods resolves handler names used in Events and GlobalEvents.
	Methods global.Methods

	// Render draws the view. Called by Render, Assign and RenderViews.
	Render func(v *View)

	// OnDisable runs first when the view is disabled.
	OnDisable func(v *View, opts Options)

	// OnRemove runs first when the view is removed.
	OnRemove func(v *View, opts Options)
}

// View is a node in the view tree.
type View struct {
	*events.Emitter

	rt        *Runtime
	id        uint64
	namespace string

	el        dom.Element
	delegated dom.Element // element currently holding scoped bindings
	state     State

	elementID    string
	className    string
	attributes   map[string]string
	regions      zone.Descriptor
	scopedEvents global.Specs
	globalEvents global.Specs
	methods      global.Methods

	render    func(*View)
	onDisable func(*View, Options)
	onRemove  func(*View, Options)

	parent   *View
	children []Component
	views    map[string]Component

	urls  map[string]string
	zones zone.Map

	global         *global.Channel
	reportedGlobal int
}

// New creates a view and binds it to cfg.Element.
func New(rt *Runtime, cfg Config) *View {
	if rt == nil {
		rt = NewRuntime(nil, nil)
	}
	id := nextID()
	v := &View{
		Emitter:      events.NewEmitter(),
		rt:           rt,
		id:           id,
		namespace:    "view" + strconv.FormatUint(id, 10),
		elementID:    cfg.ElementID,
		className:    cfg.ClassName,
		attributes:   copyStrings(cfg.Attributes),
		regions:      cfg.Regions,
		scopedEvents: cfg.Events,
		globalEvents: cfg.GlobalEvents,
		methods:      global.Methods{},
		render:       cfg.Render,
		onDisable:    cfg.OnDisable,
		onRemove:     cfg.OnRemove,
		views:        make(map[string]Component),
		urls:         make(map[string]string),
		zones:        zone.Map{},
	}
	for name, h := range cfg.Methods {
		v.methods[name] = h
	}
	v.global = global.New(rt.env, "delegateGlobalEvents"+v.namespace, rt.logger)

	rt.metrics.ViewCreated()
	v.SetElement(cfg.Element)
	return v
}

// ID returns the process-unique view ID.
func (v *View) ID() uint64 { return v.id }

// Namespace returns the view's name ("view<ID>"), the suffix of every
// event namespace it binds.
func (v *View) Namespace() string { return v.namespace }

// Element returns the root element, or nil.
func (v *View) Element() dom.Element { return v.el }

// State returns the lifecycle state.
func (v *View) State() State { return v.state }

// Parent returns the view owning v through AddChild, or nil.
func (v *View) Parent() *View { return v.parent }

// Find looks up selector inside the root element. Without an element
// nothing matches.
func (v *View) Find(selector string) dom.Selection {
	if v.el == nil {
		return nil
	}
	return v.el.Find(selector)
}

// Method implements global.Resolver over the view's method table.
func (v *View) Method(name string) (dom.Handler, bool) {
	return v.methods.Method(name)
}

// SetMethod registers a named handler for event specs.
func (v *View) SetMethod(name string, h dom.Handler) {
	v.methods[name] = h
}

// SetURL stores a reference URL. An empty key is ignored.
func (v *View) SetURL(key, url string) {
	if key == "" {
		return
	}
	v.urls[key] = url
}

// SetURLs merges urls into the view's URL table.
func (v *View) SetURLs(urls map[string]string) {
	for k, u := range urls {
		v.SetURL(k, u)
	}
}

// URL returns the URL stored under key.
func (v *View) URL(key string) string { return v.urls[key] }

// URLs returns a copy of the URL table.
func (v *View) URLs() map[string]string { return copyStrings(v.urls) }

// AddChild gives v ownership of c. A view already owned by another parent
// is moved; adding a view twice to the same parent is a no-op.
func (v *View) AddChild(c Component) {
	if c == nil {
		return
	}
	if cv, ok := c.(*View); ok {
		if cv == v {
			return
		}
		if cv.parent == v {
			return
		}
		if cv.parent != nil {
			cv.parent.forget(cv)
		}
		cv.parent = v
	}
	v.children = append(v.children, c)
}

// Children returns the owned children in insertion order.
func (v *View) Children() []Component {
	return append([]Component(nil), v.children...)
}

// forget drops child from the owned list without removing it.
func (v *View) forget(child *View) {
	for i, c := range v.children {
		if cv, ok := c.(*View); ok && cv == child {
			v.children = append(v.children[:i], v.children[i+1:]...)
			break
		}
	}
	if child.parent == v {
		child.parent = nil
	}
}

// SetView registers c in the named sub-view registry. A nil component
// removes the entry.
func (v *View) SetView(name string, c Component) {
	if c == nil {
		delete(v.views, name)
		return
	}
	v.views[name] = c
}

// SubView returns the named sub-view.
func (v *View) SubView(name string) Component { return v.views[name] }

// ViewNames returns the registry names, sorted.
func (v *View) ViewNames() []string {
	return sortedKeys(v.views)
}

// SetRegions replaces the declared region descriptor. Call GenerateZones
// to resolve it.
func (v *View) SetRegions(d zone.Descriptor) { v.regions = d }

// Regions returns the declared region descriptor.
func (v *View) Regions() zone.Descriptor { return v.regions }

// Zones returns the last resolved zone map.
func (v *View) Zones() zone.Map { return v.zones }

func copyStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, s := range m {
		out[k] = s
	}
	return out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
