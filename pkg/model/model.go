// Package model holds the data collaborators views render: attribute bags
// with a sanitizing blacklist, identity comparison and ordered collections.
//
// Models and collections are not safe for concurrent use; like views they
// belong to the goroutine driving the loop.
package model

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/vango-dev/backtension/pkg/events"
)

// ResetEvent is triggered by Reset. It is namespaced so it can't be
// confused with a collection-level reset when listening to both.
const ResetEvent = "model:reset"

// Attributes is a model's attribute bag.
type Attributes map[string]any

var cidCounter uint64

func nextCID() string {
	return "c" + strconv.FormatUint(atomic.AddUint64(&cidCounter, 1), 10)
}

// Config declares a model kind.
type Config struct {
	// Kind names the model type. Is only matches models of the same kind.
	Kind string

	// IDAttribute is the attribute holding the model id. Defaults to "id".
	IDAttribute string

	// Defaults are applied on construction and by Reset.
	Defaults Attributes

	// Blacklist names attributes stripped by SanitizedAttributes.
	Blacklist []string

	// Validate reports whether attrs form a valid model. Nil means always
	// valid.
	Validate func(attrs Attributes) error
}

// Model is an attribute bag with identity.
type Model struct {
	*events.Emitter

	cfg   Config
	cid   string
	attrs Attributes
}

// New creates a model with defaults overlaid by attrs.
func New(cfg Config, attrs Attributes) *Model {
	if cfg.IDAttribute == "" {
		cfg.IDAttribute = "id"
	}
	m := &Model{
		Emitter: events.NewEmitter(),
		cfg:     cfg,
		cid:     nextCID(),
		attrs:   Attributes{},
	}
	m.attrs = withDefaults(cfg.Defaults, attrs)
	return m
}

// CID returns the client id, unique for every model in the process.
func (m *Model) CID() string { return m.cid }

// Kind returns the model kind.
func (m *Model) Kind() string { return m.cfg.Kind }

// IDAttribute returns the name of the id attribute.
func (m *Model) IDAttribute() string { return m.cfg.IDAttribute }

// Blacklist returns the declared blacklist.
func (m *Model) Blacklist() []string {
	return append([]string(nil), m.cfg.Blacklist...)
}

// Get returns one attribute.
func (m *Model) Get(key string) any { return m.attrs[key] }

// Has reports whether key is set to a non-nil value.
func (m *Model) Has(key string) bool { return m.attrs[key] != nil }

// Attributes returns a shallow copy of the attributes.
func (m *Model) Attributes() Attributes { return copyAttrs(m.attrs) }

// Set merges attrs and triggers "change:<key>" for every changed key, then
// "change" once, unless silent.
func (m *Model) Set(attrs Attributes, silent bool) {
	var changed []string
	for k, v := range attrs {
		if old, ok := m.attrs[k]; ok && reflect.DeepEqual(old, v) {
			continue
		}
		m.attrs[k] = v
		changed = append(changed, k)
	}
	if silent || len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	for _, k := range changed {
		m.Trigger("change:"+k, m, m.attrs[k])
	}
	m.Trigger("change", m)
}

// ID returns the value of the id attribute and whether it is set.
func (m *Model) ID() (any, bool) {
	id, ok := m.attrs[m.cfg.IDAttribute]
	return id, ok && id != nil
}

// SetID sets the id whatever the id attribute is called.
func (m *Model) SetID(id any, silent bool) {
	m.Set(Attributes{m.cfg.IDAttribute: id}, silent)
}

// SanitizeOptions controls SanitizedAttributes.
type SanitizeOptions struct {
	// Bypass returns the attributes untouched.
	Bypass bool

	// Blacklist is stripped in addition to the model's own blacklist.
	Blacklist []string
}

// SanitizedAttributes returns attrs, or the model's attributes when attrs
// is nil, without blacklisted keys. The option blacklist only extends a
// non-empty model blacklist; a model without one is never sanitized.
func (m *Model) SanitizedAttributes(attrs Attributes, opts SanitizeOptions) Attributes {
	if attrs == nil {
		attrs = m.attrs
	}
	if opts.Bypass || len(m.cfg.Blacklist) == 0 {
		return copyAttrs(attrs)
	}
	drop := make(map[string]struct{}, len(m.cfg.Blacklist)+len(opts.Blacklist))
	for _, k := range m.cfg.Blacklist {
		drop[k] = struct{}{}
	}
	for _, k := range opts.Blacklist {
		drop[k] = struct{}{}
	}
	out := make(Attributes, len(attrs))
	for k, v := range attrs {
		if _, ok := drop[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Reset clears the model and sets the defaults overlaid by attrs. It
// triggers ResetEvent with the model unless silent.
func (m *Model) Reset(attrs Attributes, silent bool) *Model {
	m.attrs = Attributes{}
	m.Set(withDefaults(m.cfg.Defaults, attrs), true)
	if !silent {
		m.Trigger(ResetEvent, m)
	}
	return m
}

// Is reports whether other is the same model: the same instance, or the
// same kind with an equal id. Without an id the client ids are compared.
func (m *Model) Is(other *Model) bool {
	if other == nil {
		return false
	}
	if m == other {
		return true
	}
	if m.cfg.Kind != other.cfg.Kind {
		return false
	}
	if id, ok := m.ID(); ok {
		otherID, _ := other.ID()
		return reflect.DeepEqual(id, otherID)
	}
	return m.cid == other.cid
}

// Clone returns a new model of the same kind with the same attributes.
// A shallow clone shares nested maps and slices; a deep clone copies them.
func (m *Model) Clone(deep bool) *Model {
	attrs := copyAttrs(m.attrs)
	if deep {
		attrs = deepCopy(m.attrs).(Attributes)
	}
	c := New(m.cfg, nil)
	c.attrs = attrs
	return c
}

// ToJSON returns a shallow copy of the attributes for serialization. The
// blacklist is not applied.
func (m *Model) ToJSON() Attributes {
	return m.SanitizedAttributes(nil, SanitizeOptions{Bypass: true})
}

// MarshalJSON implements json.Marshaler.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToJSON())
}

// IsValid runs the validator, if any.
func (m *Model) IsValid() bool {
	return m.Validate() == nil
}

// Validate returns the validator's error, if any.
func (m *Model) Validate() error {
	if m.cfg.Validate == nil {
		return nil
	}
	return m.cfg.Validate(copyAttrs(m.attrs))
}

func withDefaults(defaults, attrs Attributes) Attributes {
	out := make(Attributes, len(defaults)+len(attrs))
	for k, v := range defaults {
		out[k] = deepCopy(v)
	}
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func copyAttrs(a Attributes) Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// deepCopy copies the map and slice shapes attributes are decoded into.
// Other values are returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case Attributes:
		out := make(Attributes, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
