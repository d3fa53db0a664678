package view

import (
	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/zone"
)

// Render runs the view's render hook. Removed views don't render.
func (v *View) Render() {
	if v.state == StateRemoved || v.render == nil {
		return
	}
	v.render(v)
}

// ApplyAttributes writes the declared attributes, id and class onto the
// root element. Repeating it changes nothing: classes already present are
// not added again.
func (v *View) ApplyAttributes() {
	if v.el == nil {
		return
	}
	for _, key := range sortedKeys(v.attributes) {
		v.el.SetAttr(key, v.attributes[key])
	}
	if v.elementID != "" {
		v.el.SetAttr("id", v.elementID)
	}
	if v.className != "" {
		v.el.AddClass(v.className)
	}
}

// Assign binds child to target inside this view and renders it, now or on
// the next turn. A string target is looked up through the view's own
// element and only the first match is used, so a child can never attach
// to an element outside its parent. An unmatched target does nothing.
// Assign returns v for chaining.
func (v *View) Assign(child Assignable, target any, opts Options) *View {
	if child == nil || v.state == StateRemoved {
		return v
	}
	var el dom.Element
	switch t := target.(type) {
	case string:
		el = v.Find(t).Get(0)
	case dom.Selection:
		el = t.Get(0)
	case dom.Element:
		el = t
	}
	if el == nil {
		return v
	}
	child.SetElement(el)
	child.ApplyAttributes()
	v.rt.schedule(opts.Defer, child.Render)
	return v
}

// GenerateZones resolves the declared regions into a fresh zone map.
func (v *View) GenerateZones() zone.Map {
	return v.GenerateZonesFor(v.regions)
}

// GenerateZonesFor resolves d against the root element and replaces the
// view's zone map with the result.
func (v *View) GenerateZonesFor(d zone.Descriptor) zone.Map {
	v.zones = zone.Resolve(v, d)
	v.rt.metrics.ZonesResolved(len(v.zones.Leaves()))
	return v.zones
}

// RenderViews mounts the named sub-views into the zones of the same name.
func (v *View) RenderViews(keys ...string) {
	v.RenderViewsInto(keys, nil, nil)
}

// RenderViewsInto mounts views[key] into zones' "$key" handle for each
// key. A nil views uses the sub-view registry; a nil zones uses the view's
// zone map. The zone is cleared before the child's element is appended.
// Missing children, non-mountable children and empty zones are skipped.
func (v *View) RenderViewsInto(keys []string, views map[string]Component, zones zone.Map) {
	if v.state == StateRemoved {
		return
	}
	if views == nil {
		views = v.views
	}
	if zones == nil {
		zones = v.zones
	}
	for _, key := range keys {
		m, ok := views[key].(Mountable)
		if !ok {
			continue
		}
		handle := zones.Handle(key)
		if handle.IsEmpty() {
			continue
		}
		m.Render()
		el := m.Element()
		if el == nil {
			continue
		}
		handle.Empty()
		handle.Append(el)
	}
}
