package view

import (
	"context"
	"reflect"
)

// Disable unbinds the view's scoped events and cascades to the named
// sub-views. Global events and owned children are left alone. Disabling a
// disabled or removed view is a no-op.
func (v *View) Disable(opts Options) {
	v.rt.schedule(opts.Defer, func() { v.disable(opts) })
}

func (v *View) disable(opts Options) {
	if v.state == StateDisabled || v.state == StateRemoved {
		return
	}
	_, span := v.rt.tracer.Start(context.Background(), "disable", v.namespace, opts.Defer)
	defer span.End()
	v.rt.metrics.LifecycleOp("disable", opts.Defer)
	v.rt.logger.Debug("view disable", "view", v.namespace, "defer", opts.Defer)

	v.state = StateDisabled
	if v.onDisable != nil {
		v.onDisable(v, opts)
	}
	v.UndelegateEvents()
	// Already on the deferred turn when opts.Defer is set; cascade inline.
	for _, name := range sortedKeys(v.views) {
		if d, ok := v.views[name].(Disabler); ok {
			d.Disable(Options{})
		}
	}
}

// DisableChildViews disables every owned child that supports it.
func (v *View) DisableChildViews(opts Options) {
	for _, c := range v.Children() {
		if d, ok := c.(Disabler); ok {
			d.Disable(opts)
		}
	}
}

// Remove tears the view down: OnRemove, global unbind, owned children
// (oldest first), named sub-views, then element detach and scoped unbind.
// The view is terminal afterwards. Removing a removed view is a no-op.
func (v *View) Remove(opts Options) {
	v.rt.schedule(opts.Defer, func() { v.remove(opts) })
}

func (v *View) remove(opts Options) {
	if v.state == StateRemoved {
		return
	}
	_, span := v.rt.tracer.Start(context.Background(), "remove", v.namespace, opts.Defer)
	defer span.End()
	v.rt.metrics.LifecycleOp("remove", opts.Defer)
	v.rt.logger.Debug("view remove", "view", v.namespace, "defer", opts.Defer, "children", len(v.children))

	v.state = StateRemoved
	if v.onRemove != nil {
		v.onRemove(v, opts)
	}
	v.UndelegateGlobalEvents()
	// Already on the deferred turn when opts.Defer is set; cascade inline.
	removed := v.drainChildren(Options{})
	for _, name := range sortedKeys(v.views) {
		c := v.views[name]
		if containsComponent(removed, c) {
			continue
		}
		c.Remove(Options{})
	}
	if v.el != nil {
		v.el.Detach()
	}
	v.UndelegateEvents()
	v.StopListening(nil)
	if v.parent != nil {
		v.parent.forget(v)
	}
	v.rt.metrics.ViewRemoved()
}

// RemoveChildViews removes every owned child, oldest first. The owned list
// is empty when the call returns, even when the removals are deferred.
func (v *View) RemoveChildViews(opts Options) {
	v.drainChildren(opts)
}

// drainChildren empties the owned list, removes each child and returns
// them.
func (v *View) drainChildren(opts Options) []Component {
	children := v.children
	v.children = nil
	for _, c := range children {
		if cv, ok := c.(*View); ok && cv.parent == v {
			cv.parent = nil
		}
		c.Remove(opts)
	}
	return children
}

// containsComponent reports whether c is in list. Components of
// non-comparable types never match.
func containsComponent(list []Component, c Component) bool {
	if c == nil || !reflect.TypeOf(c).Comparable() {
		return false
	}
	for _, x := range list {
		if x != nil && reflect.TypeOf(x) == reflect.TypeOf(c) && x == c {
			return true
		}
	}
	return false
}
