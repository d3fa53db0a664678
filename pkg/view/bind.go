package view

import (
	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/global"
)

// SetElement moves the view to el. Global bindings are dropped before the
// swap and rebound after it, so exactly one set survives; scoped bindings
// move from the old element to the new one.
func (v *View) SetElement(el dom.Element) {
	if v.state == StateRemoved {
		return
	}
	v.UndelegateGlobalEvents()
	v.UndelegateEvents()
	v.el = el
	v.DelegateEvents()
	v.DelegateGlobalEvents()
	if el != nil {
		v.state = StateBound
	}
}

// scopedNamespace tags bindings on the view's own element.
func (v *View) scopedNamespace() string {
	return "delegateEvents" + v.namespace
}

// DelegateEvents binds the declared scoped events on the root element,
// replacing any previous scoped bindings. Unresolvable handlers and
// malformed keys are skipped.
func (v *View) DelegateEvents() {
	v.UndelegateEvents()
	if v.el == nil {
		return
	}
	target := v.el.Events()
	if target == nil {
		return
	}
	ns := v.scopedNamespace()
	for _, key := range sortedKeys(v.scopedEvents) {
		handler, ok := global.ResolveHandler(v.scopedEvents[key], v)
		if !ok {
			v.rt.logger.Debug("event handler not resolved", "spec", key, "view", v.namespace)
			continue
		}
		event, selector, ok := global.ParseSpec(key)
		if !ok {
			v.rt.logger.Debug("malformed event spec", "spec", key, "view", v.namespace)
			continue
		}
		target.On(event, ns, selector, handler)
	}
	v.delegated = v.el
}

// UndelegateEvents removes the view's scoped bindings.
func (v *View) UndelegateEvents() {
	if v.delegated == nil {
		return
	}
	if target := v.delegated.Events(); target != nil {
		target.Off("", v.scopedNamespace(), "")
	}
	v.delegated = nil
}

// SetGlobalEvents replaces the declared global events and rebinds them.
func (v *View) SetGlobalEvents(specs global.Specs) {
	if v.state == StateRemoved {
		return
	}
	v.globalEvents = specs
	v.DelegateGlobalEvents()
}

// DelegateGlobalEvents binds the declared global events after dropping the
// view's existing global bindings.
func (v *View) DelegateGlobalEvents() {
	v.global.Delegate(v.globalEvents, v)
	v.reportGlobal()
}

// UndelegateGlobalEvents drops every window and document binding made by
// this view. Safe with nothing bound.
func (v *View) UndelegateGlobalEvents() {
	v.global.Undelegate()
	v.reportGlobal()
}

// DelegateGlobal adds one global binding in the view's namespace.
func (v *View) DelegateGlobal(event, selector string, handler dom.Handler) {
	v.global.DelegateOne(event, selector, handler)
	v.reportGlobal()
}

// UndelegateGlobal removes the view's bindings for event and selector.
func (v *View) UndelegateGlobal(event, selector string) {
	v.global.UndelegateOne(event, selector)
	v.reportGlobal()
}

// GlobalBindings returns the number of global bindings the view holds.
func (v *View) GlobalBindings() int { return v.global.Bound() }

// GlobalNamespace returns the namespace carried by the view's global
// bindings.
func (v *View) GlobalNamespace() string { return v.global.Namespace() }

func (v *View) reportGlobal() {
	n := v.global.Bound()
	v.rt.metrics.GlobalBindingsChanged(n - v.reportedGlobal)
	v.reportedGlobal = n
}
