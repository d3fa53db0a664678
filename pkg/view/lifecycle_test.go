package view

import (
	"reflect"
	"testing"

	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/global"
)

func TestRemoveUnbindsEverything(t *testing.T) {
	f := newFixture(t)
	el := f.el(t, "#a")
	clicks := 0
	v := f.rt.NewView(Config{
		Element:      el,
		Events:       global.Specs{"click .btn": func() { clicks++ }},
		GlobalEvents: global.Specs{"resize": func() {}, "keyup input": func() {}},
	})
	if f.globalCount(v) != 2 {
		t.Fatalf("global bindings = %d, want 2", f.globalCount(v))
	}
	btn := f.el(t, ".btn")

	v.Remove(Options{})

	if got := f.globalCount(v); got != 0 {
		t.Errorf("global bindings after remove = %d, want 0", got)
	}
	if v.GlobalBindings() != 0 {
		t.Errorf("GlobalBindings() = %d, want 0", v.GlobalBindings())
	}
	if v.State() != StateRemoved {
		t.Errorf("State() = %v, want removed", v.State())
	}
	if f.doc.Find("#a").Len() != 0 {
		t.Error("root element still attached")
	}
	f.doc.Dispatch(&dom.Event{Type: "click", Target: btn})
	if clicks != 0 {
		t.Errorf("clicks = %d after remove, want 0", clicks)
	}
}

func TestRemoveTwiceIsNoop(t *testing.T) {
	f := newFixture(t)
	calls := 0
	v := f.rt.NewView(Config{OnRemove: func(*View, Options) { calls++ }})
	v.Remove(Options{})
	v.Remove(Options{})
	if calls != 1 {
		t.Errorf("OnRemove calls = %d, want 1", calls)
	}
}

func TestRemoveOrder(t *testing.T) {
	f := newFixture(t)
	var log []string
	v := f.rt.NewView(Config{
		Element: f.el(t, "#a"),
		OnRemove: func(v *View, _ Options) {
			log = append(log, "hook")
			if v.GlobalBindings() != 1 {
				log = append(log, "globals gone early")
			}
		},
		GlobalEvents: global.Specs{"resize": func() {}},
	})
	v.AddChild(&recorder{name: "child", log: &log})
	v.SetView("named", &recorder{name: "named", log: &log})

	v.Remove(Options{})

	want := []string{"hook", "child:remove", "named:remove"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestRemoveChildViewsOldestFirst(t *testing.T) {
	f := newFixture(t)
	parent := f.rt.NewView(Config{})
	var order []uint64
	kids := make([]*View, 3)
	for i := range kids {
		kids[i] = f.rt.NewView(Config{OnRemove: func(v *View, _ Options) {
			order = append(order, v.ID())
		}})
		parent.AddChild(kids[i])
	}

	parent.RemoveChildViews(Options{Defer: true})

	if len(parent.Children()) != 0 {
		t.Errorf("children = %d right after call, want 0", len(parent.Children()))
	}
	if len(order) != 0 {
		t.Fatalf("deferred removals ran early: %v", order)
	}
	f.queue.RunPending()

	want := []uint64{kids[0].ID(), kids[1].ID(), kids[2].ID()}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("removal order = %v, want %v", order, want)
	}
	for _, k := range kids {
		if k.Parent() != nil {
			t.Errorf("view%d still has a parent", k.ID())
		}
	}
}

func TestDeferredRemoveKeepsBindingsUntilNextTurn(t *testing.T) {
	f := newFixture(t)
	v := f.rt.NewView(Config{
		Element:      f.el(t, "#a"),
		GlobalEvents: global.Specs{"resize": func() {}},
	})

	v.Remove(Options{Defer: true})
	if f.globalCount(v) != 1 || v.State() != StateBound {
		t.Fatal("deferred remove ran synchronously")
	}
	if f.queue.RunPending() != 1 {
		t.Error("expected one task on the next turn")
	}
	if f.globalCount(v) != 0 || v.State() != StateRemoved {
		t.Error("deferred remove did not run")
	}
}

func TestRemoveDetachesFromParent(t *testing.T) {
	f := newFixture(t)
	parent := f.rt.NewView(Config{})
	child := f.rt.NewView(Config{})
	parent.AddChild(child)

	child.Remove(Options{})

	if len(parent.Children()) != 0 || child.Parent() != nil {
		t.Error("removed child still linked to parent")
	}
}

func TestRemoveStopsListening(t *testing.T) {
	f := newFixture(t)
	src := f.rt.NewView(Config{})
	v := f.rt.NewView(Config{})
	got := 0
	v.ListenTo(src, "change", func(...any) { got++ })

	v.Remove(Options{})
	src.Trigger("change")

	if got != 0 {
		t.Errorf("callback ran %d times after remove", got)
	}
}

func TestRemovedViewIgnoresFurtherWork(t *testing.T) {
	f := newFixture(t)
	rendered := false
	v := f.rt.NewView(Config{Render: func(*View) { rendered = true }})
	v.Remove(Options{})

	v.SetElement(f.el(t, "#other"))
	v.Render()
	v.SetGlobalEvents(global.Specs{"resize": func() {}})

	if v.Element() != nil || rendered || f.globalCount(v) != 0 {
		t.Error("removed view accepted new work")
	}
}

func TestDisableUnbindsScopedOnly(t *testing.T) {
	f := newFixture(t)
	clicks, resizes := 0, 0
	v := f.rt.NewView(Config{
		Element:      f.el(t, "#a"),
		Events:       global.Specs{"click .btn": func() { clicks++ }},
		GlobalEvents: global.Specs{"resize": func() { resizes++ }},
	})
	var log []string
	v.SetView("named", &recorder{name: "named", log: &log})
	v.AddChild(&recorder{name: "owned", log: &log})

	v.Disable(Options{})

	f.doc.Dispatch(&dom.Event{Type: "click", Target: f.el(t, ".btn")})
	f.doc.Dispatch(&dom.Event{Type: "resize"})
	if clicks != 0 || resizes != 1 {
		t.Errorf("clicks = %d, resizes = %d; want 0, 1", clicks, resizes)
	}
	if v.State() != StateDisabled {
		t.Errorf("State() = %v, want disabled", v.State())
	}
	if !reflect.DeepEqual(log, []string{"named:disable"}) {
		t.Errorf("log = %v, want only the named sub-view disabled", log)
	}

	v.Disable(Options{})
	if len(log) != 1 {
		t.Error("second disable cascaded again")
	}
}

func TestDisableDeferred(t *testing.T) {
	f := newFixture(t)
	v := f.rt.NewView(Config{Element: f.el(t, "#a")})
	v.Disable(Options{Defer: true})
	if v.State() != StateBound {
		t.Fatal("deferred disable ran synchronously")
	}
	f.queue.RunPending()
	if v.State() != StateDisabled {
		t.Error("deferred disable did not run")
	}
}

func TestDisableChildViews(t *testing.T) {
	f := newFixture(t)
	parent := f.rt.NewView(Config{})
	child := f.rt.NewView(Config{Element: f.el(t, "#other")})
	parent.AddChild(child)

	parent.DisableChildViews(Options{})

	if child.State() != StateDisabled {
		t.Errorf("child State() = %v, want disabled", child.State())
	}
	if parent.State() != StateConstructed {
		t.Errorf("parent State() = %v, want constructed", parent.State())
	}
}

func TestDisabledViewCanRebind(t *testing.T) {
	f := newFixture(t)
	clicks := 0
	v := f.rt.NewView(Config{
		Element: f.el(t, "#a"),
		Events:  global.Specs{"click .btn": func() { clicks++ }},
	})
	v.Disable(Options{})
	v.SetElement(f.el(t, "#a"))

	f.doc.Dispatch(&dom.Event{Type: "click", Target: f.el(t, ".btn")})
	if clicks != 1 || v.State() != StateBound {
		t.Errorf("clicks = %d, state = %v; want 1, bound", clicks, v.State())
	}
}

func TestRuntimeWithoutScheduler(t *testing.T) {
	rt := NewRuntime(nil, nil)
	v := rt.NewView(Config{})
	v.Remove(Options{Defer: true})
	if v.State() == StateRemoved {
		t.Fatal("deferred remove ran synchronously")
	}
	rt.Scheduler().(interface{ RunPending() int }).RunPending()
	if v.State() != StateRemoved {
		t.Error("private queue did not run the removal")
	}
}

func TestDeferredRemoveTearsDownChildrenOnSameTurn(t *testing.T) {
	f := newFixture(t)
	parent := f.rt.NewView(Config{Element: f.el(t, "#a")})
	child := f.rt.NewView(Config{
		Element:      f.el(t, ".slot"),
		GlobalEvents: global.Specs{"resize": func() {}},
	})
	parent.AddChild(child)
	var log []string
	named := &recorder{name: "named", log: &log}
	parent.SetView("named", named)

	parent.Remove(Options{Defer: true})
	if f.globalCount(child) != 1 {
		t.Fatal("child unbound before the deferred turn")
	}

	f.queue.RunPending()

	if got := f.globalCount(child); got != 0 {
		t.Errorf("child global bindings after one turn = %d, want 0", got)
	}
	if child.State() != StateRemoved {
		t.Errorf("child State() = %v, want removed", child.State())
	}
	if !reflect.DeepEqual(log, []string{"named:remove"}) {
		t.Errorf("log = %v, want named removed on the same turn", log)
	}
	if n := f.queue.Pending(); n != 0 {
		t.Errorf("Pending() = %d after the deferred turn, want 0", n)
	}
}

func TestDeferredDisableCascadesOnSameTurn(t *testing.T) {
	f := newFixture(t)
	v := f.rt.NewView(Config{Element: f.el(t, "#a")})
	var log []string
	v.SetView("named", &recorder{name: "named", log: &log})

	v.Disable(Options{Defer: true})
	f.queue.RunPending()

	if !reflect.DeepEqual(log, []string{"named:disable"}) {
		t.Errorf("log = %v, want named disabled on the same turn", log)
	}
}

func TestRemoveVisitsSharedChildOnce(t *testing.T) {
	f := newFixture(t)
	v := f.rt.NewView(Config{})
	var log []string
	shared := &recorder{name: "shared", log: &log}
	v.AddChild(shared)
	v.SetView("shared", shared)
	v.SetView("other", &recorder{name: "other", log: &log})

	v.Remove(Options{})

	want := []string{"shared:remove", "other:remove"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}
