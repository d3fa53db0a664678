// Package view manages a tree of views over a DOM: child ownership,
// cascading disable and remove, element (re)binding, zone lookup, and
// window/document event bindings namespaced per view.
//
// # Runtime
//
// Views share a Runtime holding the injected environment (window and
// document targets), the scheduler used for deferred work, and the logger
// and telemetry sinks:
//
//	doc, _ := htmldom.ParseString(page)
//	queue := loop.New()
//	rt := view.NewRuntime(doc, queue)
//
//	app := rt.NewView(view.Config{
//	    Element: doc.Find("#app").Get(0),
//	    Regions: zone.Descriptor{"header": ".hd", "body": zone.Descriptor{"left": ".l"}},
//	    GlobalEvents: global.Specs{"resize": "onResize"},
//	    Methods: global.Methods{"onResize": func(*dom.Event) { ... }},
//	})
//	app.GenerateZones()
//
// # Lifecycle
//
// A view moves constructed → bound → (disabled) → removed. Remove is
// terminal. Disable and Remove take Options; with Defer set the work is
// queued for the next loop turn so an in-flight event can finish before
// the subtree and its listeners are torn down.
//
// Remove drains the owned children oldest first, then the named sub-views,
// then detaches the element. Disable only reaches the named sub-views.
//
// # Threading
//
// Views are not safe for concurrent use. Call them from the goroutine that
// drives the loop.Queue, which is also where deferred work runs.
package view
