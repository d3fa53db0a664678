// Package dom defines the rendering surface the view layer is written against.
//
// Views never touch a concrete DOM. They work through three small
// capabilities:
//
//   - Element: selector-scoped lookup, class and attribute mutation,
//     content clearing and appending.
//   - EventTarget: namespaced bind/unbind by event name with an optional
//     delegation selector.
//   - Environment: the process-wide window and document targets.
//
// Selection is the result of a lookup. An empty Selection is a valid,
// never-matched handle; every mutator on it is a no-op.
//
// # Registry
//
// Registry is the in-memory EventTarget used for window, document and
// per-element delegation. Listeners are keyed by event name, namespace and
// selector, so a single Off("", ns, "") removes exactly one owner's bindings:
//
//	reg := dom.NewRegistry(nil)
//	reg.On("resize", "delegateGlobalEventsview1", "", onResize)
//	reg.On("click", "delegateGlobalEventsview1", ".btn", onClick)
//	reg.Off("", "delegateGlobalEventsview1", "") // both gone
//
// The htmldom subpackage provides a concrete Element and Environment over
// golang.org/x/net/html.
package dom
