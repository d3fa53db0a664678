// Package htmldom implements dom.Element and dom.Environment over a parsed
// HTML tree from golang.org/x/net/html. Selectors are CSS, compiled with
// cascadia and cached per process.
//
// A Document owns one wrapper per element node, so two lookups of the same
// node return the same *Element and compare equal as dom.Element values.
//
//	doc, err := htmldom.ParseString(`<div id="app"><p class="x"></p></div>`)
//	app := doc.Find("#app").Get(0)
//	app.Find(".x").AddClass("y")
//
// Events are dispatched with Dispatch, which bubbles from the target through
// every ancestor's scoped registry, then the document, then the window.
package htmldom
