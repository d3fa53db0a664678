package htmldom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/backtension/pkg/dom"
)

// Document is a parsed HTML document and the dom.Environment views bind to.
type Document struct {
	root *html.Node

	mu       sync.Mutex
	wrappers map[*html.Node]*Element

	window   *dom.Registry
	document *dom.Registry
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:     root,
		wrappers: make(map[*html.Node]*Element),
		window:   dom.NewRegistry(nil),
		document: dom.NewRegistry(nil),
	}
}

// Window implements dom.Environment.
func (d *Document) Window() dom.EventTarget { return d.window }

// Document implements dom.Environment.
func (d *Document) Document() dom.EventTarget { return d.document }

// WindowRegistry exposes the window registry for inspection.
func (d *Document) WindowRegistry() *dom.Registry { return d.window }

// DocumentRegistry exposes the document registry for inspection.
func (d *Document) DocumentRegistry() *dom.Registry { return d.document }

// Find looks up selector across the whole document.
func (d *Document) Find(selector string) dom.Selection {
	return d.wrapAll(matchDescendants(d.root, selector))
}

// Body returns the <body> element. The HTML parser always creates one.
func (d *Document) Body() *Element {
	sel := d.Find("body")
	if sel.IsEmpty() {
		return nil
	}
	return sel[0].(*Element)
}

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, ignoring write errors.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// Dispatch delivers ev starting at ev.Target. Each ancestor's scoped
// registry runs first (innermost first), then document, then window.
// StopPropagation halts the walk.
func (d *Document) Dispatch(ev *dom.Event) {
	if ev == nil {
		return
	}
	for cur := ev.Target; cur != nil; cur = cur.Parent() {
		el, ok := cur.(*Element)
		if !ok {
			break
		}
		if reg := el.registry(false); reg != nil {
			reg.Trigger(ev)
			if ev.Stopped() {
				return
			}
		}
	}
	d.document.Trigger(ev)
	if ev.Stopped() {
		return
	}
	d.window.Trigger(ev)
}

// wrap returns the canonical wrapper for n, creating it on first use.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.wrappers[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.wrappers[n] = el
	return el
}

func (d *Document) wrapAll(nodes []*html.Node) dom.Selection {
	if len(nodes) == 0 {
		return nil
	}
	out := make(dom.Selection, 0, len(nodes))
	for _, n := range nodes {
		if el := d.wrap(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// adopt moves the wrappers of el's subtree from its current document into d.
func (d *Document) adopt(el *Element) {
	old := el.doc
	if old == d {
		return
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			old.mu.Lock()
			w, ok := old.wrappers[n]
			if ok {
				delete(old.wrappers, n)
			}
			old.mu.Unlock()
			if ok {
				w.doc = d
				d.mu.Lock()
				d.wrappers[n] = w
				d.mu.Unlock()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el.node)
}
