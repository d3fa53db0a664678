package htmldom

import (
	"bytes"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/vango-dev/backtension/pkg/dom"
)

// Element wraps an element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node

	eventsMu sync.Mutex
	events   *dom.Registry
}

var _ dom.Element = (*Element)(nil)

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Find implements dom.Element.
func (e *Element) Find(selector string) dom.Selection {
	return e.doc.wrapAll(matchDescendants(e.node, selector))
}

// Matches implements dom.Element.
func (e *Element) Matches(selector string) bool {
	return matchNode(e.node, selector)
}

// Parent implements dom.Element.
func (e *Element) Parent() dom.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Tag implements dom.Element.
func (e *Element) Tag() string { return e.node.Data }

// Classes implements dom.Element.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass implements dom.Element.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass implements dom.Element. Each argument may hold several
// space-separated tokens.
func (e *Element) AddClass(classes ...string) {
	current := e.Classes()
	seen := make(map[string]struct{}, len(current))
	for _, c := range current {
		seen[c] = struct{}{}
	}
	changed := false
	for _, arg := range classes {
		for _, c := range strings.Fields(arg) {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			current = append(current, c)
			changed = true
		}
	}
	if changed {
		e.SetAttr("class", strings.Join(current, " "))
	}
}

// Attr implements dom.Element.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr implements dom.Element.
func (e *Element) SetAttr(key, value string) {
	key = strings.ToLower(key)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// Empty implements dom.Element.
func (e *Element) Empty() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// Append implements dom.Element. Elements from another implementation are
// ignored, as are attempts to append an element into itself.
func (e *Element) Append(children ...dom.Element) {
	for _, child := range children {
		c, ok := child.(*Element)
		if !ok || c == nil || c.contains(e) {
			continue
		}
		c.Detach()
		e.doc.adopt(c)
		e.node.AppendChild(c.node)
	}
}

// contains reports whether other is e or one of its descendants.
func (e *Element) contains(other *Element) bool {
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Detach implements dom.Element.
func (e *Element) Detach() {
	if p := e.node.Parent; p != nil {
		p.RemoveChild(e.node)
	}
}

// Attached reports whether the element is still reachable from the
// document root.
func (e *Element) Attached() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Events implements dom.Element.
func (e *Element) Events() dom.EventTarget {
	return e.registry(true)
}

// Registry returns the element's scoped registry, creating it if needed.
func (e *Element) Registry() *dom.Registry {
	return e.registry(true)
}

func (e *Element) registry(create bool) *dom.Registry {
	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()
	if e.events == nil && create {
		e.events = dom.NewRegistry(e)
	}
	return e.events
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}
