package htmldom

import (
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// selectorCache holds compiled selectors. Invalid selectors are cached as
// nil so they are not recompiled on every lookup.
var selectorCache sync.Map // map[string]cascadia.Selector

func compile(selector string) cascadia.Selector {
	if v, ok := selectorCache.Load(selector); ok {
		return v.(cascadia.Selector)
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		sel = nil
	}
	selectorCache.Store(selector, sel)
	return sel
}

// ValidSelector reports whether selector compiles.
func ValidSelector(selector string) bool {
	return compile(selector) != nil
}

// matchDescendants returns the element descendants of n matching selector.
func matchDescendants(n *html.Node, selector string) []*html.Node {
	sel := compile(selector)
	if sel == nil || n == nil {
		return nil
	}
	all := sel.MatchAll(n)
	out := all[:0]
	for _, m := range all {
		if m != n {
			out = append(out, m)
		}
	}
	return out
}

func matchNode(n *html.Node, selector string) bool {
	sel := compile(selector)
	if sel == nil || n == nil || n.Type != html.ElementNode {
		return false
	}
	return sel.Match(n)
}
