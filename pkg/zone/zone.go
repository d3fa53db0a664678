// Package zone turns a declarative region descriptor into a tree of cached
// element handles.
//
// A descriptor maps logical names to selectors, or to nested descriptors:
//
//	zone.Descriptor{
//	    "header": ".hd",
//	    "body": zone.Descriptor{"left": ".l", "right": ".r"},
//	}
//
// resolves to a Map where leaves are stored under "$"+name and nested
// descriptors under their plain name:
//
//	{"$header": <.hd>, "body": {"$left": <.l>, "$right": <.r>}}
package zone

import (
	"sort"
	"strings"

	"github.com/vango-dev/backtension/pkg/dom"
)

// HandlePrefix marks a leaf key in a Map.
const HandlePrefix = "$"

// Descriptor is a region descriptor. Values are selectors (string), element
// handles (dom.Element or dom.Selection) or nested descriptors
// (Descriptor or map[string]any).
type Descriptor map[string]any

// Scope resolves selectors inside an owning element.
type Scope interface {
	Find(selector string) dom.Selection
}

// Map is a resolved zone tree. Keys beginning with HandlePrefix hold a
// dom.Selection; other keys hold a nested Map.
type Map map[string]any

// Resolve expands d against scope. A nil descriptor yields an empty Map.
// The result is always a fresh Map; callers replace, never merge.
func Resolve(scope Scope, d Descriptor) Map {
	zones := Map{}
	resolveInto(scope, d, zones)
	return zones
}

func resolveInto(scope Scope, d map[string]any, zones Map) {
	for name, value := range d {
		if nested, ok := nestedDescriptor(value); ok && len(nested) > 0 {
			sub := Map{}
			zones[name] = sub
			resolveInto(scope, nested, sub)
			continue
		}
		zones[HandlePrefix+name] = lookup(scope, value)
	}
}

// nestedDescriptor unwraps the mapping types a descriptor value may take.
// Empty mappings are reported too so the caller can treat them as leaves.
func nestedDescriptor(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case Descriptor:
		return t, true
	case map[string]any:
		return t, true
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return m, true
	}
	return nil, false
}

// lookup turns a leaf value into a handle. Anything that is not a selector
// or an element resolves to an empty, never-matched selection.
func lookup(scope Scope, v any) dom.Selection {
	switch t := v.(type) {
	case string:
		if scope == nil || t == "" {
			return nil
		}
		return scope.Find(t)
	case dom.Selection:
		return t
	case dom.Element:
		return dom.Select(t)
	}
	return nil
}

// Handle returns the handle stored for the leaf name.
func (m Map) Handle(name string) dom.Selection {
	sel, _ := m[HandlePrefix+name].(dom.Selection)
	return sel
}

// Sub returns the nested map stored for name, or nil.
func (m Map) Sub(name string) Map {
	sub, _ := m[name].(Map)
	return sub
}

// Path returns the handle at a dotted path such as "body.left".
func (m Map) Path(path string) dom.Selection {
	parts := strings.Split(path, ".")
	cur := m
	for _, p := range parts[:len(parts)-1] {
		cur = cur.Sub(p)
		if cur == nil {
			return nil
		}
	}
	return cur.Handle(parts[len(parts)-1])
}

// Leaves returns every leaf path in dotted form, sorted.
func (m Map) Leaves() []string {
	var out []string
	m.walk("", func(path string, _ dom.Selection) {
		out = append(out, path)
	})
	sort.Strings(out)
	return out
}

// Walk calls fn for every leaf in sorted path order.
// Names containing "." are reported with the handle stored for them, even
// though Path cannot address them.
func (m Map) Walk(fn func(path string, handle dom.Selection)) {
	type leaf struct {
		path   string
		handle dom.Selection
	}
	var leaves []leaf
	m.walk("", func(path string, handle dom.Selection) {
		leaves = append(leaves, leaf{path, handle})
	})
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].path < leaves[j].path })
	for _, l := range leaves {
		fn(l.path, l.handle)
	}
}

func (m Map) walk(prefix string, fn func(string, dom.Selection)) {
	for key, value := range m {
		if strings.HasPrefix(key, HandlePrefix) {
			sel, _ := value.(dom.Selection)
			fn(prefix+strings.TrimPrefix(key, HandlePrefix), sel)
			continue
		}
		if sub, ok := value.(Map); ok {
			sub.walk(prefix+key+".", fn)
		}
	}
}
