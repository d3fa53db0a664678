package zone

import (
	"reflect"
	"testing"

	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/dom/htmldom"
)

const page = `<div id="a">
  <div class="hd"></div>
  <div class="l"></div>
  <div class="r"></div>
</div>
<div class="hd" id="global-hd"></div>`

func root(t *testing.T) dom.Element {
	t.Helper()
	doc, err := htmldom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc.Find("#a").Get(0)
}

func TestResolveNested(t *testing.T) {
	a := root(t)
	zones := Resolve(a, Descriptor{
		"header": ".hd",
		"body":   Descriptor{"left": ".l", "right": ".r"},
	})

	if got := zones.Handle("header"); got.Len() != 1 || !got[0].HasClass("hd") {
		t.Errorf("$header = %v, want the scoped .hd", got)
	}
	body := zones.Sub("body")
	if body == nil {
		t.Fatal("body sub-map missing")
	}
	if body.Handle("left").Len() != 1 || body.Handle("right").Len() != 1 {
		t.Errorf("body handles = %v", body)
	}
	if _, ok := zones["$body"]; ok {
		t.Error("non-leaf must not produce a $ entry")
	}

	want := []string{"body.left", "body.right", "header"}
	if got := zones.Leaves(); !reflect.DeepEqual(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}
}

func TestResolveScopesToOwner(t *testing.T) {
	a := root(t)
	zones := Resolve(a, Descriptor{"header": ".hd"})
	for _, el := range zones.Handle("header") {
		if id, _ := el.Attr("id"); id == "global-hd" {
			t.Error("zone resolved an element outside the owner")
		}
	}
}

func TestResolveMissingSelectorIsEmptyHandle(t *testing.T) {
	a := root(t)
	zones := Resolve(a, Descriptor{"nope": ".missing"})

	h, ok := zones["$nope"]
	if !ok {
		t.Fatal("key must be present even when nothing matched")
	}
	if sel, _ := h.(dom.Selection); sel.Len() != 0 {
		t.Errorf("$nope len = %d, want 0", sel.Len())
	}
}

func TestResolveEmptyNestedIsLeaf(t *testing.T) {
	a := root(t)
	zones := Resolve(a, Descriptor{"empty": Descriptor{}, "plain": map[string]any{}})

	for _, k := range []string{"$empty", "$plain"} {
		if _, ok := zones[k]; !ok {
			t.Errorf("%s missing", k)
		}
	}
	if zones.Sub("empty") != nil {
		t.Error("empty descriptor must not create a sub-map")
	}
}

func TestResolveNilDescriptor(t *testing.T) {
	zones := Resolve(nil, nil)
	if zones == nil || len(zones) != 0 {
		t.Errorf("Resolve(nil, nil) = %v, want empty map", zones)
	}
}

func TestResolveAcceptsDecodedMaps(t *testing.T) {
	a := root(t)
	// Shape produced by yaml.v3 when decoding into map[string]any.
	zones := Resolve(a, Descriptor{
		"body": map[string]any{"left": ".l"},
		"side": map[string]string{"right": ".r"},
	})
	if zones.Path("body.left").Len() != 1 {
		t.Error("body.left not resolved")
	}
	if zones.Path("side.right").Len() != 1 {
		t.Error("side.right not resolved")
	}
}

func TestResolveElementValues(t *testing.T) {
	a := root(t)
	hd := a.Find(".hd")
	zones := Resolve(a, Descriptor{"sel": hd, "el": hd[0], "junk": 42})

	if zones.Handle("sel").Len() != 1 || zones.Handle("el").Len() != 1 {
		t.Error("element values should be stored as handles")
	}
	if zones.Handle("junk").Len() != 0 {
		t.Error("unsupported values should resolve to an empty handle")
	}
}

func TestResolveReplaces(t *testing.T) {
	a := root(t)
	first := Resolve(a, Descriptor{"header": ".hd"})
	second := Resolve(a, Descriptor{"left": ".l"})

	if _, ok := second["$header"]; ok {
		t.Error("stale key survived re-resolution")
	}
	if _, ok := first["$left"]; ok {
		t.Error("resolution mutated an earlier map")
	}
}

func TestPathMissing(t *testing.T) {
	var m Map
	if m.Path("a.b").Len() != 0 {
		t.Error("Path on nil map should be empty")
	}
}

func TestWalk(t *testing.T) {
	a := root(t)
	zones := Resolve(a, Descriptor{
		"header":  ".hd",
		"body":    Descriptor{"left": ".l"},
		"left.hd": ".l",
	})

	got := map[string]int{}
	var order []string
	zones.Walk(func(path string, handle dom.Selection) {
		got[path] = handle.Len()
		order = append(order, path)
	})

	want := map[string]int{"body.left": 1, "header": 1, "left.hd": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk handles = %v, want %v", got, want)
	}
	if wantOrder := []string{"body.left", "header", "left.hd"}; !reflect.DeepEqual(order, wantOrder) {
		t.Errorf("Walk order = %v, want %v", order, wantOrder)
	}
}
