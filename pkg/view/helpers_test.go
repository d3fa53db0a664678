package view

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/dom/htmldom"
	"github.com/vango-dev/backtension/pkg/loop"
)

const page = `<html><body>
<div id="a" class="container">
  <div class="hd"><button class="btn">b</button></div>
  <div class="l"></div>
  <div class="r"></div>
  <div class="slot"></div>
</div>
<div class="slot" id="page-slot"></div>
<div id="other"></div>
</body></html>`

type fixture struct {
	doc   *htmldom.Document
	queue *loop.Queue
	rt    *Runtime
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc, err := htmldom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	queue := loop.New(loop.WithLogger(logger))
	return &fixture{
		doc:   doc,
		queue: queue,
		rt:    NewRuntime(doc, queue, WithLogger(logger)),
	}
}

func (f *fixture) el(t *testing.T, selector string) dom.Element {
	t.Helper()
	el := f.doc.Find(selector).Get(0)
	if el == nil {
		t.Fatalf("%s not found", selector)
	}
	return el
}

// globalCount returns the number of window and document listeners in the
// view's global namespace.
func (f *fixture) globalCount(v *View) int {
	ns := v.GlobalNamespace()
	return f.doc.WindowRegistry().Count(ns) + f.doc.DocumentRegistry().Count(ns)
}

// recorder is a minimal Component that logs calls.
type recorder struct {
	name string
	log  *[]string
	el   dom.Element
}

func (r *recorder) Render()              { *r.log = append(*r.log, r.name+":render") }
func (r *recorder) Remove(opts Options)  { *r.log = append(*r.log, r.name+":remove") }
func (r *recorder) Disable(opts Options) { *r.log = append(*r.log, r.name+":disable") }
func (r *recorder) Element() dom.Element { return r.el }
