package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultRequestTimeout bounds how long a handler waits for the loop.
const DefaultRequestTimeout = 5 * time.Second

// NewRouter returns the debug router for p:
//
//	GET  /metrics                   Prometheus exposition (when gatherer is set)
//	GET  /debug/zones               resolved zone leaves
//	GET  /debug/views               view tree
//	GET  /debug/events              watched global event counts
//	POST /debug/dispatch/{event}    fire an event; ?selector= picks targets
func NewRouter(p *Page, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/debug", func(r chi.Router) {
		r.Get("/zones", func(w http.ResponseWriter, req *http.Request) {
			var zones []ZoneInfo
			onLoop(w, req, p, func() { zones = p.Zones() }, func() any { return zones })
		})
		r.Get("/views", func(w http.ResponseWriter, req *http.Request) {
			var tree ViewInfo
			onLoop(w, req, p, func() { tree = p.Views() }, func() any { return tree })
		})
		r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
			var seen map[string]int
			onLoop(w, req, p, func() { seen = p.Seen() }, func() any { return seen })
		})
		r.Post("/dispatch/{event}", func(w http.ResponseWriter, req *http.Request) {
			event := chi.URLParam(req, "event")
			selector := req.URL.Query().Get("selector")
			var n int
			onLoop(w, req, p, func() { n = p.Dispatch(event, selector) }, func() any {
				return map[string]any{"event": event, "selector": selector, "dispatched": n}
			})
		})
	})
	return r
}

// onLoop runs fn on the page loop, then writes result() as JSON.
func onLoop(w http.ResponseWriter, req *http.Request, p *Page, fn func(), result func() any) {
	if err := p.Do(req.Context(), fn); err != nil {
		status := http.StatusServiceUnavailable
		if err == context.DeadlineExceeded {
			status = http.StatusGatewayTimeout
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, result())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
