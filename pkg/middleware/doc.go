// Package middleware integrates the inject engine with net/http.
//
// This package includes:
//   - Inject, which captures each HTML response and resolves its
//     injection points
//   - OpenTelemetry tracing for requests and resolutions
//   - Prometheus metrics for resolutions
//
// # Inject Middleware
//
// Inject gives every request its own inject.Manager. Handlers and the
// templates they execute register content through FromContext; the
// captured response is rewritten once the handler returns.
//
//	r := chi.NewRouter()
//	r.Use(middleware.Inject(
//	    middleware.WithManagerConfig(inject.Config{ReportMode: inject.ReportLog}),
//	))
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//	    m := middleware.FromContext(r.Context())
//	    m.AddScriptFile("/js/home.js")
//	    layout.Execute(w, m)
//	})
//
// # Prometheus Metrics
//
// NewMetrics returns an inject.Observer that records:
//   - inject_resolutions_total: Resolutions by status
//   - inject_points_total: Injection points recognized
//   - inject_points_filled_total: Injection points matched to content
//   - inject_unmatched_total: Unmatched collections by kind
//   - inject_resolve_duration_seconds: Resolution duration histogram
//   - inject_page_bytes: Size of resolved pages
//
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(middleware.Inject(middleware.WithObserver(metrics)))
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request. NewTracer returns an
// observer that adds an "inject.resolve" child span for each resolution.
//
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Inject(middleware.WithObserver(middleware.NewTracer())))
package middleware
