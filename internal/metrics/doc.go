// Package metrics provides observability hooks for keepsake-site.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics can be switched on without touching call sites:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	s := site.New(src, site.WithRecorder(rec))
//	router.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
