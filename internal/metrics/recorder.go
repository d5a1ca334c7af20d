package metrics

import "time"

// ResultLabel enumerates render and export result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for page rendering, HTTP serving and export.
// Implementations may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveRenderDuration(page string, d time.Duration)
	IncRenderResult(page string, result ResultLabel)
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
	ObserveExportDuration(d time.Duration, result ResultLabel)
	SetLiveReloadClients(n int)
	IncContentReload(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) IncRenderResult(string, ResultLabel) {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (NoopRecorder) ObserveExportDuration(time.Duration, ResultLabel) {}
func (NoopRecorder) SetLiveReloadClients(int) {}
func (NoopRecorder) IncContentReload(ResultLabel) {}

// ResultFor maps an error to a result label.
func ResultFor(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}
