package metrics

import (
	"errors"
	"testing"
	"time"
)

type testRecorder struct {
	renders map[ResultLabel]int
	http    map[string]int
	clients int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{renders: map[ResultLabel]int{}, http: map[string]int{}}
}

func (t *testRecorder) ObserveRenderDuration(string, time.Duration) {}
func (t *testRecorder) IncRenderResult(_ string, result ResultLabel) { t.renders[result]++ }
func (t *testRecorder) ObserveExportDuration(time.Duration, ResultLabel) {}
func (t *testRecorder) SetLiveReloadClients(n int) { t.clients = n }
func (t *testRecorder) IncContentReload(ResultLabel) {}
func (t *testRecorder) ObserveHTTPRequest(_, route string, _ int, _ time.Duration) {
	t.http[route]++
}

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var _ Recorder = newTestRecorder()
}

func TestResultFor(t *testing.T) {
	if ResultFor(nil) != ResultSuccess {
		t.Fatal("nil error should map to success")
	}
	if ResultFor(errors.New("x")) != ResultFailed {
		t.Fatal("non-nil error should map to failed")
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveRenderDuration("home", time.Millisecond)
	p.IncRenderResult("home", ResultSuccess)
	p.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	p.SetLiveReloadClients(3)
}
