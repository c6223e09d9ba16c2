package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg          *prom.Registry
	runDuration  prom.Gauge
	lastRun      prom.Gauge
	fileResults  *prom.CounterVec
	replacements prom.Counter
	walkErrors   prom.Counter
}

// NewPrometheusRecorder constructs and registers linkfix metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: "linkfix",
			Name:      "run_duration_seconds",
			Help:      "Duration of the last rewrite run",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "linkfix",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last rewrite run finished",
		}),
		fileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linkfix",
			Name:      "files_total",
			Help:      "Files visited by outcome",
		}, []string{"result"}),
		replacements: prom.NewCounter(prom.CounterOpts{
			Namespace: "linkfix",
			Name:      "replacements_total",
			Help:      "Malformed links replaced",
		}),
		walkErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: "linkfix",
			Name:      "walk_errors_total",
			Help:      "Directory entries that could not be enumerated",
		}),
	}
	reg.MustRegister(pr.runDuration, pr.lastRun, pr.fileResults, pr.replacements, pr.walkErrors)
	return pr
}

// Registry returns the registry the recorder's collectors live in.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.reg
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncFileResult(result FileResult) {
	if p == nil {
		return
	}
	p.fileResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddReplacements(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.replacements.Add(float64(n))
}

func (p *PrometheusRecorder) IncWalkError() {
	if p == nil {
		return
	}
	p.walkErrors.Inc()
}
