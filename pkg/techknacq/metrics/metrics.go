// Package metrics records per-stage pipeline figures in Prometheus
// collectors. The extractor runs as a batch, so collectors are written to a
// node-exporter textfile rather than served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "techknacq"

// Stage names used as label values.
const (
	StageExtract      = "extract"
	StageFilter       = "filter"
	StagePlural       = "plural"
	StageSubsumeFreq  = "subsume_freq"
	StageDocSets      = "docsets"
	StageGraph        = "graph"
	StageScore        = "score"
	StageSubsumeScore = "subsume_score"
	StageRank         = "rank"
)

// Recorder holds the pipeline collectors. A nil *Recorder records nothing,
// so callers never need to check.
type Recorder struct {
	registry   *prometheus.Registry
	candidates *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
	scored     prometheus.Counter
	unscored   prometheus.Counter
	runs       *prometheus.CounterVec
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_candidates",
			Help:      "Candidate phrases remaining after each pipeline stage.",
		}, []string{"stage"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
		scored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phrases_scored_total",
			Help:      "Phrases that received a density score.",
		}),
		unscored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phrases_unscored_total",
			Help:      "Phrases left unscored (small sample or degenerate graph).",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed extraction runs by ranking mode.",
		}, []string{"mode"}),
	}
	r.registry.MustRegister(r.candidates, r.duration, r.scored, r.unscored, r.runs)
	return r
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Candidates sets the candidate count after stage.
func (r *Recorder) Candidates(stage string, n int) {
	if r == nil {
		return
	}
	r.candidates.WithLabelValues(stage).Set(float64(n))
}

// Observe records how long stage took since start.
func (r *Recorder) Observe(stage string, start time.Time) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Scored adds scored and unscored phrase counts.
func (r *Recorder) Scored(scored, unscored int) {
	if r == nil {
		return
	}
	r.scored.Add(float64(scored))
	r.unscored.Add(float64(unscored))
}

// Run counts one completed run in mode.
func (r *Recorder) Run(mode string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(mode).Inc()
}

// WriteTextfile writes all collectors to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
