// Package metrics records promotion run metrics and optionally writes them in
// Prometheus text exposition format for the node-exporter textfile collector.
// A one-shot CLI has nothing to scrape, so the textfile path is how run
// outcomes reach monitoring.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder owns the promotion metrics for a single run.
type Recorder struct {
	registry *prometheus.Registry

	runs            *prometheus.CounterVec
	rolloutDuration prometheus.Gauge
}

// NewRecorder creates a Recorder with a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotectl_runs_total",
		Help: "Promotion runs by terminal result.",
	}, []string{"result"})

	r.rolloutDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "promotectl_rollout_duration_seconds",
		Help: "Wall-clock duration of the rollout verification wait.",
	})

	r.registry.MustRegister(r.runs, r.rolloutDuration)
	return r
}

// RecordRun counts a run under its terminal result label.
func (r *Recorder) RecordRun(result string) {
	r.runs.WithLabelValues(result).Inc()
}

// ObserveRolloutDuration records how long the rollout wait took.
func (r *Recorder) ObserveRolloutDuration(d time.Duration) {
	r.rolloutDuration.Set(d.Seconds())
}

// WriteTextfile dumps all recorded metrics to path in text exposition format.
// Written atomically via a temp file so a collector never reads a partial dump.
func (r *Recorder) WriteTextfile(path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".promotectl-metrics-*")
	if err != nil {
		return fmt.Errorf("failed to create metrics temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(tmp, mf); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metrics temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
