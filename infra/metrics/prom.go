package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/dispatchconsole/core/metrics"
)

// PromSink records console events in Prometheus metrics.
type PromSink struct {
	polls    *prometheus.CounterVec
	pollDur  *prometheus.HistogramVec
	commits  *prometheus.CounterVec
	snapshot *prometheus.GaugeVec
}

// NewPromSink registers console metrics on the default Prometheus registerer.
// The Prometheus server should be started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	polls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_poll_total",
		Help: "Total number of collection fetches by outcome",
	}, []string{"collection", "success"})
	pollDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_poll_duration_seconds",
		Help:    "Duration of collection fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_dispatch_commits_total",
		Help: "Total number of dispatch reassignment attempts by outcome",
	}, []string{"accepted"})
	snapshot := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "console_snapshot_entities",
		Help: "Number of entities in the local snapshot per collection",
	}, []string{"collection"})

	if err := reg.Register(polls); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			polls = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(pollDur); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pollDur = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(commits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			commits = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(snapshot); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			snapshot = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{polls: polls, pollDur: pollDur, commits: commits, snapshot: snapshot}, nil
}

// RecordPollResult increments the fetch counter and observes its duration.
func (s *PromSink) RecordPollResult(r coremetrics.PollResult) error {
	s.polls.WithLabelValues(r.Collection, strconv.FormatBool(r.Success)).Inc()
	s.pollDur.WithLabelValues(r.Collection).Observe(r.Duration.Seconds())
	return nil
}

// RecordCommitResult increments the commit counter.
func (s *PromSink) RecordCommitResult(r coremetrics.CommitResult) error {
	s.commits.WithLabelValues(strconv.FormatBool(r.Accepted)).Inc()
	return nil
}

// RecordSnapshotSize sets the per-collection entity gauges.
func (s *PromSink) RecordSnapshotSize(r coremetrics.SnapshotSize) error {
	s.snapshot.WithLabelValues("incidents").Set(float64(r.Incidents))
	s.snapshot.WithLabelValues("vehicles").Set(float64(r.Vehicles))
	s.snapshot.WithLabelValues("stations").Set(float64(r.Stations))
	return nil
}
