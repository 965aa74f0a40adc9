// Package metrics defines the sink contract for console observability.
package metrics

import "time"

// PollResult describes one collection fetch within a poll cycle.
type PollResult struct {
	Collection string
	Success    bool
	Count      int
	Duration   time.Duration
	Time       time.Time
}

// CommitResult describes one dispatch reassignment attempt.
type CommitResult struct {
	DispatchID   int64
	NewVehicleID int64
	Accepted     bool
	Duration     time.Duration
	Time         time.Time
}

// SnapshotSize reports the size of the entity store after a poll cycle.
type SnapshotSize struct {
	Incidents int
	Vehicles  int
	Stations  int
	Time      time.Time
}

// Sink receives console events. Implementations must be safe for concurrent
// use.
type Sink interface {
	RecordPollResult(PollResult) error
	RecordCommitResult(CommitResult) error
	RecordSnapshotSize(SnapshotSize) error
}

// Config holds the sink settings.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordPollResult(PollResult) error     { return nil }
func (NopSink) RecordCommitResult(CommitResult) error { return nil }
func (NopSink) RecordSnapshotSize(SnapshotSize) error { return nil }
