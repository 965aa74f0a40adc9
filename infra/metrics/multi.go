package metrics

import (
	"errors"

	coremetrics "github.com/kilianp07/dispatchconsole/core/metrics"
)

// MultiSink fans events out to several sinks, collecting all errors.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPollResult(r coremetrics.PollResult) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPollResult(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordCommitResult(r coremetrics.CommitResult) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordCommitResult(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordSnapshotSize(r coremetrics.SnapshotSize) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordSnapshotSize(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
