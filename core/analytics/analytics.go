// Package analytics computes summary statistics over resolved incidents,
// feeding the console status surface.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// ResponseTimeStats summarizes response times, in minutes, across resolved
// incidents. Zero-valued when no resolved incident carries a response time.
type ResponseTimeStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// ComputeResponseTimes extracts response times from resolved incidents and
// summarizes them. Incidents without a positive response time are skipped.
func ComputeResponseTimes(incidents []model.Incident) ResponseTimeStats {
	var samples []float64
	for _, inc := range incidents {
		if inc.Status != model.IncidentResolved || inc.ResponseTime <= 0 {
			continue
		}
		samples = append(samples, inc.ResponseTime)
	}
	if len(samples) == 0 {
		return ResponseTimeStats{}
	}

	sort.Float64s(samples)
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) == 1 {
		std = 0
	}
	return ResponseTimeStats{
		Count:  len(samples),
		Mean:   mean,
		StdDev: std,
		Min:    samples[0],
		Max:    samples[len(samples)-1],
		P50:    stat.Quantile(0.5, stat.Empirical, samples, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, samples, nil),
	}
}

// SeverityBreakdown counts reported and assigned incidents per severity.
func SeverityBreakdown(incidents []model.Incident) map[model.Severity]int {
	out := make(map[model.Severity]int)
	for _, inc := range incidents {
		if inc.Status == model.IncidentResolved {
			continue
		}
		out[inc.Severity]++
	}
	return out
}
