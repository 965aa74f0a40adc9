// Package export serializes entity snapshots for offline analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// WriteJSON writes the incidents to w in JSON format.
func WriteJSON(w io.Writer, incidents []model.Incident) error {
	enc := json.NewEncoder(w)
	return enc.Encode(incidents)
}

// WriteCSV writes the incidents to w in CSV format.
func WriteCSV(w io.Writer, incidents []model.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"incident_id", "type", "severity", "status", "lat", "lng", "time_reported", "response_time"}); err != nil {
		return err
	}
	for _, inc := range incidents {
		rec := []string{
			strconv.FormatInt(inc.ID, 10),
			string(inc.Type),
			string(inc.Severity),
			string(inc.Status),
			strconv.FormatFloat(inc.Lat, 'f', -1, 64),
			strconv.FormatFloat(inc.Lng, 'f', -1, 64),
			inc.ReportedAt,
			strconv.FormatFloat(inc.ResponseTime, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
