// Package console exposes the operator console state over a local HTTP
// surface. Handlers are mounted next to the metrics endpoint and are meant
// for local tooling, not for the dispatch backend.
package console

import (
	"encoding/json"
	"net/http"

	"github.com/kilianp07/dispatchconsole/core/analytics"
	"github.com/kilianp07/dispatchconsole/core/store"
	"github.com/kilianp07/dispatchconsole/core/workflow"
)

type snapshotResponse struct {
	Counts   store.Counts   `json:"counts"`
	Snapshot store.Snapshot `json:"snapshot"`
}

// NewSnapshotHandler serves the current entity snapshot and its counts via
// GET /api/console/snapshot.
func NewSnapshotHandler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := snapshotResponse{Counts: st.Counts(), Snapshot: st.Snapshot()}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

type analyticsResponse struct {
	ResponseTimes  analytics.ResponseTimeStats `json:"response_times"`
	OpenBySeverity map[string]int              `json:"open_by_severity"`
}

// NewAnalyticsHandler serves response-time statistics over resolved incidents
// via GET /api/console/analytics.
func NewAnalyticsHandler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		incidents := st.Incidents()
		bySeverity := make(map[string]int)
		for sev, n := range analytics.SeverityBreakdown(incidents) {
			bySeverity[string(sev)] = n
		}
		resp := analyticsResponse{
			ResponseTimes:  analytics.ComputeResponseTimes(incidents),
			OpenBySeverity: bySeverity,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

type workflowResponse struct {
	State      workflow.State `json:"state"`
	IncidentID int64          `json:"incident_id,omitempty"`
	DispatchID int64          `json:"dispatch_id,omitempty"`
}

// NewWorkflowHandler reports the dispatch workflow state via
// GET /api/console/workflow.
func NewWorkflowHandler(ctrl *workflow.Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := workflowResponse{State: ctrl.State()}
		if resp.State != workflow.StateIdle {
			resp.IncidentID = ctrl.Incident().ID
			if d := ctrl.ActiveDispatch(); d != nil {
				resp.DispatchID = d.DispatchID
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
