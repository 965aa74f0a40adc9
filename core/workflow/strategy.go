package workflow

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// AssignmentStrategy abstracts the two assignment disciplines: the
// backend-integrated flow defers every status change to server confirmation,
// while the local-mock flow mutates immediately. IDs are opaque strings so
// both numeric backend ids and local unit ids fit.
type AssignmentStrategy interface {
	Assign(ctx context.Context, incidentID, vehicleID string) error
	Mode() string
}

// IncidentSource provides the incident snapshot for lookups.
type IncidentSource interface {
	Incidents() []model.Incident
}

// ServerConfirmed routes assignment through the workflow controller: open,
// commit, reconcile. Nothing changes locally until the backend confirms.
type ServerConfirmed struct {
	Controller *Controller
	Incidents  IncidentSource
}

func (s ServerConfirmed) Mode() string { return "server-confirmed" }

func (s ServerConfirmed) Assign(ctx context.Context, incidentID, vehicleID string) error {
	incID, err := strconv.ParseInt(incidentID, 10, 64)
	if err != nil {
		return fmt.Errorf("incident id %q: %w", incidentID, err)
	}
	vehID, err := strconv.ParseInt(vehicleID, 10, 64)
	if err != nil {
		return fmt.Errorf("vehicle id %q: %w", vehicleID, err)
	}
	var incident model.Incident
	found := false
	for _, inc := range s.Incidents.Incidents() {
		if inc.ID == incID {
			incident = inc
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown incident %d", incID)
	}
	if err := s.Controller.Open(ctx, incident); err != nil {
		return err
	}
	return s.Controller.Commit(ctx, vehID)
}

// OptimisticLocal applies assignment immediately to the session-local data.
type OptimisticLocal struct {
	Assigner *LocalAssigner
}

func (o OptimisticLocal) Mode() string { return "optimistic-local" }

func (o OptimisticLocal) Assign(_ context.Context, incidentID, vehicleID string) error {
	incID, err := strconv.Atoi(incidentID)
	if err != nil {
		return fmt.Errorf("incident id %q: %w", incidentID, err)
	}
	return o.Assigner.Assign(incID, vehicleID)
}
