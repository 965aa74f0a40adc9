// Package backend defines the contract the console expects from the dispatch
// backend, plus the error type for rejected commits.
package backend

import (
	"context"
	"fmt"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// StatusFilter narrows the incident listing. FilterAll omits the status
// query parameter entirely.
type StatusFilter string

const (
	FilterAll      StatusFilter = "ALL"
	FilterReported StatusFilter = "REPORTED"
	FilterAssigned StatusFilter = "ASSIGNED"
	FilterResolved StatusFilter = "RESOLVED"
)

// Valid reports whether f is one of the known filter values.
func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterReported, FilterAssigned, FilterResolved:
		return true
	}
	return false
}

// Client is the full read/write surface consumed by the console. Components
// take the narrow subset they need.
type Client interface {
	ListIncidents(ctx context.Context, filter StatusFilter) ([]model.Incident, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	ListStations(ctx context.Context) ([]model.Station, error)
	ListDispatches(ctx context.Context, incidentID int64) ([]model.Dispatch, error)
	ModifyDispatch(ctx context.Context, dispatchID, newVehicleID int64) error
}

// RejectedError carries the server's verbatim rejection of a commit. It is
// surfaced to the operator unmodified.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}
