// Package workflow drives the modify-dispatch flow: open an incident, pick a
// replacement vehicle, commit the reassignment against the backend, then
// reconcile through a forced refresh. All status mutation is deferred to
// server confirmation; the local snapshot is never touched optimistically.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/dispatchconsole/core/logger"
	"github.com/kilianp07/dispatchconsole/core/metrics"
	"github.com/kilianp07/dispatchconsole/core/model"
)

// State is the controller's position in the modify-dispatch flow.
type State string

const (
	StateIdle            State = "IDLE"
	StateDispatchLoading State = "DISPATCH_LOADING"
	StateDispatchReady   State = "DISPATCH_READY"
	StateCommitting      State = "COMMITTING"
)

// Backend is the write-side surface the controller needs.
type Backend interface {
	ListDispatches(ctx context.Context, incidentID int64) ([]model.Dispatch, error)
	ModifyDispatch(ctx context.Context, dispatchID, newVehicleID int64) error
}

// VehicleSource provides the current vehicle snapshot for candidate listing.
type VehicleSource interface {
	Vehicles() []model.Vehicle
}

// Refresher triggers an immediate poll cycle after a confirmed commit.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Controller runs one modify-dispatch workflow at a time. A single commit
// may be in flight per controller; concurrent attempts are rejected
// client-side rather than relying on transport idempotency.
type Controller struct {
	backend   Backend
	vehicles  VehicleSource
	refresher Refresher
	sink      metrics.Sink
	log       logger.Logger

	mu       sync.Mutex
	state    State
	incident model.Incident
	active   *model.Dispatch
}

// NewController creates an idle controller. A nil sink disables metrics.
func NewController(b Backend, vehicles VehicleSource, refresher Refresher, sink metrics.Sink, log logger.Logger) *Controller {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Controller{
		backend:   b,
		vehicles:  vehicles,
		refresher: refresher,
		sink:      sink,
		log:       log,
		state:     StateIdle,
	}
}

// State returns the current workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Incident returns the incident the workflow is open for.
func (c *Controller) Incident() model.Incident {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.incident
}

// ActiveDispatch returns a copy of the loaded dispatch record, or nil when
// the incident has none.
func (c *Controller) ActiveDispatch() *model.Dispatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	cp := *c.active
	return &cp
}

// Open loads the dispatch records for the incident and readies the workflow.
// The first record returned is selected as the active dispatch; the backend
// orders the list most-recently-created first. A fetch failure returns the
// controller to idle without opening.
func (c *Controller) Open(ctx context.Context, inc model.Incident) error {
	c.mu.Lock()
	if c.state == StateCommitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateDispatchLoading
	c.incident = inc
	c.active = nil
	c.mu.Unlock()

	dispatches, err := c.backend.ListDispatches(ctx, inc.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateIdle
		c.incident = model.Incident{}
		c.log.Errorf("load dispatches for incident %d: %v", inc.ID, err)
		return err
	}
	if len(dispatches) > 0 {
		d := dispatches[0]
		c.active = &d
	}
	c.state = StateDispatchReady
	c.log.Debugw("dispatch workflow opened", map[string]any{
		"incident_id":  inc.ID,
		"has_dispatch": c.active != nil,
	})
	return nil
}

// Candidates returns the eligible replacement vehicles for the open
// incident: same type, currently AVAILABLE. An empty list means the commit
// action is unavailable, which is informational rather than an error.
func (c *Controller) Candidates() []model.Vehicle {
	c.mu.Lock()
	inc := c.incident
	state := c.state
	c.mu.Unlock()
	if state == StateIdle || state == StateDispatchLoading {
		return nil
	}
	return model.EligibleVehicles(inc, c.vehicles.Vehicles())
}

// Commit reassigns the active dispatch to newVehicleID. On confirmation the
// workflow closes and a forced refresh reconciles the snapshot with the
// server's authoritative state. On rejection the workflow stays open in
// DISPATCH_READY with the server's message surfaced verbatim and no local
// state touched.
func (c *Controller) Commit(ctx context.Context, newVehicleID int64) error {
	c.mu.Lock()
	switch c.state {
	case StateCommitting:
		c.mu.Unlock()
		return ErrCommitInProgress
	case StateDispatchReady:
	default:
		c.mu.Unlock()
		return ErrNotOpen
	}
	if c.active == nil {
		c.mu.Unlock()
		return ErrNoActiveDispatch
	}
	dispatchID := c.active.DispatchID
	incidentID := c.incident.ID
	c.state = StateCommitting
	c.mu.Unlock()

	// Re-validate that the dispatch still exists: another operator may have
	// modified the incident since the workflow opened.
	current, err := c.backend.ListDispatches(ctx, incidentID)
	if err == nil && !containsDispatch(current, dispatchID) {
		c.mu.Lock()
		c.active = nil
		c.state = StateDispatchReady
		c.mu.Unlock()
		return ErrDispatchGone
	}
	// A failed re-validation is not fatal; the commit itself decides.

	start := time.Now()
	err = c.backend.ModifyDispatch(ctx, dispatchID, newVehicleID)
	if serr := c.sink.RecordCommitResult(metrics.CommitResult{
		DispatchID:   dispatchID,
		NewVehicleID: newVehicleID,
		Accepted:     err == nil,
		Duration:     time.Since(start),
		Time:         start,
	}); serr != nil {
		c.log.Debugf("commit metric: %v", serr)
	}

	c.mu.Lock()
	if err != nil {
		c.state = StateDispatchReady
		c.mu.Unlock()
		c.log.Warnf("dispatch %d reassignment rejected: %v", dispatchID, err)
		return err
	}
	c.state = StateIdle
	c.incident = model.Incident{}
	c.active = nil
	c.mu.Unlock()

	if c.refresher != nil {
		if err := c.refresher.Refresh(ctx); err != nil {
			// the next timer tick reconciles
			c.log.Warnf("post-commit refresh: %v", err)
		}
	}
	return nil
}

// Close abandons the open workflow without committing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateCommitting {
		return
	}
	c.state = StateIdle
	c.incident = model.Incident{}
	c.active = nil
}

func containsDispatch(dispatches []model.Dispatch, id int64) bool {
	for _, d := range dispatches {
		if d.DispatchID == id {
			return true
		}
	}
	return false
}
