// Package api implements the backend REST client used by the poller and the
// dispatch workflow.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/core/backend"
	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/infra/logger"
)

const defaultTimeout = 10 * time.Second

// Client talks to the dispatch backend. Every request carries the bearer
// credential; a missing credential fails the call before any network I/O.
type Client struct {
	http    *http.Client
	baseURL string
	cred    auth.Credential
	log     logger.Logger
}

// New creates a backend client for the given base URL. A zero timeout falls
// back to the default.
func New(baseURL string, timeout time.Duration, cred auth.Credential) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cred:    cred,
		log:     logger.New("api-client"),
	}
}

var _ backend.Client = (*Client)(nil)

// ListIncidents fetches incidents, optionally narrowed by status.
func (c *Client) ListIncidents(ctx context.Context, filter backend.StatusFilter) ([]model.Incident, error) {
	endpoint := c.baseURL + "/admin/incidents/"
	if filter != "" && filter != backend.FilterAll {
		endpoint += "?status=" + url.QueryEscape(string(filter))
	}
	var payload struct {
		Incidents []model.Incident `json:"incidents"`
	}
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Incidents, nil
}

// ListVehicles fetches all vehicles.
func (c *Client) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var payload struct {
		Vehicles []model.Vehicle `json:"vehicles"`
	}
	if err := c.get(ctx, c.baseURL+"/admin/vehicles/", &payload); err != nil {
		return nil, err
	}
	return payload.Vehicles, nil
}

// ListStations fetches all stations.
func (c *Client) ListStations(ctx context.Context) ([]model.Station, error) {
	var payload struct {
		Stations []model.Station `json:"stations"`
	}
	if err := c.get(ctx, c.baseURL+"/admin/stations/", &payload); err != nil {
		return nil, err
	}
	return payload.Stations, nil
}

// ListDispatches fetches the dispatch records bound to an incident. The
// backend returns the most recently created active dispatch first.
func (c *Client) ListDispatches(ctx context.Context, incidentID int64) ([]model.Dispatch, error) {
	endpoint := fmt.Sprintf("%s/admin/incidents/%d/dispatches/", c.baseURL, incidentID)
	var payload struct {
		Dispatches []model.Dispatch `json:"dispatches"`
	}
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Dispatches, nil
}

// ModifyDispatch reassigns an existing dispatch to a new vehicle. A non-2xx
// response is returned as a backend.RejectedError carrying the server message
// verbatim.
func (c *Client) ModifyDispatch(ctx context.Context, dispatchID, newVehicleID int64) error {
	body, err := json.Marshal(map[string]int64{
		"dispatch_id":    dispatchID,
		"new_vehicle_id": newVehicleID,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/incidents/dispatch/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.cred.SetAuthHeader(req); err != nil {
		return fmt.Errorf("failed to set auth header: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	rejection := struct {
		Message string `json:"message"`
	}{}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &rejection); err != nil || rejection.Message == "" {
		rejection.Message = strings.TrimSpace(string(raw))
	}
	return &backend.RejectedError{Status: resp.StatusCode, Message: rejection.Message}
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.cred.SetAuthHeader(req); err != nil {
		return fmt.Errorf("failed to set auth header: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
