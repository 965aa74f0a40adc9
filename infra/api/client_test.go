package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/core/backend"
)

func TestListIncidentsFilterQuery(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"incidents":[{"incident_id":1,"status":"REPORTED"}]}`))
	}))
	defer server.Close()

	c := New(server.URL, 0, auth.NewStaticToken("tok"))

	cases := []struct {
		filter backend.StatusFilter
		want   string
	}{
		{backend.FilterAll, "/admin/incidents/"},
		{backend.FilterReported, "/admin/incidents/?status=REPORTED"},
		{backend.FilterAssigned, "/admin/incidents/?status=ASSIGNED"},
		{backend.FilterResolved, "/admin/incidents/?status=RESOLVED"},
	}
	for _, tc := range cases {
		t.Run(string(tc.filter), func(t *testing.T) {
			incidents, err := c.ListIncidents(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, gotURL)
			require.Len(t, incidents, 1)
			assert.Equal(t, int64(1), incidents[0].ID)
		})
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"vehicles":[]}`))
	}))
	defer server.Close()

	c := New(server.URL, 0, auth.NewStaticToken("secret"))
	_, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestNoCredentialMeansNoRequest(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	cred := auth.NewStaticToken("tok")
	cred.Clear()
	c := New(server.URL, 0, cred)
	_, err := c.ListStations(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrNoCredential))
	assert.Zero(t, hits)
}

func TestListDispatchesPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/incidents/7/dispatches/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"dispatches":[{"dispatch_id":42,"incident_id":7,"vehicle_id":3}]}`))
	}))
	defer server.Close()

	c := New(server.URL, 0, auth.NewStaticToken("tok"))
	ds, err := c.ListDispatches(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, int64(42), ds[0].DispatchID)
	assert.Equal(t, int64(3), ds[0].VehicleID)
}

func TestModifyDispatchBody(t *testing.T) {
	var got map[string]int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/incidents/dispatch/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	c := New(server.URL, 0, auth.NewStaticToken("tok"))
	require.NoError(t, c.ModifyDispatch(context.Background(), 42, 9))
	assert.Equal(t, int64(42), got["dispatch_id"])
	assert.Equal(t, int64(9), got["new_vehicle_id"])
}

func TestModifyDispatchRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"vehicle unavailable"}`))
	}))
	defer server.Close()

	c := New(server.URL, 0, auth.NewStaticToken("tok"))
	err := c.ModifyDispatch(context.Background(), 42, 9)
	var rejected *backend.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadRequest, rejected.Status)
	assert.Equal(t, "vehicle unavailable", rejected.Message)
}
