// Package store holds the console's in-memory snapshot of backend entities.
package store

import (
	"sync"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// Snapshot is a consistent copy of all collections at one point in time.
type Snapshot struct {
	Incidents []model.Incident `json:"incidents"`
	Vehicles  []model.Vehicle  `json:"vehicles"`
	Stations  []model.Station  `json:"stations"`
}

// Counts summarizes the snapshot for dashboard stat cards.
type Counts struct {
	Incidents         int `json:"incidents"`
	Reported          int `json:"reported"`
	Assigned          int `json:"assigned"`
	Vehicles          int `json:"vehicles"`
	AvailableVehicles int `json:"available_vehicles"`
	Stations          int `json:"stations"`
}

// Store keeps incidents, vehicles and stations. Each collection is replaced
// wholesale; there is no per-field mutation, so readers never observe torn
// entities. A failed fetch simply leaves the previous collection in place.
type Store struct {
	mu        sync.RWMutex
	incidents []model.Incident
	vehicles  []model.Vehicle
	stations  []model.Station
}

// New creates an empty Store.
func New() *Store { return &Store{} }

// ReplaceIncidents swaps the incident collection.
func (s *Store) ReplaceIncidents(incidents []model.Incident) {
	cp := append([]model.Incident(nil), incidents...)
	s.mu.Lock()
	s.incidents = cp
	s.mu.Unlock()
}

// ReplaceVehicles swaps the vehicle collection.
func (s *Store) ReplaceVehicles(vehicles []model.Vehicle) {
	cp := append([]model.Vehicle(nil), vehicles...)
	s.mu.Lock()
	s.vehicles = cp
	s.mu.Unlock()
}

// ReplaceStations swaps the station collection.
func (s *Store) ReplaceStations(stations []model.Station) {
	cp := append([]model.Station(nil), stations...)
	s.mu.Lock()
	s.stations = cp
	s.mu.Unlock()
}

// Incidents returns a copy of the incident collection.
func (s *Store) Incidents() []model.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Incident(nil), s.incidents...)
}

// Vehicles returns a copy of the vehicle collection.
func (s *Store) Vehicles() []model.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Vehicle(nil), s.vehicles...)
}

// Stations returns a copy of the station collection.
func (s *Store) Stations() []model.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Station(nil), s.stations...)
}

// Snapshot copies all three collections under one lock acquisition.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Incidents: append([]model.Incident(nil), s.incidents...),
		Vehicles:  append([]model.Vehicle(nil), s.vehicles...),
		Stations:  append([]model.Station(nil), s.stations...),
	}
}

// Counts computes summary figures from the current snapshot.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := Counts{Incidents: len(s.incidents), Vehicles: len(s.vehicles), Stations: len(s.stations)}
	for _, inc := range s.incidents {
		switch inc.Status {
		case model.IncidentReported:
			c.Reported++
		case model.IncidentAssigned:
			c.Assigned++
		}
	}
	for _, v := range s.vehicles {
		if v.Status == model.VehicleAvailable {
			c.AvailableVehicles++
		}
	}
	return c
}
