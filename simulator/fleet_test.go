package main

import (
	"math"
	"testing"
	"time"
)

func simConfig() Config {
	return Config{
		Broker:    "tcp://localhost:1883",
		Count:     10,
		FirstID:   100,
		CenterLat: 30.0444,
		CenterLng: 31.2357,
		RadiusKm:  5,
		SpeedKmh:  40,
		Interval:  time.Second,
	}
}

func TestGenerateFleet(t *testing.T) {
	cfg := simConfig()
	fleet := GenerateFleet(cfg)
	if len(fleet) != cfg.Count {
		t.Fatalf("fleet size %d", len(fleet))
	}
	maxDist := cfg.RadiusKm * degPerKm * 1.01
	for i, v := range fleet {
		if v.ID != cfg.FirstID+int64(i) {
			t.Errorf("vehicle %d: id %d", i, v.ID)
		}
		d := math.Hypot(v.Lat-cfg.CenterLat, v.Lng-cfg.CenterLng)
		if d > maxDist {
			t.Errorf("vehicle %d spawned %.5f deg away", i, d)
		}
	}
}

func TestStepMovesVehicle(t *testing.T) {
	fleet := GenerateFleet(simConfig())
	v := fleet[0]
	lat, lng := v.Lat, v.Lng
	v.Step()
	if v.Lat == lat && v.Lng == lng {
		t.Fatal("vehicle did not move")
	}
	moved := math.Hypot(v.Lat-lat, v.Lng-lng)
	if moved > v.StepDeg*1.01 {
		t.Fatalf("moved %.8f deg, step is %.8f", moved, v.StepDeg)
	}
}

func TestPositionCarriesID(t *testing.T) {
	fleet := GenerateFleet(simConfig())
	pos := fleet[3].Position()
	if pos.VehicleID != 103 {
		t.Fatalf("vehicle id %d", pos.VehicleID)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := simConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := []Config{
		{},
		{Broker: "tcp://x", Count: 0, RadiusKm: 1, Interval: time.Second},
		{Broker: "tcp://x", Count: 1, RadiusKm: 0, Interval: time.Second},
		{Broker: "tcp://x", Count: 1, RadiusKm: 1},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
