package model

import "testing"

func TestEligibleVehicles(t *testing.T) {
	inc := Incident{ID: 1, Type: TypeFire}
	vehicles := []Vehicle{
		{ID: 1, Type: TypeFire, Status: VehicleAvailable},
		{ID: 2, Type: TypeFire, Status: VehicleOnRoute},
		{ID: 3, Type: TypeMedical, Status: VehicleAvailable},
		{ID: 4, Type: TypeFire, Status: VehicleAvailable},
		{ID: 5, Type: TypePolice, Status: VehiclePending},
	}
	out := EligibleVehicles(inc, vehicles)
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 4 {
		t.Fatalf("eligibility filter failed: %#v", out)
	}
}

func TestEligibleVehiclesEmpty(t *testing.T) {
	inc := Incident{ID: 1, Type: TypePolice}
	vehicles := []Vehicle{
		{ID: 1, Type: TypeFire, Status: VehicleAvailable},
		{ID: 2, Type: TypePolice, Status: VehicleOnRoute},
	}
	if out := EligibleVehicles(inc, vehicles); len(out) != 0 {
		t.Fatalf("expected no candidates, got %#v", out)
	}
}
