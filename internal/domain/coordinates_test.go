package domain

import (
	"math"
	"testing"
)

func TestDistanceSymmetric(t *testing.T) {
	tirana := Coordinates{Lat: 41.3275, Lng: 19.8187}
	berat := Coordinates{Lat: 40.7050, Lng: 19.9522}

	ab := Distance(tirana, berat)
	ba := Distance(berat, tirana)

	if ab != ba {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
	// Tirana to Berat is roughly 70 km as the crow flies.
	if ab < 60000 || ab > 80000 {
		t.Fatalf("distance = %f m, expected roughly 70 km", ab)
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Coordinates{Lat: 40.0755, Lng: 20.1397}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("distance to self = %f, want exactly 0", d)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.4, 0, 1); got != 1 {
		t.Errorf("Clamp(1.4) = %f, want 1", got)
	}
	if got := Clamp(-0.2, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.2) = %f, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Clamp(0.5) = %f, want 0.5", got)
	}
}

func TestMissionCloneDoesNotAlias(t *testing.T) {
	m := Mission{ID: "m1", Name: "Operation Alpha", Targets: []string{"Tirana", "Berat"}}
	c := m.Clone()
	c.Targets[0] = "Durrës"

	if m.Targets[0] != "Tirana" {
		t.Fatalf("clone aliases original targets: %v", m.Targets)
	}
}
