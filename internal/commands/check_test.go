package commands

import (
	"testing"
)

func TestFirstCoordinatesPicksFirstResult(t *testing.T) {
	payload := `{"results":[{"latitude":59.9139,"longitude":10.7522,"name":"Oslo"},{"latitude":59.2,"longitude":10.9}]}`
	lat, lon, found := firstCoordinates(payload)
	if !found {
		t.Fatalf("expected coordinates to be found")
	}
	if lat != 59.9139 || lon != 10.7522 {
		t.Fatalf("unexpected coordinates: %v, %v", lat, lon)
	}
}

func TestFirstCoordinatesEmptyResults(t *testing.T) {
	if _, _, found := firstCoordinates(`{"results":[]}`); found {
		t.Fatalf("expected no coordinates for empty results")
	}
	if _, _, found := firstCoordinates(`{"generationtime_ms":0.5}`); found {
		t.Fatalf("expected no coordinates when results key is absent")
	}
}

func TestFirstCoordinatesFailureMessage(t *testing.T) {
	if _, _, found := firstCoordinates("Location data is currently unavailable for this search."); found {
		t.Fatalf("expected no coordinates for a failure message")
	}
}
