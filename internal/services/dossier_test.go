package services

import (
	"errors"
	"strings"
	"testing"

	"recon-planner-service/internal/domain"
)

func dossierCatalog() domain.Catalog {
	return domain.Catalog{
		{
			Name:        "Tirana",
			Coordinates: domain.Coordinates{Lat: 41.3275, Lng: 19.8187},
			Category:    domain.CategoryCity,
			Signal: &domain.SignalProfile{
				FrequencyMHz: 108.5,
				Mode:         "AUDIO",
				Encryption:   1,
				Intel: map[string]string{
					"en": "Bunker network map partially recovered.",
					"sq": "Harta e rrjetit të bunkerëve pjesërisht e rikuperuar.",
				},
			},
		},
		{
			Name:        "Berat",
			Coordinates: domain.Coordinates{Lat: 40.7050, Lng: 19.9522},
			Category:    domain.CategoryCity,
		},
	}
}

func TestDossierRefusesEmptyItinerary(t *testing.T) {
	req := DossierRequest{MissionName: "Alpha", Weather: WeatherClear}

	if _, err := RenderDossierHTML(req, dossierCatalog()); !errors.Is(err, ErrEmptyItinerary) {
		t.Fatalf("expected ErrEmptyItinerary, got %v", err)
	}
	if _, err := RenderDossierText(req, dossierCatalog()); !errors.Is(err, ErrEmptyItinerary) {
		t.Fatalf("expected ErrEmptyItinerary, got %v", err)
	}
}

func TestDossierTextIncludesTargetsAndUnlockedIntel(t *testing.T) {
	req := DossierRequest{
		MissionName: "Alpha",
		Itinerary:   []string{"Tirana", "Berat"},
		Weather:     WeatherClear,
		ThreatLevel: "DEFCON 4",
		HourOfDay:   10,
		Unlocked:    map[string]bool{"Tirana": true},
		Locale:      "en",
	}

	out, err := RenderDossierText(req, dossierCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "OPERATION ALPHA") {
		t.Errorf("missing mission name: %s", out)
	}
	if !strings.Contains(out, "Tirana") || !strings.Contains(out, "Berat") {
		t.Errorf("missing targets: %s", out)
	}
	if !strings.Contains(out, "Bunker network map") {
		t.Errorf("unlocked intel not included: %s", out)
	}
}

func TestDossierHidesLockedIntel(t *testing.T) {
	req := DossierRequest{
		MissionName: "Alpha",
		Itinerary:   []string{"Tirana"},
		Weather:     WeatherClear,
		HourOfDay:   10,
	}

	out, err := RenderDossierText(req, dossierCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Bunker network map") {
		t.Fatalf("locked intel leaked into dossier: %s", out)
	}
}

func TestDossierHTMLSkipsUnknownPlaces(t *testing.T) {
	req := DossierRequest{
		MissionName: "Alpha",
		Itinerary:   []string{"Tirana", "Ghost"},
		Weather:     WeatherRain,
		HourOfDay:   9,
	}

	out, err := RenderDossierHTML(req, dossierCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Ghost") {
		t.Fatalf("unknown place rendered: %s", out)
	}
	if !strings.Contains(out, "MISSION DOSSIER") {
		t.Fatalf("unexpected html output: %s", out)
	}
}
