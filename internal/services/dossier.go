package services

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"recon-planner-service/internal/domain"
)

// ErrEmptyItinerary is returned when a dossier is requested for a mission
// with no targets. Callers decline gracefully instead of emitting an empty
// document.
var ErrEmptyItinerary = errors.New("dossier: itinerary is empty")

// DossierRequest carries everything needed to render a mission briefing.
type DossierRequest struct {
	MissionName string
	Itinerary   []string
	Weather     WeatherState
	ThreatLevel string
	HourOfDay   int
	Unlocked    map[string]bool
	Locale      string
}

type dossierRow struct {
	Seq       int
	Name      string
	Lat       float64
	Lng       float64
	RiskScore float64
	RiskLabel string
	Intel     string
}

type dossierData struct {
	MissionName string
	Ref         string
	Date        string
	ThreatLevel string
	Weather     WeatherState
	TargetCount int
	Rows        []dossierRow
}

var dossierTmpl = template.Must(template.New("dossier").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>MISSION DOSSIER: {{.MissionName}}</title>
<style>
body { font-family: 'Courier New', monospace; background: #f0f0f0; color: #333; padding: 40px; }
.header { border-bottom: 2px solid #000; padding-bottom: 20px; margin-bottom: 40px; }
.section { margin-bottom: 30px; background: #fff; padding: 20px; border: 1px solid #ccc; }
h2 { background: #333; color: #fff; padding: 10px; font-size: 1.2rem; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 10px; border-bottom: 1px solid #eee; }
.intel-box { background: #eee; padding: 10px; margin-top: 5px; font-style: italic; }
</style>
</head>
<body>
<div class="header">
<div><strong>S.T.R.A.T.C.O.M.</strong> ALBANIA DIVISION</div>
<div><strong>REF:</strong> {{.Ref}} | <strong>DATE:</strong> {{.Date}} | <strong>THREAT LEVEL:</strong> {{.ThreatLevel}} | <strong>WEATHER:</strong> {{.Weather}}</div>
</div>
<h1>OPERATION: {{.MissionName}}</h1>
<div class="section">
<h2>MISSION SUMMARY</h2>
<p><strong>OBJECTIVE:</strong> Execute reconnaissance and intelligence gathering across {{.TargetCount}} designated sectors.</p>
</div>
<div class="section">
<h2>TACTICAL ITINERARY</h2>
<table>
<thead><tr><th>SEQ</th><th>TARGET</th><th>COORDINATES</th><th>RISK ASSESSMENT</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Seq}}</td><td>{{.Name}}</td><td>{{printf "%.4f" .Lat}}, {{printf "%.4f" .Lng}}</td><td>{{.RiskLabel}} ({{printf "%.2f" .RiskScore}})</td></tr>
{{end}}</tbody>
</table>
</div>
<div class="section">
<h2>INTELLIGENCE ANNEX</h2>
{{range .Rows}}{{if .Intel}}<p><strong>{{.Name}}</strong></p><div class="intel-box">{{.Intel}}</div>
{{end}}{{end}}</div>
</body>
</html>
`))

// RenderDossierHTML produces the self-contained HTML mission briefing.
func RenderDossierHTML(req DossierRequest, catalog domain.Catalog) (string, error) {
	data, err := buildDossier(req, catalog)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := dossierTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("dossier: render html: %w", err)
	}
	return b.String(), nil
}

// RenderDossierText produces a plain-text rendering of the same briefing.
func RenderDossierText(req DossierRequest, catalog domain.Catalog) (string, error) {
	data, err := buildDossier(req, catalog)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MISSION DOSSIER: OPERATION %s\n", data.MissionName)
	fmt.Fprintf(&b, "REF %s | DATE %s | THREAT %s | WEATHER %s\n\n",
		data.Ref, data.Date, data.ThreatLevel, data.Weather)
	fmt.Fprintf(&b, "OBJECTIVE: reconnaissance across %d designated sectors\n\n", data.TargetCount)

	for _, row := range data.Rows {
		fmt.Fprintf(&b, "%2d. %-24s %9.4f,%9.4f  %s (%.2f)\n",
			row.Seq, row.Name, row.Lat, row.Lng, row.RiskLabel, row.RiskScore)
		if row.Intel != "" {
			fmt.Fprintf(&b, "    INTEL: %s\n", row.Intel)
		}
	}

	return b.String(), nil
}

func buildDossier(req DossierRequest, catalog domain.Catalog) (dossierData, error) {
	if len(req.Itinerary) == 0 {
		return dossierData{}, ErrEmptyItinerary
	}

	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	rows := make([]dossierRow, 0, len(req.Itinerary))
	for _, name := range req.Itinerary {
		place := catalog.Find(name)
		if place == nil {
			continue
		}

		score := SegmentRisk(req.Weather, place, req.HourOfDay)
		row := dossierRow{
			Seq:       len(rows) + 1,
			Name:      place.Name,
			Lat:       place.Coordinates.Lat,
			Lng:       place.Coordinates.Lng,
			RiskScore: score,
			RiskLabel: RiskLabel(score),
		}

		// Intel only appears for signals the operator has already decrypted.
		if place.Signal != nil && req.Unlocked[place.Name] {
			if text, ok := place.Signal.Intel[locale]; ok {
				row.Intel = text
			} else {
				row.Intel = place.Signal.Intel["en"]
			}
		}

		rows = append(rows, row)
	}

	now := time.Now()
	return dossierData{
		MissionName: strings.ToUpper(req.MissionName),
		Ref:         strings.ToUpper(fmt.Sprintf("%x", now.Unix())),
		Date:        now.Format("2006-01-02"),
		ThreatLevel: req.ThreatLevel,
		Weather:     req.Weather,
		TargetCount: len(rows),
		Rows:        rows,
	}, nil
}
