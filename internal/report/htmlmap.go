package report

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// ErrNoSitesToPlot is returned when a map is requested for an empty batch.
// An empty map is useless and usually means the wrong input file.
var ErrNoSitesToPlot = errors.New("no sites to plot")

// HTMLMapWriter renders the batch as a self-contained Leaflet map page.
// Markers are colored by carrier; suspected simulators are drawn in black
// with their reasons listed in the popup.
//
// Design decision: We emit a standalone HTML file with Leaflet loaded from a
// CDN rather than serving the map from an embedded web server. The output is
// a shareable artifact: an analyst can archive it next to the survey file or
// send it to someone with no tooling installed.
type HTMLMapWriter struct {
	baseWriter

	// colors maps carrier names to marker colors.
	colors config.CarrierColors

	// zoom is the initial map zoom level.
	zoom int
}

// HTMLMapWriterOption configures an HTMLMapWriter.
type HTMLMapWriterOption func(*HTMLMapWriter)

// WithCarrierColors sets the carrier color scheme for markers.
func WithCarrierColors(colors config.CarrierColors) HTMLMapWriterOption {
	return func(w *HTMLMapWriter) {
		w.colors = colors
	}
}

// WithZoom sets the initial zoom level. Default is 13, which frames a
// neighborhood-scale survey.
func WithZoom(zoom int) HTMLMapWriterOption {
	return func(w *HTMLMapWriter) {
		w.zoom = zoom
	}
}

// NewHTMLMapWriter creates an HTMLMapWriter that outputs to the given writer.
func NewHTMLMapWriter(output io.Writer, opts ...HTMLMapWriterOption) *HTMLMapWriter {
	w := &HTMLMapWriter{
		baseWriter: newBaseWriter(output),
		colors:     config.DefaultCarrierColors(),
		zoom:       13,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// mapMarker is the template model for one observation marker.
type mapMarker struct {
	Lat       float64
	Lon       float64
	Color     string
	Tooltip   string
	PopupHTML template.HTML
	Suspected bool
}

// legendEntry is the template model for one legend row.
type legendEntry struct {
	Label string
	Color string
}

// mapPage is the template model for the whole map document.
type mapPage struct {
	Title     string
	CenterLat float64
	CenterLon float64
	Zoom      int
	Markers   []mapMarker
	Legend    []legendEntry
}

// Write renders the full report as a Leaflet map.
func (w *HTMLMapWriter) Write(report *model.ScanReport) (int, error) {
	if len(report.Sites) == 0 {
		return 0, ErrNoSitesToPlot
	}

	var centerLat, centerLon float64
	for i := range report.Sites {
		centerLat += report.Sites[i].Lat
		centerLon += report.Sites[i].Lon
	}
	centerLat /= float64(len(report.Sites))
	centerLon /= float64(len(report.Sites))

	page := mapPage{
		Title:     "StingRayCatcher - " + report.Source,
		CenterLat: centerLat,
		CenterLon: centerLon,
		Zoom:      w.zoom,
		Markers:   w.buildMarkers(report),
		Legend:    w.buildLegend(),
	}

	var sb strings.Builder
	if err := mapTemplate.Execute(&sb, page); err != nil {
		return 0, fmt.Errorf("render map: %w", err)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary is not meaningful for a map: without per-site coordinates
// there is nothing to plot.
func (w *HTMLMapWriter) WriteSummary(_ *model.Summary) (int, error) {
	return 0, ErrNoSitesToPlot
}

// buildMarkers converts observations into template marker models.
func (w *HTMLMapWriter) buildMarkers(report *model.ScanReport) []mapMarker {
	markers := make([]mapMarker, 0, len(report.Sites))
	for i := range report.Sites {
		site := &report.Sites[i]

		color := w.colors.ColorFor(site.Operator)
		tooltip := formatOperator(site.Operator)
		if site.SuspectedSimulator {
			color = "black"
			tooltip += " (SIMULATOR?)"
		}

		markers = append(markers, mapMarker{
			Lat:       site.Lat,
			Lon:       site.Lon,
			Color:     color,
			Tooltip:   tooltip,
			PopupHTML: popupHTML(site),
			Suspected: site.SuspectedSimulator,
		})
	}
	return markers
}

// buildLegend builds legend rows from the color scheme plus the fixed
// suspected-simulator entry.
func (w *HTMLMapWriter) buildLegend() []legendEntry {
	// Fixed order so the legend is stable across runs.
	known := []string{"AT&T", "Verizon", "T-Mobile", "US Cellular"}

	legend := make([]legendEntry, 0, len(known)+1)
	seen := make(map[string]bool, len(known))
	for _, name := range known {
		if color, ok := w.colors[name]; ok {
			legend = append(legend, legendEntry{Label: name, Color: color})
			seen[name] = true
		}
	}
	for name, color := range w.colors {
		if !seen[name] {
			legend = append(legend, legendEntry{Label: name, Color: color})
		}
	}

	return append(legend, legendEntry{Label: "Suspected Simulator", Color: "black"})
}

// popupHTML renders the popup body for one observation: every present field,
// then the suspicion reasons.
func popupHTML(site *model.CellSite) template.HTML {
	var sb strings.Builder

	row := func(label, value string) {
		sb.WriteString("<b>")
		sb.WriteString(template.HTMLEscapeString(label))
		sb.WriteString(":</b> ")
		sb.WriteString(template.HTMLEscapeString(value))
		sb.WriteString("<br>")
	}

	row("lat", fmt.Sprintf("%.6f", site.Lat))
	row("lon", fmt.Sprintf("%.6f", site.Lon))
	if site.Operator != "" {
		row("operator", site.Operator)
	}
	if site.MCC != nil {
		row("mcc", formatIntPtr(site.MCC))
	}
	if site.MNC != nil {
		row("mnc", formatIntPtr(site.MNC))
	}
	if site.LAC != nil {
		row("lac", formatIntPtr(site.LAC))
	}
	if site.TAC != nil {
		row("tac", formatIntPtr(site.TAC))
	}
	if site.CID != nil {
		row("cid", formatInt64Ptr(site.CID))
	}
	if site.PCI != nil {
		row("pci", formatIntPtr(site.PCI))
	}
	if site.ARFCN != nil {
		row("arfcn", formatIntPtr(site.ARFCN))
	}
	if site.Band != "" {
		row("band", site.Band)
	}
	if site.RSRP != nil {
		row("rsrp", formatFloatPtr(site.RSRP))
	}
	if site.RSRQ != nil {
		row("rsrq", formatFloatPtr(site.RSRQ))
	}
	if site.RSSI != nil {
		row("rssi", formatFloatPtr(site.RSSI))
	}
	if site.Timestamp != "" {
		row("timestamp", site.Timestamp)
	}

	if site.SuspectedSimulator {
		sb.WriteString("<b>SUSPECTED SIMULATOR</b><br>")
		for _, reason := range site.Reasons {
			sb.WriteString("&bull; ")
			sb.WriteString(template.HTMLEscapeString(reason.Message))
			sb.WriteString("<br>")
		}
	}

	return template.HTML(sb.String()) //nolint:gosec // every value is escaped above
}

// mapTemplate is the standalone Leaflet page. CircleMarkers are used instead
// of icon markers so carrier colors need no icon assets.
var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend {
    position: fixed; bottom: 50px; left: 50px; z-index: 9999;
    background: white; padding: 10px; border: 1px solid #444;
    font: 14px/1.4 sans-serif;
  }
</style>
</head>
<body>
<div id="map"></div>
<div class="legend">
  <b>Legend</b><br>
{{- range .Legend}}
  <span style="color: {{.Color}};">&#9632;</span> {{.Label}}<br>
{{- end}}
</div>
<script>
  var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 19,
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);
{{range .Markers}}
  L.circleMarker([{{.Lat}}, {{.Lon}}], {
    radius: {{if .Suspected}}10{{else}}7{{end}},
    color: {{.Color}},
    fillColor: {{.Color}},
    fillOpacity: 0.8
  }).addTo(map)
    .bindTooltip({{.Tooltip}})
    .bindPopup({{.PopupHTML}});
{{end}}
</script>
</body>
</html>
`))
