// Package views holds the chart aggregators. Each is a pure function from
// the prepared table plus filter parameters to a derived structure; none
// mutates the table, and a selection matching nothing is a normal empty
// result, never an error.
package views

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"

	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/domain"
)

// Scenario selects which accident subset the density map shows.
type Scenario string

const (
	// ScenarioAll shows every located record.
	ScenarioAll Scenario = "all"
	// ScenarioSevere restricts to admissions above 24 hours and deaths.
	ScenarioSevere Scenario = "severe"
	// ScenarioPedestrian restricts to pedestrian rows.
	ScenarioPedestrian Scenario = "pedestrian"
)

// ParseScenario validates a scenario selector value.
func ParseScenario(s string) (Scenario, error) {
	switch Scenario(s) {
	case ScenarioAll, ScenarioSevere, ScenarioPedestrian:
		return Scenario(s), nil
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

// SpatialResult is the point set feeding the density map. Empty marks a
// filter combination that matched nothing, so the caller can render a
// "no data" notice instead of a blank map.
type SpatialResult struct {
	Empty  bool                       `json:"empty"`
	Count  int                        `json:"count"`
	Points *geojson.FeatureCollection `json:"points"`
}

// SpatialDensity returns the (lon, lat) points of records at the selected
// hour of day under the given scenario. Records without derived geographic
// coordinates are excluded.
func SpatialDensity(t *dataset.Table, hour int, scenario Scenario) SpatialResult {
	fc := geojson.NewFeatureCollection()
	count := 0

	for _, r := range t.Records() {
		if r.Hour != hour || !r.HasCoordinates() {
			continue
		}
		switch scenario {
		case ScenarioSevere:
			if !r.Severity.SevereOrFatal() {
				continue
			}
		case ScenarioPedestrian:
			if r.PersonRole != domain.RolePedestrian {
				continue
			}
		}
		fc.AddFeature(geojson.NewPointFeature([]float64{r.Lon, r.Lat}))
		count++
	}

	return SpatialResult{
		Empty:  count == 0,
		Count:  count,
		Points: fc,
	}
}
