package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLonLat_KnownPoint(t *testing.T) {
	// (440000, 4474000) in EPSG:25830 sits a few hundred metres from
	// Puerta del Sol (40.4168 N, 3.7038 W).
	p := NewProjector()
	lon, lat := p.ToLonLat(440000, 4474000)

	assert.InDelta(t, -3.7038, lon, 0.01)
	assert.InDelta(t, 40.4168, lat, 0.01)
}

func TestToLonLat_AxisOrder(t *testing.T) {
	// Moving east must raise longitude, moving north must raise latitude.
	p := NewProjector()
	lon1, lat1 := p.ToLonLat(440000, 4474000)
	lon2, _ := p.ToLonLat(441000, 4474000)
	_, lat3 := p.ToLonLat(440000, 4475000)

	assert.Greater(t, lon2, lon1)
	assert.Greater(t, lat3, lat1)
}

func TestToLonLat_InvalidInputs(t *testing.T) {
	p := NewProjector()

	tests := []struct {
		name string
		x, y float64
	}{
		{"NaN x", math.NaN(), 4474000},
		{"NaN y", 440000, math.NaN()},
		{"both NaN", math.NaN(), math.NaN()},
		{"zero pair", 0, 0},
		{"negative easting", -440000, 4474000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lon, lat := p.ToLonLat(tt.x, tt.y)
			assert.True(t, math.IsNaN(lon))
			assert.True(t, math.IsNaN(lat))
		})
	}
}

func TestToLonLatColumns(t *testing.T) {
	p := NewProjector()

	xs := []float64{440000, math.NaN(), 441000}
	ys := []float64{4474000, 4474000, math.NaN()}
	lons, lats := p.ToLonLatColumns(xs, ys)

	assert.Len(t, lons, 3)
	assert.Len(t, lats, 3)

	// Valid pair transforms, invalid pairs propagate NaN positionally.
	assert.InDelta(t, 40.4168, lats[0], 0.01)
	assert.True(t, math.IsNaN(lons[1]))
	assert.True(t, math.IsNaN(lats[1]))
	assert.True(t, math.IsNaN(lons[2]))
	assert.True(t, math.IsNaN(lats[2]))
}

func TestToLonLatColumns_LengthMismatch(t *testing.T) {
	p := NewProjector()
	assert.Panics(t, func() {
		p.ToLonLatColumns([]float64{1, 2}, []float64{1})
	})
}

func TestToLonLatColumns_Empty(t *testing.T) {
	p := NewProjector()
	lons, lats := p.ToLonLatColumns(nil, nil)
	assert.Empty(t, lons)
	assert.Empty(t, lats)
}
