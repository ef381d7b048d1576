// Package geo converts the export's projected coordinates to geographic ones.
package geo

import (
	"math"

	"github.com/wroge/wgs84"
)

// utmZone is the UTM zone covering the Madrid municipality.
const utmZone = 30

// Projector transforms ETRS89 / UTM zone 30N metres (EPSG:25830) into WGS84
// longitude/latitude degrees (EPSG:4326). Axis order is fixed as x,y in and
// lon,lat out so a silent axis swap cannot happen at call sites.
type Projector struct {
	transform wgs84.Func
}

// NewProjector builds the EPSG:25830 → EPSG:4326 transform.
func NewProjector() *Projector {
	return &Projector{
		transform: wgs84.ETRS89UTM(utmZone).To(wgs84.LonLat()),
	}
}

// ToLonLat transforms a single projected pair. Invalid input (NaN or
// non-positive, which the export uses for absent coordinates) yields NaN
// outputs, never an error.
func (p *Projector) ToLonLat(x, y float64) (lon, lat float64) {
	if !validProjected(x, y) {
		return math.NaN(), math.NaN()
	}
	lon, lat, _ = p.transform(x, y, 0)
	return lon, lat
}

// ToLonLatColumns transforms whole coordinate columns at once. Outputs are
// positionally aligned with the inputs; invalid pairs propagate as NaN.
func (p *Projector) ToLonLatColumns(xs, ys []float64) (lons, lats []float64) {
	if len(xs) != len(ys) {
		panic("geo: coordinate columns differ in length")
	}
	lons = make([]float64, len(xs))
	lats = make([]float64, len(ys))
	for i := range xs {
		lons[i], lats[i] = p.ToLonLat(xs[i], ys[i])
	}
	return lons, lats
}

// validProjected rejects NaN and the zero/negative values the export writes
// for unknown locations. Legitimate zone-30 coordinates are always positive.
func validProjected(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return x > 0 && y > 0
}
