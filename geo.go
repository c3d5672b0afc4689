package nodectl

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthR = 20037508.34
)

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

// localProjection maps lon/lat to meters around the origin.
// Mercator coordinates are shifted to the origin and scaled back by cos(lat) of the origin
type localProjection struct {
	originX float64
	originY float64
	scale   float64
}

func newLocalProjection(origin orb.Point) localProjection {
	x, y := epsg4326To3857(origin.Lon(), origin.Lat())
	return localProjection{
		originX: x,
		originY: y,
		scale:   math.Cos(degreesToRadians(origin.Lat())),
	}
}

// project returns ground plane point: X == east, Y == north (meters)
func (proj localProjection) project(pt orb.Point) orb.Point {
	x, y := epsg4326To3857(pt.Lon(), pt.Lat())
	return orb.Point{(x - proj.originX) * proj.scale, (y - proj.originY) * proj.scale}
}

func (proj localProjection) projectLine(line orb.LineString) orb.LineString {
	newLine := make(orb.LineString, len(line))
	for i, pt := range line {
		newLine[i] = proj.project(pt)
	}
	return newLine
}

// pointToVector lifts ground plane point into the world frame (Y is up)
func pointToVector(pt orb.Point) Vector3 {
	return Vector3{X: pt.X(), Y: 0, Z: pt.Y()}
}
