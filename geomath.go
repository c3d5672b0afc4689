package nodectl

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	pi180 = math.Pi / 180.0
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// calcRadiusCurvature returns mean radius of curvature for given planar line (same units as line).
// Collinear triples are skipped; straight line gives 0
func calcRadiusCurvature(line orb.LineString) float64 {
	var rs float64
	n := 0
	for i := 1; i < len(line)-1; i++ {
		a := planar.Distance(line[i-1], line[i])
		b := planar.Distance(line[i], line[i+1])
		c := planar.Distance(line[i-1], line[i+1])
		p := (a + b + c) / 2
		s := math.Sqrt(math.Max(p*(p-a)*(p-b)*(p-c), 0))
		if s < 1e-9 {
			continue
		}
		rs += (a * b * c) / (4 * s)
		n++
	}
	if n == 0 {
		return 0
	}
	return rs / float64(n)
}

// directionFrom returns unit ground plane direction from p towards q as world vector
func directionFrom(p, q orb.Point) Vector3 {
	return Vector3{X: q.X() - p.X(), Y: 0, Z: q.Y() - p.Y()}.Normalized()
}
