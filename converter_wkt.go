package nodectl

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTCorners returns WKT MultiPoint of active left and right corners (ground plane coordinates)
func PrepareWKTCorners(segEnd *SegmentEnd) string {
	mp := orb.MultiPoint{
		segEnd.CachedLeftCornerPos.Planar(),
		segEnd.CachedRightCornerPos.Planar(),
	}
	return wkt.MarshalString(mp)
}

// PrepareWKTCornerEdge returns WKT LineString from left to right active corner
func PrepareWKTCornerEdge(segEnd *SegmentEnd) string {
	line := orb.LineString{
		segEnd.CachedLeftCornerPos.Planar(),
		segEnd.CachedRightCornerPos.Planar(),
	}
	return wkt.MarshalString(line)
}
