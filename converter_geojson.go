package nodectl

import (
	"fmt"
	"sort"

	geojson "github.com/paulmach/go.geojson"
)

// CornersGeoJSON returns FeatureCollection with active corners of given segment ends (ground plane coordinates)
func CornersGeoJSON(segEnds []*SegmentEnd) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, segEnd := range segEnds {
		fc.AddFeature(cornerFeature(segEnd, SIDE_LEFT, segEnd.CachedLeftCornerPos, segEnd.CachedLeftCornerDir))
		fc.AddFeature(cornerFeature(segEnd, SIDE_RIGHT, segEnd.CachedRightCornerPos, segEnd.CachedRightCornerDir))
	}
	return fc
}

func cornerFeature(segEnd *SegmentEnd, side CornerSide, pos, dir Vector3) *geojson.Feature {
	pt := pos.Planar()
	feature := geojson.NewPointFeature([]float64{pt.X(), pt.Y()})
	feature.SetProperty("segment_id", segEnd.SegmentID)
	feature.SetProperty("node_id", segEnd.NodeID)
	feature.SetProperty("side", side.String())
	feature.SetProperty("height", pos.Y)
	feature.SetProperty("dir", []float64{dir.X, dir.Y, dir.Z})
	feature.SetProperty("is_default", segEnd.IsDefault())
	return feature
}

// PrepareGeoJSONCorners returns GeoJSON representation of corners
func PrepareGeoJSONCorners(segEnds []*SegmentEnd) string {
	b, err := CornersGeoJSON(segEnds).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert corners to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// SegmentsGeoJSON returns FeatureCollection with segments of the network (ground plane coordinates)
func (network *OSMNetwork) SegmentsGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	ids := make([]SegmentID, 0, len(network.segments))
	for segmentID := range network.segments {
		ids = append(ids, segmentID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	for _, segmentID := range ids {
		segment := network.segments[segmentID]
		pts := make([][]float64, len(segment.geomLocal))
		for i, pt := range segment.geomLocal {
			pts[i] = []float64{pt.X(), pt.Y()}
		}
		feature := geojson.NewLineStringFeature(pts)
		feature.SetProperty("segment_id", segment.ID)
		feature.SetProperty("osm_way_id", int64(segment.wayID))
		feature.SetProperty("source_node", segment.sourceNodeID)
		feature.SetProperty("target_node", segment.targetNodeID)
		feature.SetProperty("road_type", segment.roadType.String())
		feature.SetProperty("lanes", segment.lanes)
		feature.SetProperty("length_meters", segment.lengthMeters)
		fc.AddFeature(feature)
	}
	return fc
}
