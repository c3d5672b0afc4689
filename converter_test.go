package nodectl

import (
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func TestPrepareWKTCorners(t *testing.T) {
	segEnd := mustSegmentEnd(t, newFakeHost(), policiesOf(NODE_CUSTOM), 2, 10)
	corners := PrepareWKTCorners(segEnd)
	if !strings.HasPrefix(corners, "MULTIPOINT") || !strings.Contains(corners, "4 0") {
		t.Errorf("Unexpected corners WKT: '%s'", corners)
	}
	edge := PrepareWKTCornerEdge(segEnd)
	correctEdge := "LINESTRING(0 0,4 0)"
	if edge != correctEdge {
		t.Errorf("Corner edge should be '%s', but got '%s'", correctEdge, edge)
	}
}

func TestPrepareGeoJSONCorners(t *testing.T) {
	host := newFakeHost()
	segEnds := []*SegmentEnd{
		mustSegmentEnd(t, host, policiesOf(NODE_CUSTOM), 1, 10),
		mustSegmentEnd(t, host, policiesOf(NODE_CUSTOM), 2, 10),
	}
	segEnds[1].NoMarkings = true
	fc, err := geojson.UnmarshalFeatureCollection([]byte(PrepareGeoJSONCorners(segEnds)))
	if err != nil {
		t.Error(err)
		return
	}
	if len(fc.Features) != 4 {
		t.Errorf("Collection should have 4 features, but got %d", len(fc.Features))
		return
	}
	left := fc.Features[2]
	if !left.Geometry.IsPoint() {
		t.Errorf("Corner must be a point")
	}
	if side, _ := left.PropertyString("side"); side != SIDE_LEFT.String() {
		t.Errorf("Feature should describe '%s' corner, but got '%s'", SIDE_LEFT, side)
	}
	if isDefault, _ := left.PropertyBool("is_default"); isDefault {
		t.Errorf("Segment end without markings is not default")
	}
	if segmentID, _ := left.PropertyInt("segment_id"); segmentID != 2 {
		t.Errorf("Feature should belong to segment 2, but got %d", segmentID)
	}
}

func TestSegmentsGeoJSON(t *testing.T) {
	network := loadCross(t)
	fc := network.SegmentsGeoJSON()
	if len(fc.Features) != network.SegmentsNum() {
		t.Errorf("Collection should have %d features, but got %d", network.SegmentsNum(), len(fc.Features))
	}
	for _, feature := range fc.Features {
		if !feature.Geometry.IsLineString() {
			t.Errorf("Segment must be a linestring")
		}
	}
}
