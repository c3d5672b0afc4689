package nodectl

import (
	"github.com/pkg/errors"
)

type cornerKey struct {
	segmentID SegmentID
	startNode bool
	leftSide  bool
}

type cornerValue struct {
	pos Vector3
	dir Vector3
}

// fakeHost is in-memory Host for tests
type fakeHost struct {
	segments   map[SegmentID]SegmentInfo
	nodes      map[NodeID]NodeInfo
	startNodes map[SegmentID]NodeID
	corners    map[cornerKey]cornerValue
	updates    []NodeID
}

// newFakeHost prepares:
//	segment 1: node 10 (start) -> node 20, regular road
//	segment 2: node 10 (start) -> node 30, CSUR road
//	segment 3: node 10 (start) -> node 40, vertical corner direction at node 10
func newFakeHost() *fakeHost {
	host := &fakeHost{
		segments: map[SegmentID]SegmentInfo{
			1: {Flags: SEGMENT_FLAG_ONEWAY, PedestrianLanes: 2, CurveRadius: 120},
			2: {CSUR: true},
			3: {},
		},
		nodes: map[NodeID]NodeInfo{
			10: {FlatJunctions: true, MinCornerOffset: 2},
			20: {FlatJunctions: false, MinCornerOffset: 3},
			30: {FlatJunctions: true},
			40: {FlatJunctions: true},
		},
		startNodes: map[SegmentID]NodeID{
			1: 10,
			2: 10,
			3: 10,
		},
		corners: make(map[cornerKey]cornerValue),
	}
	host.setCorner(1, true, true, Vector3{X: 10, Y: 0, Z: 10}, Vector3{X: 0.6, Y: 0, Z: 0.8})
	host.setCorner(1, true, false, Vector3{X: 20, Y: 0, Z: 5}, Vector3{X: 0.6, Y: 0, Z: 0.8})
	host.setCorner(1, false, true, Vector3{X: 50, Y: 1, Z: 60}, Vector3{X: -0.6, Y: 0.1, Z: -0.8})
	host.setCorner(1, false, false, Vector3{X: 40, Y: 1, Z: 65}, Vector3{X: -0.6, Y: 0.1, Z: -0.8})
	host.setCorner(2, true, true, Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 0, Y: 0, Z: 1})
	host.setCorner(2, true, false, Vector3{X: 4, Y: 0, Z: 0}, Vector3{X: 0, Y: 0, Z: 1})
	host.setCorner(3, true, true, Vector3{X: 1, Y: 2, Z: 3}, Vector3{X: 0, Y: 1, Z: 0})
	host.setCorner(3, true, false, Vector3{X: 3, Y: 2, Z: 1}, Vector3{X: 0, Y: 1, Z: 0})
	return host
}

func (host *fakeHost) setCorner(segmentID SegmentID, startNode, leftSide bool, pos, dir Vector3) {
	host.corners[cornerKey{segmentID: segmentID, startNode: startNode, leftSide: leftSide}] = cornerValue{pos: pos, dir: dir}
}

func (host *fakeHost) SegmentInfo(segmentID SegmentID) (SegmentInfo, error) {
	info, ok := host.segments[segmentID]
	if !ok {
		return SegmentInfo{}, errors.Wrapf(ErrSegmentNotFound, "segment %d", segmentID)
	}
	return info, nil
}

func (host *fakeHost) NodeInfo(nodeID NodeID) (NodeInfo, error) {
	info, ok := host.nodes[nodeID]
	if !ok {
		return NodeInfo{}, errors.Wrapf(ErrNodeNotFound, "node %d", nodeID)
	}
	return info, nil
}

func (host *fakeHost) IsStartNode(segmentID SegmentID, nodeID NodeID) bool {
	return host.startNodes[segmentID] == nodeID
}

func (host *fakeHost) CalculateCorner(segmentID SegmentID, startNode, leftSide bool) (Vector3, Vector3) {
	corner := host.corners[cornerKey{segmentID: segmentID, startNode: startNode, leftSide: leftSide}]
	return corner.pos, corner.dir
}

func (host *fakeHost) UpdateNode(nodeID NodeID) {
	host.updates = append(host.updates, nodeID)
}

func policiesOf(nodeType NodeType) NodePolicies {
	return NodePolicies{
		10: &NodePolicy{Type: nodeType},
		20: &NodePolicy{Type: nodeType},
		30: &NodePolicy{Type: nodeType},
		40: &NodePolicy{Type: nodeType},
	}
}
