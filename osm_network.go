package nodectl

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// OSMNetwork is Host built from OpenStreetMap data: flat ground, X == east, Z == north, Y == up (meters)
type OSMNetwork struct {
	segments   map[SegmentID]*osmSegment
	nodes      map[NodeID]*osmNode
	nodesByOSM map[osm.NodeID]NodeID
	dirty      map[NodeID]struct{}
	verbose    bool

	cornerOffsets CornerOffsetProvider
}

// CornerOffsetProvider gives configured corner offset of a segment end. Returns false when there is none
type CornerOffsetProvider interface {
	CornerOffset(segmentID SegmentID, nodeID NodeID) (float64, bool)
}

// SetCornerOffsets installs source of configured corner offsets. Without it node's min corner offset is used
func (network *OSMNetwork) SetCornerOffsets(provider CornerOffsetProvider) {
	network.cornerOffsets = provider
}

type osmSegment struct {
	ID           SegmentID
	wayID        osm.WayID
	sourceNodeID NodeID
	targetNodeID NodeID
	roadType     RoadType
	lanes        int
	halfWidth    float64
	lengthMeters float64
	geomLocal    orb.LineString // meters
	info         SegmentInfo
}

type osmNode struct {
	ID         NodeID
	osmNodeID  osm.NodeID
	isCrossing bool
	pos        Vector3
	segments   []SegmentID
	info       NodeInfo
}

func (network *OSMNetwork) segment(segmentID SegmentID) (*osmSegment, error) {
	segment, ok := network.segments[segmentID]
	if !ok {
		return nil, errors.Wrapf(ErrSegmentNotFound, "segment %d", segmentID)
	}
	return segment, nil
}

func (network *OSMNetwork) node(nodeID NodeID) (*osmNode, error) {
	node, ok := network.nodes[nodeID]
	if !ok {
		return nil, errors.Wrapf(ErrNodeNotFound, "node %d", nodeID)
	}
	return node, nil
}

func (network *OSMNetwork) SegmentInfo(segmentID SegmentID) (SegmentInfo, error) {
	segment, err := network.segment(segmentID)
	if err != nil {
		return SegmentInfo{}, err
	}
	return segment.info, nil
}

func (network *OSMNetwork) NodeInfo(nodeID NodeID) (NodeInfo, error) {
	node, err := network.node(nodeID)
	if err != nil {
		return NodeInfo{}, err
	}
	return node.info, nil
}

func (network *OSMNetwork) IsStartNode(segmentID SegmentID, nodeID NodeID) bool {
	segment, ok := network.segments[segmentID]
	if !ok {
		return false
	}
	return segment.sourceNodeID == nodeID
}

// CalculateCorner places corner at the segment edge, pushed away from the junction by configured corner offset
// of the segment end (node's min corner offset when not configured).
// Direction points away from the junction
func (network *OSMNetwork) CalculateCorner(segmentID SegmentID, startNode, leftSide bool) (Vector3, Vector3) {
	segment, ok := network.segments[segmentID]
	if !ok || len(segment.geomLocal) < 2 {
		return VectorZero, VectorZero
	}
	var p, q orb.Point
	nodeID := segment.targetNodeID
	if startNode {
		nodeID = segment.sourceNodeID
		p, q = segment.geomLocal[0], segment.geomLocal[1]
	} else {
		p, q = segment.geomLocal[len(segment.geomLocal)-1], segment.geomLocal[len(segment.geomLocal)-2]
	}
	forward := directionFrom(p, q)
	lateral := VectorUp.Cross(forward).Normalized()
	if leftSide {
		lateral = lateral.Neg()
	}
	offset := 0.0
	if node, ok := network.nodes[nodeID]; ok {
		offset = node.info.MinCornerOffset
	}
	if network.cornerOffsets != nil {
		if configured, ok := network.cornerOffsets.CornerOffset(segmentID, nodeID); ok {
			offset = configured
		}
	}
	pos := pointToVector(p).Add(forward.Scale(offset)).Add(lateral.Scale(segment.halfWidth))
	return pos, forward
}

// UpdateNode marks node as dirty. See TakeDirty
func (network *OSMNetwork) UpdateNode(nodeID NodeID) {
	if network.verbose {
		fmt.Printf("Node %d has been updated\n", nodeID)
	}
	network.dirty[nodeID] = struct{}{}
}

// TakeDirty returns nodes updated since previous call (sorted) and resets the set
func (network *OSMNetwork) TakeDirty() []NodeID {
	ret := make([]NodeID, 0, len(network.dirty))
	for nodeID := range network.dirty {
		ret = append(ret, nodeID)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	network.dirty = make(map[NodeID]struct{})
	return ret
}

// Nodes returns every node ID in ascending order
func (network *OSMNetwork) Nodes() []NodeID {
	ret := make([]NodeID, 0, len(network.nodes))
	for nodeID := range network.nodes {
		ret = append(ret, nodeID)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	return ret
}

// Segments returns segments attached to the node
func (network *OSMNetwork) Segments(nodeID NodeID) []SegmentID {
	node, ok := network.nodes[nodeID]
	if !ok {
		return nil
	}
	ret := make([]SegmentID, len(node.segments))
	copy(ret, node.segments)
	return ret
}

func (network *OSMNetwork) SegmentsNum() int {
	return len(network.segments)
}

// SegmentLength returns length of the segment in meters
func (network *OSMNetwork) SegmentLength(segmentID SegmentID) float64 {
	segment, ok := network.segments[segmentID]
	if !ok {
		return 0
	}
	return segment.lengthMeters
}

// NodeByOSM returns node ID for given OSM node
func (network *OSMNetwork) NodeByOSM(osmNodeID osm.NodeID) (NodeID, bool) {
	nodeID, ok := network.nodesByOSM[osmNodeID]
	return nodeID, ok
}

// NodePosition returns position of the node in the world frame
func (network *OSMNetwork) NodePosition(nodeID NodeID) (Vector3, bool) {
	node, ok := network.nodes[nodeID]
	if !ok {
		return VectorZero, false
	}
	return node.pos, true
}

// NodePolicies classifies every node by its segments number
func (network *OSMNetwork) NodePolicies() NodePolicies {
	policies := make(NodePolicies, len(network.nodes))
	for nodeID, node := range network.nodes {
		policies[nodeID] = &NodePolicy{Type: DefaultNodeType(len(node.segments), node.isCrossing)}
	}
	return policies
}

// prepareNodesInfo evaluates node defaults once all segments are known
func (network *OSMNetwork) prepareNodesInfo() {
	for _, node := range network.nodes {
		flat := true
		widest := 0.0
		for _, segmentID := range node.segments {
			segment := network.segments[segmentID]
			if segment.info.Flags.Has(SEGMENT_FLAG_BRIDGE) || segment.info.Flags.Has(SEGMENT_FLAG_TUNNEL) {
				flat = false
			}
			if segment.halfWidth > widest {
				widest = segment.halfWidth
			}
		}
		node.info.FlatJunctions = flat
		// Plain continuation of a road needs no room for junction
		if len(node.segments) > 2 {
			node.info.MinCornerOffset = widest
		}
	}
}
