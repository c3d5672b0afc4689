package nodectl

import (
	"github.com/pkg/errors"
)

type SegmentID uint32

type NodeID uint32

// SegmentFlags is bitset of segment state reported by the host
type SegmentFlags uint32

const (
	SEGMENT_FLAG_ONEWAY = SegmentFlags(1 << iota)
	SEGMENT_FLAG_BRIDGE
	SEGMENT_FLAG_TUNNEL
	SEGMENT_FLAG_LINK
	SEGMENT_FLAG_NONE = SegmentFlags(0)
)

// Has checks if every bit of flag is set
func (flags SegmentFlags) Has(flag SegmentFlags) bool {
	return flags&flag == flag
}

// SegmentInfo is host-side record of a segment
type SegmentInfo struct {
	Flags           SegmentFlags
	PedestrianLanes int
	CurveRadius     float64
	// CSUR marks roads of the CSUR family which manage their own junction markings
	CSUR bool
}

// NodeInfo is host-side record of a node
type NodeInfo struct {
	FlatJunctions   bool
	MinCornerOffset float64
}

// Host is the simulation engine the segment ends are layered on.
// Every call happens on the host update thread
type Host interface {
	SegmentInfo(segmentID SegmentID) (SegmentInfo, error)
	NodeInfo(nodeID NodeID) (NodeInfo, error)
	IsStartNode(segmentID SegmentID, nodeID NodeID) bool
	// CalculateCorner returns raw corner position and direction. Left and right are taken going away from the junction
	CalculateCorner(segmentID SegmentID, startNode, leftSide bool) (pos, dir Vector3)
	// UpdateNode asks host to rebuild visual representation of the node. Fire-and-forget
	UpdateNode(nodeID NodeID)
}

var (
	ErrSegmentNotFound  = errors.New("segment not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrDegenerateCorner = errors.New("corner direction has no horizontal component")
	ErrSegmentEndExists = errors.New("segment end already exists")
)
