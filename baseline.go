package nodectl

import (
	"github.com/pkg/errors"
)

// Baseline is recomputed state of a segment end. It is never edited by user and never persisted
type Baseline struct {
	DefaultCornerOffset  float64
	DefaultFlatJunctions bool
	DefaultFlags         SegmentFlags
	HasPedestrianLanes   bool
	PedestrianLaneCount  int
	CurveRadius0         float64
	CSUR                 bool

	// Raw corner geometry before user deltas. Left and right is when you go away from junction
	LeftCornerPos0  Vector3
	LeftCornerDir0  Vector3
	RightCornerPos0 Vector3
	RightCornerDir0 Vector3
}

// Config is user-editable state of a segment end
type Config struct {
	CornerOffset      float64
	FlatJunctions     bool
	NoCrossings       bool
	NoMarkings        bool
	NoJunctionTexture bool
	// NoJunctionProps excludes traffic lights, see NoTLProps
	NoJunctionProps bool
	NoTLProps       bool

	// Deltas are in corner-local frame: (lateral outwards, up, forward away from junction)
	DeltaLeftCornerPos  Vector3
	DeltaLeftCornerDir  Vector3
	DeltaRightCornerPos Vector3
	DeltaRightCornerDir Vector3
}

// computeBaseline queries host for defaults and raw corners of given segment end
func computeBaseline(host Host, segmentID SegmentID, nodeID NodeID) (Baseline, error) {
	segment, err := host.SegmentInfo(segmentID)
	if err != nil {
		return Baseline{}, errors.Wrapf(err, "Can't get segment %d", segmentID)
	}
	node, err := host.NodeInfo(nodeID)
	if err != nil {
		return Baseline{}, errors.Wrapf(err, "Can't get node %d", nodeID)
	}
	startNode := host.IsStartNode(segmentID, nodeID)
	lpos, ldir := host.CalculateCorner(segmentID, startNode, true)
	rpos, rdir := host.CalculateCorner(segmentID, startNode, false)
	return Baseline{
		DefaultCornerOffset:  node.MinCornerOffset,
		DefaultFlatJunctions: node.FlatJunctions,
		DefaultFlags:         segment.Flags,
		HasPedestrianLanes:   segment.PedestrianLanes > 0,
		PedestrianLaneCount:  segment.PedestrianLanes,
		CurveRadius0:         segment.CurveRadius,
		CSUR:                 segment.CSUR,
		LeftCornerPos0:       lpos,
		LeftCornerDir0:       ldir,
		RightCornerPos0:      rpos,
		RightCornerDir0:      rdir,
	}, nil
}

// DefaultConfig returns configuration which does not modify anything
func (baseline *Baseline) DefaultConfig() Config {
	return Config{
		CornerOffset:  baseline.DefaultCornerOffset,
		FlatJunctions: baseline.DefaultFlatJunctions,
	}
}

// ClampConfig forces attributes which policy does not allow to change back to defaults
func ClampConfig(baseline Baseline, config Config, policy Policy) Config {
	if policy == nil {
		policy = NoPolicy{}
	}
	if !policy.CanModifyOffset() {
		config.CornerOffset = baseline.DefaultCornerOffset
	}
	if !policy.CanModifyFlatJunctions() {
		config.FlatJunctions = baseline.DefaultFlatJunctions
	}
	return config
}
