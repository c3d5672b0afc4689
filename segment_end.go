package nodectl

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// SegmentEnd is junction-facing end of one segment at one node: cached corner geometry plus user adjustments
type SegmentEnd struct {
	// intrinsic
	SegmentID SegmentID
	NodeID    NodeID

	Baseline
	Config

	// Active corners with user deltas applied. Left and right is when you go away from junction
	CachedLeftCornerPos  Vector3
	CachedLeftCornerDir  Vector3
	CachedRightCornerPos Vector3
	CachedRightCornerDir Vector3

	host     Host
	policies PolicyProvider
	settings Settings
}

// NewSegmentEnd creates segment end, computes its baseline and seeds configuration with defaults
func NewSegmentEnd(host Host, policies PolicyProvider, segmentID SegmentID, nodeID NodeID, options ...func(*Settings)) (*SegmentEnd, error) {
	if policies == nil {
		policies = NodePolicies{}
	}
	segEnd := &SegmentEnd{
		SegmentID: segmentID,
		NodeID:    nodeID,
		host:      host,
		policies:  policies,
		settings:  newSettings(options...),
	}
	err := segEnd.Recompute()
	if err != nil {
		return nil, errors.Wrapf(err, "Can't create %s", segEnd)
	}
	segEnd.Config = segEnd.DefaultConfig()
	return segEnd, nil
}

func (segEnd *SegmentEnd) String() string {
	return fmt.Sprintf("SegmentEnd(segment:%d node:%d)", segEnd.SegmentID, segEnd.NodeID)
}

// Key returns identity pair of the segment end
func (segEnd *SegmentEnd) Key() SegmentEndKey {
	return SegmentEndKey{SegmentID: segEnd.SegmentID, NodeID: segEnd.NodeID}
}

// Clone returns copy of segment end sharing host and policies
func (segEnd *SegmentEnd) Clone() *SegmentEnd {
	clone := *segEnd
	return &clone
}

// IsStartNode is evaluated against current network topology
func (segEnd *SegmentEnd) IsStartNode() bool {
	return segEnd.host.IsStartNode(segEnd.SegmentID, segEnd.NodeID)
}

func (segEnd *SegmentEnd) policy() Policy {
	policy := segEnd.policies.Policy(segEnd.NodeID)
	if isDetached(policy) {
		return NoPolicy{}
	}
	return policy
}

// Recompute refreshes baseline and active corners from the host and clamps configuration to policy.
// Host is not notified
func (segEnd *SegmentEnd) Recompute() error {
	baseline, err := computeBaseline(segEnd.host, segEnd.SegmentID, segEnd.NodeID)
	if err != nil {
		return err
	}
	segEnd.Baseline = baseline
	segEnd.clamp()
	segEnd.updateCorners()
	return nil
}

// Refresh clamps configuration to policy, reapplies corner deltas and notifies the host.
// Must be called after every change of configurable fields
func (segEnd *SegmentEnd) Refresh() {
	segEnd.clamp()
	segEnd.updateCorners()
	if segEnd.settings.verbose {
		fmt.Printf("Refreshing %s: CornerOffset=%f\n", segEnd, segEnd.CornerOffset)
	}
	segEnd.host.UpdateNode(segEnd.NodeID)
}

func (segEnd *SegmentEnd) clamp() {
	clamped := ClampConfig(segEnd.Baseline, segEnd.Config, segEnd.policy())
	if segEnd.settings.verbose && clamped.CornerOffset != segEnd.CornerOffset {
		fmt.Printf("\t%s: setting CornerOffset = DefaultCornerOffset (%f)\n", segEnd, clamped.CornerOffset)
	}
	segEnd.Config = clamped
}

func (segEnd *SegmentEnd) updateCorners() {
	segEnd.CachedLeftCornerPos, segEnd.CachedLeftCornerDir = segEnd.ApplyCornerAdjustment(segEnd.LeftCornerPos0, segEnd.LeftCornerDir0, true)
	segEnd.CachedRightCornerPos, segEnd.CachedRightCornerDir = segEnd.ApplyCornerAdjustment(segEnd.RightCornerPos0, segEnd.RightCornerDir0, false)
}

// IsDefault checks if segment end modifies nothing. CornerOffset is compared with tolerance
func (segEnd *SegmentEnd) IsDefault() bool {
	ret := math.Abs(segEnd.CornerOffset-segEnd.DefaultCornerOffset) < segEnd.settings.offsetTolerance
	ret = ret && segEnd.FlatJunctions == segEnd.DefaultFlatJunctions
	ret = ret && !segEnd.NoCrossings
	ret = ret && !segEnd.NoMarkings
	ret = ret && !segEnd.NoJunctionTexture
	ret = ret && !segEnd.NoJunctionProps
	ret = ret && !segEnd.NoTLProps
	ret = ret && segEnd.DeltaLeftCornerPos == VectorZero
	ret = ret && segEnd.DeltaLeftCornerDir == VectorZero
	ret = ret && segEnd.DeltaRightCornerPos == VectorZero
	ret = ret && segEnd.DeltaRightCornerDir == VectorZero
	return ret
}

// IsModified checks if configuration differs from defaults exactly. Unlike IsDefault there is no tolerance,
// so it decides what has to be persisted
func (segEnd *SegmentEnd) IsModified() bool {
	return segEnd.Config != segEnd.DefaultConfig()
}

// ResetToDefault drops every user change and notifies the host. Policy is not consulted
func (segEnd *SegmentEnd) ResetToDefault() {
	segEnd.Config = segEnd.DefaultConfig()
	segEnd.updateCorners()
	segEnd.host.UpdateNode(segEnd.NodeID)
}

func (segEnd *SegmentEnd) CanModifyOffset() bool {
	return segEnd.policy().CanModifyOffset()
}

// CanModifyCorners allows corner editing at dead ends regardless of offset policy
func (segEnd *SegmentEnd) CanModifyCorners() bool {
	return segEnd.CanModifyOffset() || segEnd.policy().NodeType() == NODE_END
}

func (segEnd *SegmentEnd) CanModifyFlatJunctions() bool {
	return segEnd.policy().CanModifyFlatJunctions()
}

func (segEnd *SegmentEnd) ShowClearMarkingsToggle() bool {
	if segEnd.CSUR {
		return false
	}
	policy := segEnd.policy()
	if isDetached(policy) {
		return true
	}
	return policy.NodeType() == NODE_CUSTOM
}

// ShouldHideCrossingTexture implements CrossingDecider
func (segEnd *SegmentEnd) ShouldHideCrossingTexture() CrossingDecision {
	if segEnd.policy().NodeType() == NODE_STRETCH {
		return CROSSING_SHOW // always ignore
	}
	if segEnd.NoMarkings {
		return CROSSING_HIDE // always hide
	}
	return CROSSING_UNSPECIFIED
}

// ApplyCornerAdjustment stores raw corner of the side and returns it with user deltas applied.
//
// Note: when direction has no horizontal part, raw corner is returned as is
//
func (segEnd *SegmentEnd) ApplyCornerAdjustment(cornerPos, cornerDir Vector3, leftSide bool) (Vector3, Vector3) {
	if leftSide {
		segEnd.LeftCornerPos0 = cornerPos
		segEnd.LeftCornerDir0 = cornerDir
	} else {
		segEnd.RightCornerPos0 = cornerPos
		segEnd.RightCornerDir0 = cornerDir
	}

	frame, ok := newCornerFrame(cornerDir, leftSide)
	if !ok {
		if segEnd.settings.verbose {
			fmt.Printf("[WARNING]: %s has degenerate corner direction %s. Deltas are ignored\n", segEnd, cornerDir)
		}
		return cornerPos, cornerDir
	}

	var deltaPos, deltaDir Vector3
	if leftSide {
		deltaPos = frame.toAbsolute(segEnd.DeltaLeftCornerPos)
		deltaDir = frame.toAbsolute(segEnd.DeltaLeftCornerDir)
	} else {
		deltaPos = frame.toAbsolute(segEnd.DeltaRightCornerPos)
		deltaDir = frame.toAbsolute(segEnd.DeltaRightCornerDir)
	}
	return cornerPos.Add(deltaPos), cornerDir.Add(deltaDir)
}

// MoveCornerToAbsolutePos sets corner delta so that active corner of the side lands on given position.
// Returns if position was changed
func (segEnd *SegmentEnd) MoveCornerToAbsolutePos(side CornerSide, pos Vector3) (bool, error) {
	var pos0, dir0, cached Vector3
	switch side {
	case SIDE_LEFT:
		pos0, dir0, cached = segEnd.LeftCornerPos0, segEnd.LeftCornerDir0, segEnd.CachedLeftCornerPos
	case SIDE_RIGHT:
		pos0, dir0, cached = segEnd.RightCornerPos0, segEnd.RightCornerDir0, segEnd.CachedRightCornerPos
	default:
		return false, fmt.Errorf("Unknown corner side %d", side)
	}
	frame, ok := newCornerFrame(dir0, side == SIDE_LEFT)
	if !ok {
		return false, errors.Wrapf(ErrDegenerateCorner, "Can't move %s corner of %s", side, segEnd)
	}
	changed := !cached.ApproxEqual(pos, segEnd.settings.moveEpsilon)
	delta := frame.toLocal(pos.Sub(pos0))
	if side == SIDE_LEFT {
		segEnd.DeltaLeftCornerPos = delta
	} else {
		segEnd.DeltaRightCornerPos = delta
	}
	segEnd.Refresh()
	if side == SIDE_LEFT {
		segEnd.CachedLeftCornerPos = pos
	} else {
		segEnd.CachedRightCornerPos = pos
	}
	return changed, nil
}

func (segEnd *SegmentEnd) MoveLeftCornerToAbsolutePos(pos Vector3) (bool, error) {
	return segEnd.MoveCornerToAbsolutePos(SIDE_LEFT, pos)
}

func (segEnd *SegmentEnd) MoveRightCornerToAbsolutePos(pos Vector3) (bool, error) {
	return segEnd.MoveCornerToAbsolutePos(SIDE_RIGHT, pos)
}
