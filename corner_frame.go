package nodectl

// CornerSide is the side of a segment end when going away from the junction
type CornerSide uint16

const (
	SIDE_LEFT = CornerSide(iota + 1)
	SIDE_RIGHT
)

func (iotaIdx CornerSide) String() string {
	switch iotaIdx {
	case SIDE_LEFT:
		return "left"
	case SIDE_RIGHT:
		return "right"
	default:
		return "undefined"
	}
}

// cornerFrame is the corner-local basis: lateral (outwards of the side), up, forward (away from the junction)
type cornerFrame struct {
	lateral Vector3
	up      Vector3
	forward Vector3
}

// newCornerFrame builds local frame for given raw corner direction.
// Returns false when direction has no usable horizontal part
func newCornerFrame(cornerDir Vector3, leftSide bool) (cornerFrame, bool) {
	forward := cornerDir.Horizontal().Normalized()
	if forward == VectorZero {
		return cornerFrame{}, false
	}
	rightward := VectorUp.Cross(cornerDir).Normalized()
	lateral := rightward
	if leftSide {
		lateral = rightward.Neg()
	}
	return cornerFrame{
		lateral: lateral,
		up:      VectorUp,
		forward: forward,
	}, true
}

func (frame cornerFrame) toAbsolute(v Vector3) Vector3 {
	return TransformToAbsolute(v, frame.lateral, frame.up, frame.forward)
}

func (frame cornerFrame) toLocal(v Vector3) Vector3 {
	return TransformToLocal(v, frame.lateral, frame.up, frame.forward)
}
