package nodectl

// NodeType is editing classification of a node
type NodeType uint16

const (
	NODE_MIDDLE = NodeType(iota + 1)
	NODE_BEND
	NODE_STRETCH
	NODE_CROSSING
	NODE_UTURN
	NODE_CUSTOM
	NODE_END
	NODE_UNDEFINED = NodeType(0)
)

func (iotaIdx NodeType) String() string {
	names := [...]string{"undefined", "middle", "bend", "stretch", "crossing", "uturn", "custom", "end"}
	if int(iotaIdx) >= len(names) {
		return "undefined"
	}
	return names[iotaIdx]
}

// Policy decides which configurable attributes segment ends of a node may change
type Policy interface {
	CanModifyOffset() bool
	CanModifyFlatJunctions() bool
	NodeType() NodeType
}

// PolicyProvider resolves policy of a node. It must return NoPolicy{} (not nil) for nodes without one
type PolicyProvider interface {
	Policy(nodeID NodeID) Policy
}

// NoPolicy is the policy of a node which is not under editing control: nothing may be modified
type NoPolicy struct{}

func (NoPolicy) CanModifyOffset() bool        { return false }
func (NoPolicy) CanModifyFlatJunctions() bool { return false }
func (NoPolicy) NodeType() NodeType           { return NODE_UNDEFINED }

func isDetached(policy Policy) bool {
	switch p := policy.(type) {
	case nil, NoPolicy:
		return true
	case *NodePolicy:
		return p == nil
	default:
		return false
	}
}

// NodePolicy is policy derived from node classification
type NodePolicy struct {
	Type NodeType
}

// NodeType of nil policy is NODE_UNDEFINED, so nil *NodePolicy behaves like NoPolicy
func (policy *NodePolicy) NodeType() NodeType {
	if policy == nil {
		return NODE_UNDEFINED
	}
	return policy.Type
}

// CanModifyOffset returns true for node types where segments actually meet at an angle
func (policy *NodePolicy) CanModifyOffset() bool {
	switch policy.NodeType() {
	case NODE_CUSTOM, NODE_CROSSING, NODE_UTURN:
		return true
	default:
		return false
	}
}

// CanModifyFlatJunctions returns true for node types which do not need a smooth transition between segments
func (policy *NodePolicy) CanModifyFlatJunctions() bool {
	switch policy.NodeType() {
	case NODE_CUSTOM, NODE_BEND:
		return true
	default:
		return false
	}
}

// DefaultNodeType classifies node by number of attached segments
func DefaultNodeType(segmentsNum int, isCrossing bool) NodeType {
	switch {
	case segmentsNum <= 0:
		return NODE_UNDEFINED
	case segmentsNum == 1:
		return NODE_END
	case segmentsNum == 2 && isCrossing:
		return NODE_CROSSING
	case segmentsNum == 2:
		return NODE_MIDDLE
	default:
		return NODE_CUSTOM
	}
}

// NodePolicies is map based PolicyProvider
type NodePolicies map[NodeID]Policy

func (policies NodePolicies) Policy(nodeID NodeID) Policy {
	policy, ok := policies[nodeID]
	if !ok || isDetached(policy) {
		return NoPolicy{}
	}
	return policy
}
