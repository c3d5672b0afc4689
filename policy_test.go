package nodectl

import (
	"testing"
)

func TestDefaultNodeType(t *testing.T) {
	tests := []struct {
		segmentsNum int
		isCrossing  bool
		correct     NodeType
	}{
		{0, false, NODE_UNDEFINED},
		{1, false, NODE_END},
		{1, true, NODE_END},
		{2, false, NODE_MIDDLE},
		{2, true, NODE_CROSSING},
		{3, false, NODE_CUSTOM},
		{4, true, NODE_CUSTOM},
	}
	for _, test := range tests {
		got := DefaultNodeType(test.segmentsNum, test.isCrossing)
		if got != test.correct {
			t.Errorf("Node with %d segments (crossing: %t) should be '%s', but got '%s'", test.segmentsNum, test.isCrossing, test.correct, got)
		}
	}
}

func TestNodePolicyRules(t *testing.T) {
	tests := []struct {
		nodeType          NodeType
		canModifyOffset   bool
		canModifyJunction bool
	}{
		{NODE_MIDDLE, false, false},
		{NODE_BEND, false, true},
		{NODE_STRETCH, false, false},
		{NODE_CROSSING, true, false},
		{NODE_UTURN, true, false},
		{NODE_CUSTOM, true, true},
		{NODE_END, false, false},
	}
	for _, test := range tests {
		policy := &NodePolicy{Type: test.nodeType}
		if policy.CanModifyOffset() != test.canModifyOffset {
			t.Errorf("CanModifyOffset for '%s' should be %t", test.nodeType, test.canModifyOffset)
		}
		if policy.CanModifyFlatJunctions() != test.canModifyJunction {
			t.Errorf("CanModifyFlatJunctions for '%s' should be %t", test.nodeType, test.canModifyJunction)
		}
	}
}

func TestNilNodePolicy(t *testing.T) {
	var policy *NodePolicy
	if policy.CanModifyOffset() || policy.CanModifyFlatJunctions() || policy.NodeType() != NODE_UNDEFINED {
		t.Errorf("Nil policy must behave like NoPolicy")
	}
	if !isDetached(policy) {
		t.Errorf("Nil policy must be detached")
	}
	policies := NodePolicies{10: (*NodePolicy)(nil)}
	if _, ok := policies.Policy(10).(NoPolicy); !ok {
		t.Errorf("Nil policy must be resolved as NoPolicy, but got %#v", policies.Policy(10))
	}
	segEnd, err := NewSegmentEnd(newFakeHost(), policies, 1, 10)
	if err != nil {
		t.Error(err)
		return
	}
	if segEnd.CanModifyOffset() || !segEnd.ShowClearMarkingsToggle() {
		t.Errorf("Segment end with nil policy must be treated as detached")
	}
}

func TestEnumStringOutOfRange(t *testing.T) {
	if s := NodeType(9).String(); s != "undefined" {
		t.Errorf("Unknown node type should be 'undefined', but got '%s'", s)
	}
	if s := NODE_END.String(); s != "end" {
		t.Errorf("NODE_END should be 'end', but got '%s'", s)
	}
	if s := CornerSide(0).String(); s != "undefined" {
		t.Errorf("Unknown corner side should be 'undefined', but got '%s'", s)
	}
	if s := SIDE_RIGHT.String(); s != "right" {
		t.Errorf("SIDE_RIGHT should be 'right', but got '%s'", s)
	}
	if s := CrossingDecision(7).String(); s != "unspecified" {
		t.Errorf("Unknown crossing decision should be 'unspecified', but got '%s'", s)
	}
	if s := RoadType(100).String(); s != "undefined" {
		t.Errorf("Unknown road type should be 'undefined', but got '%s'", s)
	}
}

func TestNodePoliciesMissing(t *testing.T) {
	policies := NodePolicies{1: &NodePolicy{Type: NODE_CUSTOM}, 2: nil}
	if policies.Policy(1).NodeType() != NODE_CUSTOM {
		t.Errorf("Registered policy must be returned")
	}
	for _, nodeID := range []NodeID{2, 3} {
		policy := policies.Policy(nodeID)
		if !isDetached(policy) {
			t.Errorf("Node %d must be detached, but got %v", nodeID, policy)
		}
	}
}
