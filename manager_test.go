package nodectl

import (
	"testing"

	"github.com/pkg/errors"
)

func TestManagerUniqueness(t *testing.T) {
	manager := NewManager(newFakeHost(), policiesOf(NODE_CUSTOM))
	segEnd, err := manager.Create(1, 10)
	if err != nil {
		t.Error(err)
		return
	}
	_, err = manager.Create(1, 10)
	if errors.Cause(err) != ErrSegmentEndExists {
		t.Errorf("Duplicate pair must give ErrSegmentEndExists, but got %v", err)
	}
	same, err := manager.GetOrCreate(1, 10)
	if err != nil {
		t.Error(err)
		return
	}
	if same != segEnd {
		t.Errorf("GetOrCreate must return registered segment end")
	}
	_, err = manager.Create(99, 10)
	if errors.Cause(err) != ErrSegmentNotFound {
		t.Errorf("Missing segment must give ErrSegmentNotFound, but got %v", err)
	}
	if manager.Len() != 1 {
		t.Errorf("Manager should hold 1 segment end, but got %d", manager.Len())
	}
}

func TestManagerSegmentEnds(t *testing.T) {
	manager := NewManager(newFakeHost(), policiesOf(NODE_CUSTOM))
	for _, key := range []SegmentEndKey{{2, 10}, {1, 20}, {1, 10}, {3, 10}} {
		_, err := manager.Create(key.SegmentID, key.NodeID)
		if err != nil {
			t.Error(err)
			return
		}
	}
	segEnds := manager.SegmentEnds(10)
	if len(segEnds) != 3 {
		t.Errorf("Node 10 should have 3 segment ends, but got %d", len(segEnds))
		return
	}
	for i, segmentID := range []SegmentID{1, 2, 3} {
		if segEnds[i].SegmentID != segmentID {
			t.Errorf("Segment end %d should belong to segment %d, but got %d", i, segmentID, segEnds[i].SegmentID)
		}
	}
	all := manager.All()
	correct := []SegmentEndKey{{1, 10}, {2, 10}, {3, 10}, {1, 20}}
	for i := range correct {
		if all[i].Key() != correct[i] {
			t.Errorf("Segment end %d should be %v, but got %v", i, correct[i], all[i].Key())
		}
	}

	if !manager.Remove(2, 10) {
		t.Errorf("Registered segment end must be removed")
	}
	if manager.Remove(2, 10) {
		t.Errorf("Second removal must report nothing to remove")
	}
	if len(manager.SegmentEnds(10)) != 2 {
		t.Errorf("Node 10 should have 2 segment ends after removal")
	}
	manager.Remove(1, 20)
	if len(manager.SegmentEnds(20)) != 0 {
		t.Errorf("Node 20 should have no segment ends")
	}
}

func TestManagerShouldHideCrossing(t *testing.T) {
	manager := NewManager(newFakeHost(), policiesOf(NODE_CUSTOM))
	first, _ := manager.Create(1, 10)
	second, _ := manager.Create(2, 10)

	if d := manager.ShouldHideCrossing(10); d != CROSSING_UNSPECIFIED {
		t.Errorf("Default node must give %s, but got %s", CROSSING_UNSPECIFIED, d)
	}
	if d := manager.ShouldHideCrossing(10, decision(CROSSING_SHOW)); d != CROSSING_SHOW {
		t.Errorf("Undecided node must fall through to the chain, but got %s", d)
	}
	second.NoMarkings = true
	second.Refresh()
	if d := manager.ShouldHideCrossing(10, decision(CROSSING_SHOW)); d != CROSSING_HIDE {
		t.Errorf("Segment end decision must win over the chain, but got %s", d)
	}
	first.NoMarkings = true
	first.Refresh()
	if d := manager.ShouldHideCrossing(20, decision(CROSSING_SHOW)); d != CROSSING_SHOW {
		t.Errorf("Other node must not be affected, but got %s", d)
	}
}

func TestManagerOnNodeChanged(t *testing.T) {
	host := newFakeHost()
	manager := NewManager(host, policiesOf(NODE_CUSTOM))
	segEnd, _ := manager.Create(1, 10)
	host.nodes[10] = NodeInfo{FlatJunctions: false, MinCornerOffset: 6}
	err := manager.OnNodeChanged(10)
	if err != nil {
		t.Error(err)
		return
	}
	if segEnd.DefaultCornerOffset != 6 || segEnd.DefaultFlatJunctions {
		t.Errorf("Baseline must follow host node, but got offset %f, flat junctions %t", segEnd.DefaultCornerOffset, segEnd.DefaultFlatJunctions)
	}

	host.segments[1] = SegmentInfo{PedestrianLanes: 0, CurveRadius: 10}
	err = manager.OnSegmentChanged(1)
	if err != nil {
		t.Error(err)
		return
	}
	if segEnd.HasPedestrianLanes || segEnd.CurveRadius0 != 10 {
		t.Errorf("Baseline must follow host segment")
	}

	delete(host.segments, 1)
	err = manager.OnSegmentChanged(1)
	if errors.Cause(err) != ErrSegmentNotFound {
		t.Errorf("Removed segment must give ErrSegmentNotFound, but got %v", err)
	}
}

func TestManagerRecordsRestore(t *testing.T) {
	manager := NewManager(newFakeHost(), policiesOf(NODE_CUSTOM))
	segEnd, _ := manager.Create(1, 10)
	_, _ = manager.Create(2, 10)
	segEnd.CornerOffset = 5
	segEnd.NoCrossings = true
	_, err := segEnd.MoveLeftCornerToAbsolutePos(Vector3{X: 11, Y: 0, Z: 11})
	if err != nil {
		t.Error(err)
		return
	}

	records := manager.Records()
	if len(records) != 1 {
		t.Errorf("Only modified segment ends must be saved, but got %d records", len(records))
		return
	}

	restoredHost := newFakeHost()
	restored := NewManager(restoredHost, policiesOf(NODE_CUSTOM))
	records = append(records, SegmentEndRecord{SegmentID: 99, NodeID: 10, Config: Config{NoMarkings: true}})
	err = restored.Restore(records)
	if err != nil {
		t.Error(err)
		return
	}
	if restored.Len() != 1 {
		t.Errorf("Record of missing segment must be skipped, but got %d segment ends", restored.Len())
	}
	got, ok := restored.Get(1, 10)
	if !ok {
		t.Errorf("Segment end must be restored")
		return
	}
	if got.Config != segEnd.Config {
		t.Errorf("Restored config should be %+v, but got %+v", segEnd.Config, got.Config)
	}
	if !got.CachedLeftCornerPos.ApproxEqual(Vector3{X: 11, Y: 0, Z: 11}, 1e-6) {
		t.Errorf("Restored corner should be moved, but got %s", got.CachedLeftCornerPos)
	}
	if len(restoredHost.updates) != 1 {
		t.Errorf("Restore must notify host once per record, but got %d", len(restoredHost.updates))
	}

	// Restore clamps to current policy
	clamped := NewManager(newFakeHost(), policiesOf(NODE_MIDDLE))
	err = clamped.Restore(records[:1])
	if err != nil {
		t.Error(err)
		return
	}
	got, _ = clamped.Get(1, 10)
	if got.CornerOffset != got.DefaultCornerOffset {
		t.Errorf("Restored offset must be clamped to default, but got %f", got.CornerOffset)
	}
}

func TestManagerRecordsSmallOffset(t *testing.T) {
	manager := NewManager(newFakeHost(), policiesOf(NODE_CUSTOM))
	segEnd, _ := manager.Create(1, 10)
	segEnd.CornerOffset = segEnd.DefaultCornerOffset + 0.4
	segEnd.Refresh()
	if !segEnd.IsDefault() {
		t.Errorf("Offset change below tolerance should look default")
	}
	if !segEnd.IsModified() {
		t.Errorf("Any offset change must be reported as modification")
	}
	records := manager.Records()
	if len(records) != 1 {
		t.Errorf("Small offset change must be saved, but got %d records", len(records))
		return
	}
	restored := NewManager(newFakeHost(), policiesOf(NODE_CUSTOM))
	err := restored.Restore(records)
	if err != nil {
		t.Error(err)
		return
	}
	got, ok := restored.Get(1, 10)
	if !ok {
		t.Errorf("Segment end must be restored")
		return
	}
	if got.CornerOffset != segEnd.CornerOffset {
		t.Errorf("Restored offset should be %f, but got %f", segEnd.CornerOffset, got.CornerOffset)
	}
}
