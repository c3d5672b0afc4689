package nodectl

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// SegmentEndKey is identity of a segment end
type SegmentEndKey struct {
	SegmentID SegmentID
	NodeID    NodeID
}

// Manager owns segment ends and guarantees there is at most one per (segment, node) pair
type Manager struct {
	host     Host
	policies PolicyProvider
	options  []func(*Settings)
	verbose  bool

	ends   map[SegmentEndKey]*SegmentEnd
	byNode map[NodeID]map[SegmentID]struct{}
}

func NewManager(host Host, policies PolicyProvider, options ...func(*Settings)) *Manager {
	if policies == nil {
		policies = NodePolicies{}
	}
	settings := newSettings(options...)
	return &Manager{
		host:     host,
		policies: policies,
		options:  options,
		verbose:  settings.verbose,
		ends:     make(map[SegmentEndKey]*SegmentEnd),
		byNode:   make(map[NodeID]map[SegmentID]struct{}),
	}
}

// Len returns number of registered segment ends
func (manager *Manager) Len() int {
	return len(manager.ends)
}

func (manager *Manager) Get(segmentID SegmentID, nodeID NodeID) (*SegmentEnd, bool) {
	segEnd, ok := manager.ends[SegmentEndKey{SegmentID: segmentID, NodeID: nodeID}]
	return segEnd, ok
}

// Create registers new segment end. Fails with ErrSegmentEndExists for duplicate pair
func (manager *Manager) Create(segmentID SegmentID, nodeID NodeID) (*SegmentEnd, error) {
	key := SegmentEndKey{SegmentID: segmentID, NodeID: nodeID}
	if _, ok := manager.ends[key]; ok {
		return nil, errors.Wrapf(ErrSegmentEndExists, "segment %d node %d", segmentID, nodeID)
	}
	segEnd, err := NewSegmentEnd(manager.host, manager.policies, segmentID, nodeID, manager.options...)
	if err != nil {
		return nil, err
	}
	manager.ends[key] = segEnd
	if _, ok := manager.byNode[nodeID]; !ok {
		manager.byNode[nodeID] = make(map[SegmentID]struct{})
	}
	manager.byNode[nodeID][segmentID] = struct{}{}
	return segEnd, nil
}

func (manager *Manager) GetOrCreate(segmentID SegmentID, nodeID NodeID) (*SegmentEnd, error) {
	if segEnd, ok := manager.Get(segmentID, nodeID); ok {
		return segEnd, nil
	}
	return manager.Create(segmentID, nodeID)
}

// Remove forgets segment end. Returns false if there was nothing to remove
func (manager *Manager) Remove(segmentID SegmentID, nodeID NodeID) bool {
	key := SegmentEndKey{SegmentID: segmentID, NodeID: nodeID}
	if _, ok := manager.ends[key]; !ok {
		return false
	}
	delete(manager.ends, key)
	if segments, ok := manager.byNode[nodeID]; ok {
		delete(segments, segmentID)
		if len(segments) == 0 {
			delete(manager.byNode, nodeID)
		}
	}
	return true
}

// SegmentEnds returns segment ends of the node ordered by segment ID
func (manager *Manager) SegmentEnds(nodeID NodeID) []*SegmentEnd {
	segments := manager.byNode[nodeID]
	ids := make([]SegmentID, 0, len(segments))
	for segmentID := range segments {
		ids = append(ids, segmentID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	ret := make([]*SegmentEnd, 0, len(ids))
	for _, segmentID := range ids {
		ret = append(ret, manager.ends[SegmentEndKey{SegmentID: segmentID, NodeID: nodeID}])
	}
	return ret
}

// All returns every segment end ordered by node and then by segment
func (manager *Manager) All() []*SegmentEnd {
	keys := make([]SegmentEndKey, 0, len(manager.ends))
	for key := range manager.ends {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].NodeID != keys[j].NodeID {
			return keys[i].NodeID < keys[j].NodeID
		}
		return keys[i].SegmentID < keys[j].SegmentID
	})
	ret := make([]*SegmentEnd, len(keys))
	for i, key := range keys {
		ret[i] = manager.ends[key]
	}
	return ret
}

// OnNodeChanged recomputes every segment end of the node
func (manager *Manager) OnNodeChanged(nodeID NodeID) error {
	for _, segEnd := range manager.SegmentEnds(nodeID) {
		err := segEnd.Recompute()
		if err != nil {
			return errors.Wrapf(err, "Can't recompute %s", segEnd)
		}
	}
	return nil
}

// RecomputeNodes recomputes segment ends of every given node. Usually fed by host's list of updated nodes
func (manager *Manager) RecomputeNodes(nodeIDs []NodeID) error {
	for _, nodeID := range nodeIDs {
		err := manager.OnNodeChanged(nodeID)
		if err != nil {
			return err
		}
	}
	return nil
}

// CornerOffset implements CornerOffsetProvider: configured offset of registered segment end
func (manager *Manager) CornerOffset(segmentID SegmentID, nodeID NodeID) (float64, bool) {
	segEnd, ok := manager.Get(segmentID, nodeID)
	if !ok {
		return 0, false
	}
	return segEnd.CornerOffset, true
}

// OnSegmentChanged recomputes both ends of the segment (if registered)
func (manager *Manager) OnSegmentChanged(segmentID SegmentID) error {
	for _, segEnd := range manager.All() {
		if segEnd.SegmentID != segmentID {
			continue
		}
		err := segEnd.Recompute()
		if err != nil {
			return errors.Wrapf(err, "Can't recompute %s", segEnd)
		}
	}
	return nil
}

// ShouldHideCrossing asks segment ends of the node and then the rest of the chain. First specified decision wins
func (manager *Manager) ShouldHideCrossing(nodeID NodeID, next ...CrossingDecider) CrossingDecision {
	segEnds := manager.SegmentEnds(nodeID)
	deciders := make([]CrossingDecider, 0, len(segEnds)+len(next))
	for _, segEnd := range segEnds {
		deciders = append(deciders, segEnd)
	}
	deciders = append(deciders, next...)
	return ResolveCrossing(deciders...)
}

// Records returns persistable state of every segment end which differs from default (exact comparison)
func (manager *Manager) Records() []SegmentEndRecord {
	records := []SegmentEndRecord{}
	for _, segEnd := range manager.All() {
		if !segEnd.IsModified() {
			continue
		}
		records = append(records, segEnd.Record())
	}
	return records
}

// Restore applies saved records. Segment ends are created on demand, policy clamp is applied afterwards.
// Records pointing to segments or nodes which do not exist anymore are skipped
func (manager *Manager) Restore(records []SegmentEndRecord) error {
	for _, record := range records {
		segEnd, err := manager.GetOrCreate(record.SegmentID, record.NodeID)
		if err != nil {
			cause := errors.Cause(err)
			if cause == ErrSegmentNotFound || cause == ErrNodeNotFound {
				if manager.verbose {
					fmt.Printf("[WARNING]: Skipping record for segment %d node %d: %s\n", record.SegmentID, record.NodeID, err.Error())
				}
				continue
			}
			return errors.Wrap(err, "Can't restore record")
		}
		segEnd.Config = record.Config
		segEnd.Refresh()
	}
	return nil
}
