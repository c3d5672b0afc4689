package nodectl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// wayData is filtered OSM way
type wayData struct {
	ID    osm.WayID
	Nodes []osm.NodeID
	Tags  osm.Tags
}

// nodeData is OSM node used by filtered ways
type nodeData struct {
	ID         osm.NodeID
	point      orb.Point
	useCount   int
	isCrossing bool
}

func newScanner(filename string, r io.Reader) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), r), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(context.Background(), r, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ImportFromOSMFile builds network of segments between junctions from *.osm (XML) or *.osm.pbf file
func ImportFromOSMFile(filename string, cfg *OsmConfiguration, verbose bool) (*OSMNetwork, error) {
	if cfg == nil {
		cfg = &OsmConfiguration{}
	}
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()

	/* Process ways */
	if verbose {
		fmt.Printf("\tProcessing ways... ")
	}
	st := time.Now()
	ways := []*wayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newScanner(filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != "way" {
				continue
			}
			way := obj.(*osm.Way)
			tag := way.Tags.Find(cfg.entityName())
			if tag == "" || !cfg.CheckTag(tag) {
				continue
			}
			preparedWay := &wayData{
				ID:    way.ID,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				Tags:  make(osm.Tags, len(way.Tags)),
			}
			copy(preparedWay.Tags, way.Tags)
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
			}
			ways = append(ways, preparedWay)
		}
		if scannerWays.Err() != nil {
			return nil, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	if verbose {
		fmt.Printf("\tProcessing nodes... ")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]*nodeData)
	{
		scannerNodes, err := newScanner(filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != "node" {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; !ok {
				continue
			}
			delete(nodesSeen, node.ID)
			nodes[node.ID] = &nodeData{
				ID:         node.ID,
				point:      orb.Point{node.Lon, node.Lat},
				isCrossing: node.Tags.Find("highway") == "crossing",
			}
		}
		if scannerNodes.Err() != nil {
			return nil, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodes))
	}

	if verbose {
		fmt.Printf("\tPreparing segments... ")
	}
	st = time.Now()
	network := prepareNetwork(ways, nodes, cfg, verbose)
	if verbose {
		fmt.Printf("Done in %v\n\tSegments: %d\n\tNodes: %d\n", time.Since(st), len(network.segments), len(network.nodes))
	}
	return network, nil
}

// prepareNetwork splits ways into segments at shared nodes
func prepareNetwork(ways []*wayData, nodes map[osm.NodeID]*nodeData, cfg *OsmConfiguration, verbose bool) *OSMNetwork {
	network := &OSMNetwork{
		segments:   make(map[SegmentID]*osmSegment),
		nodes:      make(map[NodeID]*osmNode),
		nodesByOSM: make(map[osm.NodeID]NodeID),
		dirty:      make(map[NodeID]struct{}),
		verbose:    verbose,
	}

	// Count node use cases. Way ends always split
	completeWays := make([]*wayData, 0, len(ways))
	for _, way := range ways {
		missing := false
		for _, nodeID := range way.Nodes {
			if _, ok := nodes[nodeID]; !ok {
				missing = true
				break
			}
		}
		if missing || len(way.Nodes) < 2 {
			if verbose {
				fmt.Printf("\n\t[WARNING]: Way with missing nodes or less than 2 nodes met. Way ID: '%d'\n", way.ID)
			}
			continue
		}
		for i, nodeID := range way.Nodes {
			if i == 0 || i == len(way.Nodes)-1 {
				nodes[nodeID].useCount += 2
			} else {
				nodes[nodeID].useCount++
			}
		}
		completeWays = append(completeWays, way)
	}
	if len(completeWays) == 0 {
		return network
	}

	proj := newLocalProjection(nodes[completeWays[0].Nodes[0]].point)
	laneWidth := cfg.laneWidth()
	nextNodeID := NodeID(1)
	nextSegmentID := SegmentID(1)
	junctionNode := func(osmNodeID osm.NodeID) NodeID {
		if nodeID, ok := network.nodesByOSM[osmNodeID]; ok {
			return nodeID
		}
		source := nodes[osmNodeID]
		node := &osmNode{
			ID:         nextNodeID,
			osmNodeID:  osmNodeID,
			isCrossing: source.isCrossing,
			pos:        pointToVector(proj.project(source.point)),
		}
		network.nodes[node.ID] = node
		network.nodesByOSM[osmNodeID] = node.ID
		nextNodeID++
		return node.ID
	}

	for _, way := range completeWays {
		composition, _ := getRoadComposition(way.Tags.Find(cfg.entityName()))
		lanes := wayLanes(way.Tags, composition.roadType)
		pedestrianLanes := wayPedestrianLanes(way.Tags, composition.roadType)
		flags := wayFlags(way.Tags, composition)

		source := way.Nodes[0]
		geom := orb.LineString{nodes[source].point}
		for _, osmNodeID := range way.Nodes[1:] {
			node := nodes[osmNodeID]
			geom = append(geom, node.point)
			if node.useCount <= 1 {
				continue
			}
			if osmNodeID == source && len(geom) == 2 {
				// Duplicated node in a row
				geom = geom[:1]
				continue
			}
			geomLocal := proj.projectLine(geom)
			segment := &osmSegment{
				ID:           nextSegmentID,
				wayID:        way.ID,
				sourceNodeID: junctionNode(source),
				targetNodeID: junctionNode(osmNodeID),
				roadType:     composition.roadType,
				lanes:        lanes,
				halfWidth:    float64(lanes) * laneWidth / 2.0,
				lengthMeters: geo.LengthHaversign(geom),
				geomLocal:    geomLocal,
				info: SegmentInfo{
					Flags:           flags,
					PedestrianLanes: pedestrianLanes,
					CurveRadius:     calcRadiusCurvature(geomLocal),
				},
			}
			network.segments[segment.ID] = segment
			network.nodes[segment.sourceNodeID].segments = append(network.nodes[segment.sourceNodeID].segments, segment.ID)
			if segment.targetNodeID != segment.sourceNodeID {
				network.nodes[segment.targetNodeID].segments = append(network.nodes[segment.targetNodeID].segments, segment.ID)
			}
			nextSegmentID++
			source = osmNodeID
			geom = orb.LineString{node.point}
		}
	}
	network.prepareNodesInfo()
	return network
}

func wayLanes(tags osm.Tags, roadType RoadType) int {
	if lanesText := tags.Find("lanes"); lanesText != "" {
		if lanes, err := strconv.Atoi(lanesText); err == nil && lanes > 0 {
			return lanes
		}
	}
	if lanes, ok := defaultLanesByRoadType[roadType]; ok {
		return lanes
	}
	return 1
}

func wayPedestrianLanes(tags osm.Tags, roadType RoadType) int {
	if _, ok := pedestrianRoads[roadType]; ok {
		return 1
	}
	if lanes, ok := pedestrianLanesBySidewalk[tags.Find("sidewalk")]; ok {
		return lanes
	}
	return 0
}

func wayFlags(tags osm.Tags, composition roadComposition) SegmentFlags {
	flags := SEGMENT_FLAG_NONE
	if oneway := tags.Find("oneway"); oneway == "yes" || oneway == "1" || oneway == "-1" {
		flags |= SEGMENT_FLAG_ONEWAY
	}
	if bridge := tags.Find("bridge"); bridge != "" && bridge != "no" {
		flags |= SEGMENT_FLAG_BRIDGE
	}
	if tunnel := tags.Find("tunnel"); tunnel != "" && tunnel != "no" {
		flags |= SEGMENT_FLAG_TUNNEL
	}
	if composition.isLink {
		flags |= SEGMENT_FLAG_LINK
	}
	return flags
}
