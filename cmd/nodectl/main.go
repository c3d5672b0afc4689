package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/LdDl/nodectl"
	"github.com/pkg/errors"
)

var (
	tagStr      = flag.String("tags", "motorway,motorway_link,trunk,trunk_link,primary,primary_link,secondary,secondary_link,tertiary,tertiary_link,residential,living_street,unclassified,service", "Set of needed highway tags (separated by commas)")
	osmFileName = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm.pbf or *.osm file")
	laneWidth   = flag.Float64("lane_width", 3.5, "Width of a single lane (meters)")
	loadFile    = flag.String("load", "", "Filename of 'Comma-Separated Values' (CSV) formatted file with saved segment ends. Optional")
	out         = flag.String("out", "segment_ends.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file for modified segment ends")
	geojsonOut  = flag.String("geojson", "", "Filename of GeoJSON file for junction corners. Optional")
	moveEpsilon = flag.Float64("move_eps", 0, "Tolerance for detecting corner movement")
	verbose     = flag.Bool("verbose", false, "Print progress and warnings")
)

func main() {
	flag.Parse()

	cfg := nodectl.OsmConfiguration{
		EntityName: "highway", // Currrently we do not support others
		Tags:       strings.Split(*tagStr, ","),
		LaneWidth:  *laneWidth,
	}
	network, err := nodectl.ImportFromOSMFile(*osmFileName, &cfg, *verbose)
	if err != nil {
		fmt.Println(err)
		return
	}

	manager := nodectl.NewManager(network, network.NodePolicies(), nodectl.WithVerbose(*verbose), nodectl.WithMoveEpsilon(*moveEpsilon))
	network.SetCornerOffsets(manager)
	err = prepareSegmentEnds(network, manager)
	if err != nil {
		fmt.Println(err)
		return
	}

	if *loadFile != "" {
		records, err := nodectl.ImportRecordsFromCSV(*loadFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		err = manager.Restore(records)
		if err != nil {
			fmt.Println(err)
			return
		}
		dirty := network.TakeDirty()
		// Corner geometry depends on restored corner offsets
		err = manager.RecomputeNodes(dirty)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Restored %d segment ends. Updated nodes: %d\n", len(records), len(dirty))
	}

	records := manager.Records()
	err = nodectl.ExportRecordsToCSV(*out, records)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Saved %d modified segment ends out of %d\n", len(records), manager.Len())

	if *geojsonOut != "" {
		err = exportCorners(*geojsonOut, manager)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

// prepareSegmentEnds creates segment end for every segment at every junction
func prepareSegmentEnds(network *nodectl.OSMNetwork, manager *nodectl.Manager) error {
	if *verbose {
		fmt.Print("Preparing segment ends...")
	}
	st := time.Now()
	for _, nodeID := range network.Nodes() {
		for _, segmentID := range network.Segments(nodeID) {
			_, err := manager.GetOrCreate(segmentID, nodeID)
			if err != nil {
				return errors.Wrapf(err, "Can't prepare segment end (segment %d, node %d)", segmentID, nodeID)
			}
		}
	}
	if *verbose {
		fmt.Printf("Done in %v\n\tSegment ends: %d\n", time.Since(st), manager.Len())
	}
	return nil
}

func exportCorners(fname string, manager *nodectl.Manager) error {
	b, err := nodectl.CornersGeoJSON(manager.All()).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't prepare GeoJSON")
	}
	err = ioutil.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write GeoJSON")
	}
	return nil
}
