package nodectl

// RoadType is coarse classification of OSM highways which drives default road width
type RoadType uint16

const (
	ROAD_MOTORWAY = RoadType(iota + 1)
	ROAD_TRUNK
	ROAD_PRIMARY
	ROAD_SECONDARY
	ROAD_TERTIARY
	ROAD_RESIDENTIAL
	ROAD_LIVING_STREET
	ROAD_SERVICE
	ROAD_CYCLEWAY
	ROAD_FOOTWAY
	ROAD_TRACK
	ROAD_UNCLASSIFIED
	ROAD_UNDEFINED = RoadType(0)
)

func (iotaIdx RoadType) String() string {
	names := [...]string{"undefined", "motorway", "trunk", "primary", "secondary", "tertiary", "residential", "living_street", "service", "cycleway", "footway", "track", "unclassified"}
	if int(iotaIdx) >= len(names) {
		return "undefined"
	}
	return names[iotaIdx]
}

// roadComposition is road type plus sign of being a link (ramp) between two roads
type roadComposition struct {
	roadType RoadType
	isLink   bool
}

// getRoadComposition returns classification for `highway` tag value
func getRoadComposition(highway string) (roadComposition, bool) {
	found, ok := roadTypeByHighway[highway]
	return found, ok
}

var (
	roadTypeByHighway = map[string]roadComposition{
		"motorway":         {ROAD_MOTORWAY, false},
		"motorway_link":    {ROAD_MOTORWAY, true},
		"trunk":            {ROAD_TRUNK, false},
		"trunk_link":       {ROAD_TRUNK, true},
		"primary":          {ROAD_PRIMARY, false},
		"primary_link":     {ROAD_PRIMARY, true},
		"secondary":        {ROAD_SECONDARY, false},
		"secondary_link":   {ROAD_SECONDARY, true},
		"tertiary":         {ROAD_TERTIARY, false},
		"tertiary_link":    {ROAD_TERTIARY, true},
		"residential":      {ROAD_RESIDENTIAL, false},
		"residential_link": {ROAD_RESIDENTIAL, true},
		"living_street":    {ROAD_LIVING_STREET, false},
		"service":          {ROAD_SERVICE, false},
		"services":         {ROAD_SERVICE, false},
		"cycleway":         {ROAD_CYCLEWAY, false},
		"footway":          {ROAD_FOOTWAY, false},
		"pedestrian":       {ROAD_FOOTWAY, false},
		"steps":            {ROAD_FOOTWAY, false},
		"track":            {ROAD_TRACK, false},
		"unclassified":     {ROAD_UNCLASSIFIED, false},
	}
	defaultLanesByRoadType = map[RoadType]int{
		ROAD_MOTORWAY:      4,
		ROAD_TRUNK:         3,
		ROAD_PRIMARY:       3,
		ROAD_SECONDARY:     2,
		ROAD_TERTIARY:      2,
		ROAD_RESIDENTIAL:   1,
		ROAD_LIVING_STREET: 1,
		ROAD_SERVICE:       1,
		ROAD_CYCLEWAY:      1,
		ROAD_FOOTWAY:       1,
		ROAD_TRACK:         1,
		ROAD_UNCLASSIFIED:  1,
	}
	// pedestrianRoads are considered as a single pedestrian lane
	pedestrianRoads = map[RoadType]struct{}{
		ROAD_FOOTWAY: {},
	}
	pedestrianLanesBySidewalk = map[string]int{
		"both":     2,
		"left":     1,
		"right":    1,
		"no":       0,
		"none":     0,
		"separate": 0,
	}
)
