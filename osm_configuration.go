package nodectl

const (
	defaultLaneWidth = 3.5
)

// OsmConfiguration Allows to filter ways by certain tags from OSM data
type OsmConfiguration struct {
	EntityName string // Currrently we support 'highway' only
	Tags       []string
	// LaneWidth is width of a single lane in meters. Non-positive value means default one
	LaneWidth float64
}

// CheckTag Checks if incoming tag is represented in configuration. Empty configuration accepts every known road type
func (cfg *OsmConfiguration) CheckTag(tag string) bool {
	if len(cfg.Tags) == 0 {
		_, ok := getRoadComposition(tag)
		return ok
	}
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}

func (cfg *OsmConfiguration) laneWidth() float64 {
	if cfg.LaneWidth <= 0 {
		return defaultLaneWidth
	}
	return cfg.LaneWidth
}

func (cfg *OsmConfiguration) entityName() string {
	if cfg.EntityName == "" {
		return "highway"
	}
	return cfg.EntityName
}
