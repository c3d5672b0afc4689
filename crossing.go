package nodectl

// CrossingDecision is verdict about crosswalk texture at a node
type CrossingDecision uint16

const (
	CROSSING_SHOW = CrossingDecision(iota + 1)
	CROSSING_HIDE
	CROSSING_UNSPECIFIED = CrossingDecision(0)
)

func (iotaIdx CrossingDecision) String() string {
	names := [...]string{"unspecified", "show", "hide"}
	if int(iotaIdx) >= len(names) {
		return "unspecified"
	}
	return names[iotaIdx]
}

// CrossingDecider is any source of crossing decisions: segment ends, other mods, etc.
type CrossingDecider interface {
	ShouldHideCrossingTexture() CrossingDecision
}

// CrossingDeciderFunc adapts plain function to CrossingDecider
type CrossingDeciderFunc func() CrossingDecision

func (f CrossingDeciderFunc) ShouldHideCrossingTexture() CrossingDecision {
	return f()
}

// ResolveCrossing asks deciders in order. The first specified decision wins
func ResolveCrossing(deciders ...CrossingDecider) CrossingDecision {
	for _, decider := range deciders {
		if decider == nil {
			continue
		}
		if decision := decider.ShouldHideCrossingTexture(); decision != CROSSING_UNSPECIFIED {
			return decision
		}
	}
	return CROSSING_UNSPECIFIED
}

// Apply writes specified decision into result and returns false, so the caller skips host default logic.
// Unspecified decision leaves result untouched and returns true
func (iotaIdx CrossingDecision) Apply(result *bool) bool {
	switch iotaIdx {
	case CROSSING_HIDE:
		*result = true
		return false
	case CROSSING_SHOW:
		*result = false
		return false
	default:
		return true
	}
}
