package nodectl

import (
	"fmt"
)

const (
	defaultOffsetTolerance = 0.5
	defaultMoveEpsilon     = 0.0
)

// Settings tunes behaviour of segment ends and manager
type Settings struct {
	verbose         bool
	moveEpsilon     float64
	offsetTolerance float64
}

func (settings *Settings) String() string {
	return fmt.Sprintf(`
Segment end settings:
	verbose: %t
	move_epsilon: %f
	offset_tolerance: %f
	`,
		settings.verbose,
		settings.moveEpsilon,
		settings.offsetTolerance,
	)
}

func newSettings(options ...func(*Settings)) Settings {
	settings := Settings{
		verbose:         false,
		moveEpsilon:     defaultMoveEpsilon,
		offsetTolerance: defaultOffsetTolerance,
	}
	for _, option := range options {
		option(&settings)
	}
	return settings
}

func WithVerbose(verbose bool) func(*Settings) {
	return func(settings *Settings) {
		settings.verbose = verbose
	}
}

// WithMoveEpsilon sets tolerance used to detect if corner move actually changed position
func WithMoveEpsilon(moveEpsilon float64) func(*Settings) {
	return func(settings *Settings) {
		if moveEpsilon >= 0 {
			settings.moveEpsilon = moveEpsilon
		}
	}
}

// WithOffsetTolerance sets tolerance of corner offset comparison in IsDefault
func WithOffsetTolerance(offsetTolerance float64) func(*Settings) {
	return func(settings *Settings) {
		if offsetTolerance > 0 {
			settings.offsetTolerance = offsetTolerance
		}
	}
}
