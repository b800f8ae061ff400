package story

import "time"

// Thresholds holds every band boundary the classifier uses. Tests and the
// settings file override individual fields; the zero value is not usable,
// start from DefaultThresholds.
type Thresholds struct {
	// Work pace, messages per hour. Highest band wins.
	RapidPace      float64
	SteadyPace     float64
	DeliberatePace float64

	// Collaboration, agent sessions as a fraction of all sessions.
	HeavyDelegation    float64
	BalancedDelegation float64

	// Session style, average session duration in hours.
	MarathonHours float64
	ExtendedHours float64
	StandardHours float64

	// Sessions stay "open" this long past their last record when counting
	// concurrent instances, to absorb clock skew and tool-call delays.
	ConcurrencyGrace time.Duration

	// A gap of at least this many days between active dates is a break.
	BreakDays int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		RapidPace:          30,
		SteadyPace:         15,
		DeliberatePace:     5,
		HeavyDelegation:    0.5,
		BalancedDelegation: 0.2,
		MarathonHours:      4,
		ExtendedHours:      2,
		StandardHours:      0.5,
		ConcurrencyGrace:   30 * time.Minute,
		BreakDays:          7,
	}
}

// Label values produced by the classifier.
const (
	PaceRapid      = "rapid"
	PaceSteady     = "steady"
	PaceDeliberate = "deliberate"
	PaceMethodical = "methodical"

	CollabHeavyDelegation = "heavy delegation"
	CollabBalanced        = "balanced"
	CollabHandsOn         = "hands-on"

	StyleMarathon    = "marathon"
	StyleExtended    = "extended"
	StyleStandard    = "standard"
	StyleQuickSprint = "quick sprint"
)
