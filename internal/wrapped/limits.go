package wrapped

import "errors"

const (
	// Version tags every encoded payload. Decoders refuse anything else.
	Version = 1

	// EarliestYear is the first year the product existed; requests before
	// it are invalid rather than empty.
	EarliestYear = 2024

	// MaxPayloadBytes is the budget the truncation limits below are sized
	// for. Asserted in tests over representative data.
	MaxPayloadBytes = 2048

	HeatmapCells  = 168
	heatmapLevels = 15

	maxTopProjects  = 12
	maxLinks        = 20
	maxEvents       = 25
	maxFingerprints = 20
	maxProjectName  = 50
	maxDisplayName  = 30
)

// Histogram bucket boundaries, upper-bound inclusive; the last bucket is
// open-ended, so a boundary list of length n yields n+1 buckets.
var (
	durationBucketsMin = []float64{5, 15, 30, 60, 120, 240}
	agentRatioBuckets  = []float64{0.1, 0.25, 0.5, 0.75}
	messageLenBuckets  = []float64{50, 200, 500, 1000, 2000}
)

// Cumulative message milestones that produce timeline events.
var messageMilestones = []int{100, 500, 1000, 2000, 5000, 10000}

const (
	timelineStreakDays = 5
	timelineGapDays    = 7
)

var (
	ErrFutureYear         = errors.New("requested year is in the future")
	ErrInvalidYear        = errors.New("requested year predates the product")
	ErrNoActivity         = errors.New("no activity in the requested year")
	ErrUnsupportedVersion = errors.New("unsupported payload version")
	ErrMalformedPayload   = errors.New("malformed payload")
)
