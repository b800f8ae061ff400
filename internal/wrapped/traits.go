package wrapped

import (
	"math"
	"sort"
	"time"

	"github.com/recaplabs/claude-recap/internal/story"
)

// Trait score references. Each score is round(100 * value / reference),
// capped at 100.
const (
	deepWorkRefMinutes  = 240
	weekendRefFraction  = 0.40
	nightOwlRefFraction = 0.30
	earlyBirdRefFrac    = 0.25
	consistencyRefDays  = 200
	explorerRefProjects = 15
	velocityRefPerHour  = 40
	staminaRefMinutes   = 480
	momentumRefDays     = 30
)

const neutralScore = 50

func scaleScore(value, reference float64) int {
	if reference <= 0 {
		return neutralScore
	}
	s := int(math.Round(100 * value / reference))
	if s > 100 {
		s = 100
	}
	if s < 0 {
		s = 0
	}
	return s
}

func buildTraits(sessions []yearSession, aggs []projAgg, dates []time.Time) TraitScores {
	var (
		messages  int
		agents    int
		hours     float64
		weekend   int
		night     int
		early     int
		longest   float64
		durations []float64
	)
	for _, ys := range sessions {
		count := ys.MessageCount()
		messages += count
		if ys.IsAgent {
			agents++
		}
		minutes := ys.Duration().Minutes()
		durations = append(durations, minutes)
		hours += minutes / 60
		if minutes > longest {
			longest = minutes
		}

		start := ys.StartedAt.UTC()
		if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend += count
		}
		if h := start.Hour(); h >= 22 || h < 6 {
			night += count
		}
		if h := start.Hour(); h >= 5 && h < 9 {
			early += count
		}
	}

	streaks := story.ComputeStreaks(dates)

	t := TraitScores{
		Delegation:  scaleScore(float64(agents)/float64(len(sessions)), 1),
		DeepWork:    scaleScore(median(durations), deepWorkRefMinutes),
		Consistency: scaleScore(float64(len(dates)), consistencyRefDays),
		Explorer:    scaleScore(float64(len(aggs)), explorerRefProjects),
		Stamina:     scaleScore(longest, staminaRefMinutes),
		Momentum:    scaleScore(float64(streaks.Longest), momentumRefDays),
	}
	if messages > 0 {
		t.Weekend = scaleScore(float64(weekend)/float64(messages), weekendRefFraction)
		t.NightOwl = scaleScore(float64(night)/float64(messages), nightOwlRefFraction)
		t.EarlyBird = scaleScore(float64(early)/float64(messages), earlyBirdRefFrac)
	} else {
		t.Weekend, t.NightOwl, t.EarlyBird = neutralScore, neutralScore, neutralScore
	}
	if hours > 0 {
		t.Velocity = scaleScore(float64(messages)/hours, velocityRefPerHour)
	} else {
		t.Velocity = neutralScore
	}
	return t
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
