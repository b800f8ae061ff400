package story

import (
	"sort"
	"time"
)

// ActiveDates returns the distinct UTC dates with at least one session
// start, sorted ascending.
func ActiveDates(sessions []SessionSummary) []time.Time {
	seen := map[time.Time]bool{}
	for _, sess := range sessions {
		if sess.Start.IsZero() {
			continue
		}
		seen[sess.Start.UTC().Truncate(24*time.Hour)] = true
	}
	dates := make([]time.Time, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ComputeStreaks walks sorted dates and measures maximal runs of
// consecutive days. The current streak is the final run.
func ComputeStreaks(dates []time.Time) StreakStats {
	var stats StreakStats
	if len(dates) == 0 {
		return stats
	}

	runLen := 1
	total := 0
	for i := 1; i <= len(dates); i++ {
		if i < len(dates) && dates[i].Sub(dates[i-1]) == 24*time.Hour {
			runLen++
			continue
		}
		stats.Count++
		total += runLen
		if runLen > stats.Longest {
			stats.Longest = runLen
		}
		if i == len(dates) {
			stats.Current = runLen
		}
		runLen = 1
	}
	stats.AverageLen = float64(total) / float64(stats.Count)
	return stats
}

// detectBreaks reports gaps of at least breakDays between consecutive
// active dates.
func detectBreaks(dates []time.Time, breakDays int) []Break {
	var breaks []Break
	for i := 1; i < len(dates); i++ {
		gap := int(dates[i].Sub(dates[i-1]).Hours() / 24)
		if gap >= breakDays {
			breaks = append(breaks, Break{
				Start: dates[i-1],
				End:   dates[i],
				Days:  gap,
			})
		}
	}
	return breaks
}
