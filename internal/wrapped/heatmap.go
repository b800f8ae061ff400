package wrapped

import (
	"math"
	"time"

	"github.com/recaplabs/claude-recap/internal/history"
)

// heatmapSlot maps a start time to its hour-of-week cell, Monday first.
func heatmapSlot(t time.Time) int {
	t = t.UTC()
	weekday := (int(t.Weekday()) + 6) % 7
	return weekday*24 + t.Hour()
}

// heatmapCounts attributes each session's full message count to the cell of
// its start time.
func heatmapCounts(sessions []yearSession) []int {
	cells := make([]int, HeatmapCells)
	for _, ys := range sessions {
		cells[heatmapSlot(ys.StartedAt)] += ys.MessageCount()
	}
	return cells
}

// quantizeHeatmap scales cells to 0..15 relative to the maximum. A cell
// that saw any activity never quantizes to zero.
func quantizeHeatmap(cells []int) []int {
	max := 0
	for _, v := range cells {
		if v > max {
			max = v
		}
	}
	out := make([]int, len(cells))
	if max == 0 {
		return out
	}
	for i, v := range cells {
		if v == 0 {
			continue
		}
		q := int(math.Round(float64(v) * heatmapLevels / float64(max)))
		if q < 1 {
			q = 1
		}
		out[i] = q
	}
	return out
}

// yearSession ties an in-year session to the index of its owning project.
type yearSession struct {
	history.Session
	project int
}
