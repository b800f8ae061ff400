package story

import (
	"container/heap"
	"sort"
	"time"
)

type endTimeHeap []time.Time

func (h endTimeHeap) Len() int           { return len(h) }
func (h endTimeHeap) Less(i, j int) bool { return h[i].Before(h[j]) }
func (h endTimeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *endTimeHeap) Push(x any)        { *h = append(*h, x.(time.Time)) }
func (h *endTimeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// MaxConcurrent sweeps sessions in start order keeping a heap of open
// intervals; a session stays open until its end plus the grace buffer. The
// answer is the running maximum of simultaneously open sessions.
func MaxConcurrent(sessions []SessionSummary, grace time.Duration) int {
	type interval struct {
		start time.Time
		end   time.Time
	}
	intervals := make([]interval, 0, len(sessions))
	for _, sess := range sessions {
		if sess.Start.IsZero() || sess.End.IsZero() {
			continue
		}
		intervals = append(intervals, interval{start: sess.Start, end: sess.End.Add(grace)})
	}
	if len(intervals) == 0 {
		return 0
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	open := &endTimeHeap{}
	maxOpen := 0
	for _, iv := range intervals {
		for open.Len() > 0 && !(*open)[0].After(iv.start) {
			heap.Pop(open)
		}
		heap.Push(open, iv.end)
		if open.Len() > maxOpen {
			maxOpen = open.Len()
		}
	}
	return maxOpen
}
