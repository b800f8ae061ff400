package wrapped

import (
	"sort"
	"time"
)

// buildTimeline collects every candidate event, keeps the highest-priority
// ones when over the cap, then orders chronologically. Event type constants
// are declared in priority order, so the type doubles as the priority key.
func buildTimeline(sessions []yearSession, aggs []projAgg, topIndex map[int]int) []Event {
	perDay := map[int]int{}
	for _, ys := range sessions {
		perDay[ys.StartedAt.UTC().YearDay()] += ys.MessageCount()
	}
	days := make([]int, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Ints(days)

	var events []Event
	events = append(events, peakEvent(perDay, days))
	events = append(events, milestoneEvents(perDay, days)...)
	events = append(events, streakEvents(days)...)
	events = append(events, gapEvents(days)...)
	events = append(events, newProjectEvents(aggs, topIndex)...)

	if len(events) > maxEvents {
		sort.Slice(events, func(i, j int) bool {
			if events[i].Type != events[j].Type {
				return events[i].Type < events[j].Type
			}
			return events[i].Day < events[j].Day
		})
		events = events[:maxEvents]
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Day != events[j].Day {
			return events[i].Day < events[j].Day
		}
		return events[i].Type < events[j].Type
	})
	return events
}

func peakEvent(perDay map[int]int, days []int) Event {
	best := Event{Type: EventPeak}
	for _, day := range days {
		if perDay[day] > best.Value {
			best.Day = day
			best.Value = perDay[day]
		}
	}
	return best
}

func milestoneEvents(perDay map[int]int, days []int) []Event {
	var events []Event
	cumulative := 0
	next := 0
	for _, day := range days {
		cumulative += perDay[day]
		for next < len(messageMilestones) && cumulative >= messageMilestones[next] {
			events = append(events, Event{Type: EventMilestone, Day: day, Value: messageMilestones[next]})
			next++
		}
	}
	return events
}

func streakEvents(days []int) []Event {
	var events []Event
	runStart := 0
	for i := 1; i <= len(days); i++ {
		if i < len(days) && days[i] == days[i-1]+1 {
			continue
		}
		length := days[i-1] - days[runStart] + 1
		if length >= timelineStreakDays {
			events = append(events,
				Event{Type: EventStreakStart, Day: days[runStart]},
				Event{Type: EventStreakEnd, Day: days[i-1], Value: length},
			)
		}
		runStart = i
	}
	return events
}

func gapEvents(days []int) []Event {
	var events []Event
	for i := 1; i < len(days); i++ {
		gap := days[i] - days[i-1]
		if gap >= timelineGapDays {
			events = append(events,
				Event{Type: EventGapStart, Day: days[i-1]},
				Event{Type: EventGapEnd, Day: days[i], Value: gap},
			)
		}
	}
	return events
}

// newProjectEvents marks the first active day of each top project. Projects
// outside the top list have no stable index on the wire, so no event.
func newProjectEvents(aggs []projAgg, topIndex map[int]int) []Event {
	var events []Event
	for _, agg := range aggs {
		pos, ok := topIndex[agg.project]
		if !ok {
			continue
		}
		events = append(events, Event{
			Type:    EventNewProject,
			Day:     agg.firstDay.YearDay(),
			Project: pos,
		})
	}
	return events
}

// dayOfYearDate converts back for presentation; the payload itself only
// carries day numbers.
func dayOfYearDate(year, day int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
}
