package wrapped

import (
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/recaplabs/claude-recap/internal/history"
	"github.com/recaplabs/claude-recap/internal/story"
)

// BuildOptions selects the year and optional display name. Now exists so
// tests can pin the future-year check; zero means the wall clock.
type BuildOptions struct {
	Year int
	Name string
	Now  time.Time
}

// Build filters the aggregated projects down to one calendar year and
// produces the complete summary.
func Build(projects []history.Project, opts BuildOptions) (*Summary, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	if opts.Year > now.UTC().Year() {
		return nil, fmt.Errorf("%w: %d", ErrFutureYear, opts.Year)
	}
	if opts.Year < EarliestYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, opts.Year)
	}

	sessions := sessionsInYear(projects, opts.Year)
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoActivity, opts.Year)
	}

	aggs := projectAggregates(projects, sessions)
	top, other, topIndex := pickTopProjects(aggs)
	dates := story.ActiveDates(summaries(sessions))

	s := &Summary{
		Version:  Version,
		Year:     opts.Year,
		Name:     runewidth.Truncate(opts.Name, maxDisplayName, "…"),
		Projects: top,
		Other:    other,
	}
	s.Counts = buildCounts(sessions, len(aggs), len(dates))
	s.Heatmap = quantizeHeatmap(heatmapCounts(sessions))
	s.MonthlyMessages, s.MonthlyHours, s.MonthlySessions = monthlyArrays(sessions)
	s.DurationHist, s.AgentHist, s.LengthHist = buildHistograms(sessions, aggs)
	s.Traits = buildTraits(sessions, aggs, dates)
	s.Links = buildLinks(sessions, topIndex)
	s.Events = buildTimeline(sessions, aggs, topIndex)
	s.Fingerprints = buildFingerprints(sessions)
	s.Compare = buildComparison(projects, opts.Year, s.Counts)
	s.Streaks = buildStreaks(dates)
	s.Tokens = buildTokens(sessions)
	return s, nil
}

// sessionsInYear keeps sessions whose start falls in [Jan 1 of year,
// Jan 1 of year+1), both UTC. Sessions without a start are excluded.
func sessionsInYear(projects []history.Project, year int) []yearSession {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var out []yearSession
	for i, project := range projects {
		for _, sess := range project.Sessions {
			if sess.StartedAt.IsZero() {
				continue
			}
			start := sess.StartedAt.UTC()
			if start.Before(from) || !start.Before(to) {
				continue
			}
			out = append(out, yearSession{Session: sess, project: i})
		}
	}
	return out
}

func summaries(sessions []yearSession) []story.SessionSummary {
	out := make([]story.SessionSummary, 0, len(sessions))
	for _, ys := range sessions {
		out = append(out, story.SessionSummary{
			Start:    ys.StartedAt,
			End:      ys.EndedAt,
			Messages: ys.MessageCount(),
			IsAgent:  ys.IsAgent,
		})
	}
	return out
}

// projAgg is one project's in-year totals.
type projAgg struct {
	project  int
	name     string
	messages int
	sessions int
	agents   int
	hours    float64
	firstDay time.Time
}

func projectAggregates(projects []history.Project, sessions []yearSession) []projAgg {
	byProject := map[int]*projAgg{}
	var order []int
	for _, ys := range sessions {
		agg := byProject[ys.project]
		if agg == nil {
			agg = &projAgg{project: ys.project, name: projects[ys.project].Path}
			byProject[ys.project] = agg
			order = append(order, ys.project)
		}
		agg.messages += ys.MessageCount()
		agg.sessions++
		if ys.IsAgent {
			agg.agents++
		}
		agg.hours += ys.Duration().Hours()
		day := ys.StartedAt.UTC().Truncate(24 * time.Hour)
		if agg.firstDay.IsZero() || day.Before(agg.firstDay) {
			agg.firstDay = day
		}
	}

	sort.Ints(order)
	aggs := make([]projAgg, 0, len(order))
	for _, idx := range order {
		aggs = append(aggs, *byProject[idx])
	}
	return aggs
}

// pickTopProjects keeps the most-talked-to projects and folds everything
// else into the other bucket so global totals survive truncation. topIndex
// maps a project's index in the projects slice to its position in the top
// list.
func pickTopProjects(aggs []projAgg) ([]ProjectSummary, ProjectSummary, map[int]int) {
	ranked := make([]projAgg, len(aggs))
	copy(ranked, aggs)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].messages != ranked[j].messages {
			return ranked[i].messages > ranked[j].messages
		}
		return ranked[i].name < ranked[j].name
	})

	var top []ProjectSummary
	var other ProjectSummary
	topIndex := map[int]int{}
	for _, agg := range ranked {
		if len(top) < maxTopProjects {
			topIndex[agg.project] = len(top)
			top = append(top, ProjectSummary{
				Name:     runewidth.Truncate(agg.name, maxProjectName, "…"),
				Messages: agg.messages,
				Sessions: agg.sessions,
				Hours:    int(math.Round(agg.hours)),
			})
			continue
		}
		other.Messages += agg.messages
		other.Sessions += agg.sessions
		other.Hours += int(math.Round(agg.hours))
	}
	return top, other, topIndex
}

func buildCounts(sessions []yearSession, projects, activeDays int) Counts {
	counts := Counts{Projects: projects, Sessions: len(sessions), ActiveDays: activeDays}
	var hours float64
	for _, ys := range sessions {
		counts.Messages += ys.MessageCount()
		hours += ys.Duration().Hours()
	}
	counts.Hours = int(math.Round(hours))
	return counts
}

func monthlyArrays(sessions []yearSession) ([12]int, [12]int, [12]int) {
	var messages, sessionCounts [12]int
	var hours [12]float64
	for _, ys := range sessions {
		m := int(ys.StartedAt.UTC().Month()) - 1
		messages[m] += ys.MessageCount()
		sessionCounts[m]++
		hours[m] += ys.Duration().Hours()
	}
	var hoursInt [12]int
	for i, h := range hours {
		hoursInt[i] = int(math.Round(h))
	}
	return messages, hoursInt, sessionCounts
}

func buildHistograms(sessions []yearSession, aggs []projAgg) ([]int, []int, []int) {
	var durations, ratios, lengths []float64
	for _, ys := range sessions {
		durations = append(durations, ys.Duration().Minutes())
		for _, rec := range ys.Records {
			lengths = append(lengths, float64(utf8.RuneCountInString(rec.Text)))
		}
	}
	for _, agg := range aggs {
		ratios = append(ratios, float64(agg.agents)/float64(agg.sessions))
	}
	return histogram(durations, durationBucketsMin),
		histogram(ratios, agentRatioBuckets),
		histogram(lengths, messageLenBuckets)
}

func buildStreaks(dates []time.Time) StreakBlock {
	streaks := story.ComputeStreaks(dates)
	return StreakBlock{
		Longest: streaks.Longest,
		Current: streaks.Current,
		Count:   streaks.Count,
		Average: int(math.Round(streaks.AverageLen)),
	}
}

func buildTokens(sessions []yearSession) TokenBlock {
	var tokens TokenBlock
	for _, ys := range sessions {
		for _, rec := range ys.Records {
			if rec.Usage == nil {
				continue
			}
			tokens.Input += rec.Usage.InputTokens
			tokens.Output += rec.Usage.OutputTokens
			tokens.CacheCreation += rec.Usage.CacheCreationTokens
			tokens.CacheRead += rec.Usage.CacheReadTokens
		}
	}
	return tokens
}

func buildComparison(projects []history.Project, year int, current Counts) *Comparison {
	prevYear := year - 1
	if prevYear < EarliestYear {
		return nil
	}
	prev := sessionsInYear(projects, prevYear)
	if len(prev) == 0 {
		return nil
	}
	cmp := &Comparison{Sessions: len(prev)}
	var hours float64
	for _, ys := range prev {
		cmp.Messages += ys.MessageCount()
		hours += ys.Duration().Hours()
	}
	cmp.Hours = int(math.Round(hours))
	if cmp.Messages > 0 {
		cmp.GrowthPct = int(math.Round(100 * float64(current.Messages-cmp.Messages) / float64(cmp.Messages)))
	}
	return cmp
}

func buildLinks(sessions []yearSession, topIndex map[int]int) []Link {
	perDay := map[time.Time]map[int]bool{}
	for _, ys := range sessions {
		pos, ok := topIndex[ys.project]
		if !ok {
			continue
		}
		day := ys.StartedAt.UTC().Truncate(24 * time.Hour)
		set := perDay[day]
		if set == nil {
			set = map[int]bool{}
			perDay[day] = set
		}
		set[pos] = true
	}

	counts := map[Link]int{}
	for _, set := range perDay {
		var members []int
		for pos := range set {
			members = append(members, pos)
		}
		sort.Ints(members)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				counts[Link{A: members[i], B: members[j]}]++
			}
		}
	}

	links := make([]Link, 0, len(counts))
	for pair, count := range counts {
		pair.Count = count
		links = append(links, pair)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Count != links[j].Count {
			return links[i].Count > links[j].Count
		}
		if links[i].A != links[j].A {
			return links[i].A < links[j].A
		}
		return links[i].B < links[j].B
	})
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}
