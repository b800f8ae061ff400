package story

import (
	"fmt"
	"time"

	"github.com/recaplabs/claude-recap/internal/history"
)

// SessionSummary is the slice of a session the classifier needs.
type SessionSummary struct {
	Start    time.Time
	End      time.Time
	Messages int
	IsAgent  bool
}

// Summarize reduces full sessions to classifier input.
func Summarize(sessions []history.Session) []SessionSummary {
	out := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, SessionSummary{
			Start:    sess.StartedAt,
			End:      sess.EndedAt,
			Messages: sess.MessageCount(),
			IsAgent:  sess.IsAgent,
		})
	}
	return out
}

// Break is a stretch of inactivity between two active dates.
type Break struct {
	Start time.Time
	End   time.Time
	Days  int
}

// StreakStats describes runs of consecutive active dates.
type StreakStats struct {
	Count      int
	Longest    int
	Current    int
	AverageLen float64
}

// ProjectStory is the narrative layer over one project's sessions.
type ProjectStory struct {
	Path            string
	FirstActive     time.Time
	LastActive      time.Time
	PeakDay         time.Time
	PeakDayMessages int
	Breaks          []Break
	Pace            string
	Collaboration   string
	SessionStyle    string
	Traits          []string
	MaxConcurrent   int
	Streaks         StreakStats
	Insights        []string
}

// BuildProjectStory classifies one project. Fewer than two sessions yields
// labels only, with zeroed streak and concurrency figures.
func BuildProjectStory(path string, sessions []SessionSummary, th Thresholds) ProjectStory {
	s := ProjectStory{Path: path}

	var messages int
	var hours float64
	var agents int
	for _, sess := range sessions {
		messages += sess.Messages
		hours += sess.End.Sub(sess.Start).Hours()
		if sess.IsAgent {
			agents++
		}
		if !sess.Start.IsZero() && (s.FirstActive.IsZero() || sess.Start.Before(s.FirstActive)) {
			s.FirstActive = sess.Start
		}
		if sess.End.After(s.LastActive) {
			s.LastActive = sess.End
		}
	}

	s.Pace = classifyPace(messages, hours, th)
	s.Collaboration = classifyCollaboration(agents, len(sessions), th)
	s.SessionStyle = classifySessionStyle(hours, len(sessions), th)
	s.PeakDay, s.PeakDayMessages = peakDay(sessions)

	if len(sessions) >= 2 {
		s.MaxConcurrent = MaxConcurrent(sessions, th.ConcurrencyGrace)
		dates := ActiveDates(sessions)
		s.Streaks = ComputeStreaks(dates)
		s.Breaks = detectBreaks(dates, th.BreakDays)
	}

	s.Traits = pickTraits(s, th)
	s.Insights = buildInsights(s, messages, len(sessions))
	return s
}

// BuildGlobalStory runs the same classification over every session of
// every project at once.
func BuildGlobalStory(projects []history.Project, th Thresholds) ProjectStory {
	var all []SessionSummary
	for _, project := range projects {
		all = append(all, Summarize(project.Sessions)...)
	}
	return BuildProjectStory("", all, th)
}

func classifyPace(messages int, hours float64, th Thresholds) string {
	if hours <= 0 {
		return PaceMethodical
	}
	rate := float64(messages) / hours
	switch {
	case rate >= th.RapidPace:
		return PaceRapid
	case rate >= th.SteadyPace:
		return PaceSteady
	case rate >= th.DeliberatePace:
		return PaceDeliberate
	default:
		return PaceMethodical
	}
}

func classifyCollaboration(agents, total int, th Thresholds) string {
	if total == 0 {
		return CollabHandsOn
	}
	ratio := float64(agents) / float64(total)
	switch {
	case ratio >= th.HeavyDelegation:
		return CollabHeavyDelegation
	case ratio >= th.BalancedDelegation:
		return CollabBalanced
	default:
		return CollabHandsOn
	}
}

func classifySessionStyle(totalHours float64, total int, th Thresholds) string {
	if total == 0 {
		return StyleQuickSprint
	}
	avg := totalHours / float64(total)
	switch {
	case avg >= th.MarathonHours:
		return StyleMarathon
	case avg >= th.ExtendedHours:
		return StyleExtended
	case avg >= th.StandardHours:
		return StyleStandard
	default:
		return StyleQuickSprint
	}
}

func peakDay(sessions []SessionSummary) (time.Time, int) {
	perDay := map[time.Time]int{}
	for _, sess := range sessions {
		if sess.Start.IsZero() {
			continue
		}
		day := sess.Start.UTC().Truncate(24 * time.Hour)
		perDay[day] += sess.Messages
	}
	var best time.Time
	var bestCount int
	for day, count := range perDay {
		if count > bestCount || (count == bestCount && day.Before(best)) {
			best = day
			bestCount = count
		}
	}
	return best, bestCount
}

const maxTraits = 3

func pickTraits(s ProjectStory, th Thresholds) []string {
	var traits []string
	add := func(t string) {
		if len(traits) < maxTraits {
			traits = append(traits, t)
		}
	}
	if s.Collaboration == CollabHeavyDelegation {
		add("the delegator")
	}
	if s.MaxConcurrent >= 3 {
		add("the multitasker")
	}
	if s.Pace == PaceRapid {
		add("the sprinter")
	}
	if s.SessionStyle == StyleMarathon {
		add("the marathoner")
	}
	if s.Streaks.Longest >= th.BreakDays {
		add("the regular")
	}
	if s.Pace == PaceMethodical {
		add("the thinker")
	}
	if s.Collaboration == CollabHandsOn {
		add("the craftsman")
	}
	return traits
}

func buildInsights(s ProjectStory, messages, sessions int) []string {
	var insights []string
	if sessions > 0 {
		insights = append(insights, fmt.Sprintf("%d messages across %d sessions", messages, sessions))
	}
	if !s.PeakDay.IsZero() {
		insights = append(insights, fmt.Sprintf("busiest day was %s with %d messages", s.PeakDay.Format("2006-01-02"), s.PeakDayMessages))
	}
	if s.MaxConcurrent > 1 {
		insights = append(insights, fmt.Sprintf("up to %d sessions running at once", s.MaxConcurrent))
	}
	if s.Streaks.Longest > 1 {
		insights = append(insights, fmt.Sprintf("longest streak: %d consecutive days", s.Streaks.Longest))
	}
	if len(s.Breaks) > 0 {
		insights = append(insights, fmt.Sprintf("took %d breaks of a week or more", len(s.Breaks)))
	}
	return insights
}
