package history

import "time"

// ProjectStats is derived from a project's sessions on demand and never
// persisted.
type ProjectStats struct {
	Path                  string
	Sessions              int
	AgentSessions         int
	MainSessions          int
	Messages              int
	UserMessages          int
	DurationMinutes       float64
	StorageBytes          int64
	AvgMessagesPerSession float64
	LongestSessionMinutes float64
	LastActive            time.Time
}

// GlobalStats aggregates over every project.
type GlobalStats struct {
	Projects          int
	Sessions          int
	AgentSessions     int
	MainSessions      int
	Messages          int
	UserMessages      int
	DurationMinutes   float64
	StorageBytes      int64
	MostActiveProject string
	LargestProject    string
}

// Stats computes the per-project figures. Durations come from session
// start/end spans only; storage comes from file metadata only.
func (p Project) Stats() ProjectStats {
	stats := ProjectStats{Path: p.Path, Sessions: len(p.Sessions)}
	for _, sess := range p.Sessions {
		if sess.IsAgent {
			stats.AgentSessions++
		} else {
			stats.MainSessions++
		}
		stats.Messages += sess.MessageCount()
		stats.UserMessages += sess.UserMessageCount()
		stats.StorageBytes += sess.FileSize

		minutes := sess.Duration().Minutes()
		stats.DurationMinutes += minutes
		if minutes > stats.LongestSessionMinutes {
			stats.LongestSessionMinutes = minutes
		}
		if sess.EndedAt.After(stats.LastActive) {
			stats.LastActive = sess.EndedAt
		}
	}
	if stats.Sessions > 0 {
		stats.AvgMessagesPerSession = float64(stats.Messages) / float64(stats.Sessions)
	}
	return stats
}

// Aggregate folds per-project stats into the global view and identifies the
// most active (by messages) and largest (by storage) projects.
func Aggregate(projects []Project) GlobalStats {
	var global GlobalStats
	global.Projects = len(projects)

	var maxMessages int
	var maxStorage int64
	for _, project := range projects {
		stats := project.Stats()
		global.Sessions += stats.Sessions
		global.AgentSessions += stats.AgentSessions
		global.MainSessions += stats.MainSessions
		global.Messages += stats.Messages
		global.UserMessages += stats.UserMessages
		global.DurationMinutes += stats.DurationMinutes
		global.StorageBytes += stats.StorageBytes

		if stats.Messages > maxMessages {
			maxMessages = stats.Messages
			global.MostActiveProject = stats.Path
		}
		if stats.StorageBytes > maxStorage {
			maxStorage = stats.StorageBytes
			global.LargestProject = stats.Path
		}
	}
	return global
}
