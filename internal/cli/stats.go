package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/recaplabs/claude-recap/internal/history"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [project]",
		Short: "Show aggregate statistics, globally or for one project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(opts)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				project, ok := history.FindProject(projects, args[0])
				if !ok {
					return fmt.Errorf("%w: project %q", history.ErrNotFound, args[0])
				}
				printProjectStats(cmd, project.Stats())
				return nil
			}
			printGlobalStats(cmd, projects)
			return nil
		},
	}
}

func printProjectStats(cmd *cobra.Command, stats history.ProjectStats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project: %s\n\n", stats.Path)
	renderTable(out, []string{"metric", "value"}, [][]string{
		{"sessions", strconv.Itoa(stats.Sessions)},
		{"agent sessions", strconv.Itoa(stats.AgentSessions)},
		{"main sessions", strconv.Itoa(stats.MainSessions)},
		{"messages", strconv.Itoa(stats.Messages)},
		{"user messages", strconv.Itoa(stats.UserMessages)},
		{"total time", formatDuration(stats.DurationMinutes)},
		{"longest session", formatDuration(stats.LongestSessionMinutes)},
		{"avg messages/session", fmt.Sprintf("%.1f", stats.AvgMessagesPerSession)},
		{"storage", formatBytes(stats.StorageBytes)},
		{"last active", formatTime(stats.LastActive)},
	})
}

func printGlobalStats(cmd *cobra.Command, projects []history.Project) {
	out := cmd.OutOrStdout()
	global := history.Aggregate(projects)
	fmt.Fprintf(out, "%d projects, %d sessions (%d agent, %d main), %d messages, %s, %s on disk\n",
		global.Projects, global.Sessions, global.AgentSessions, global.MainSessions,
		global.Messages, formatDuration(global.DurationMinutes), formatBytes(global.StorageBytes))
	if global.MostActiveProject != "" {
		fmt.Fprintf(out, "most active: %s\n", global.MostActiveProject)
	}
	if global.LargestProject != "" {
		fmt.Fprintf(out, "largest: %s\n", global.LargestProject)
	}
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		stats := project.Stats()
		rows = append(rows, []string{
			stats.Path,
			strconv.Itoa(stats.Sessions),
			strconv.Itoa(stats.Messages),
			formatDuration(stats.DurationMinutes),
			formatTime(stats.LastActive),
		})
	}
	renderTable(out, []string{"project", "sessions", "messages", "time", "last active"}, rows)
}
