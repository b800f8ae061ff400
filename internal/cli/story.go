package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recaplabs/claude-recap/internal/history"
	"github.com/recaplabs/claude-recap/internal/story"
)

func newStoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "story [project]",
		Short: "Narrate how you work, globally or for one project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(opts)
			if err != nil {
				return err
			}
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			th := settings.EffectiveThresholds()

			var s story.ProjectStory
			if len(args) == 1 {
				project, ok := history.FindProject(projects, args[0])
				if !ok {
					return fmt.Errorf("%w: project %q", history.ErrNotFound, args[0])
				}
				s = story.BuildProjectStory(project.Path, story.Summarize(project.Sessions), th)
			} else {
				s = story.BuildGlobalStory(projects, th)
			}
			printStory(cmd, s)
			return nil
		},
	}
}

func printStory(cmd *cobra.Command, s story.ProjectStory) {
	out := cmd.OutOrStdout()
	if s.Path != "" {
		fmt.Fprintf(out, "Project: %s\n", s.Path)
	}
	if !s.FirstActive.IsZero() {
		fmt.Fprintf(out, "Active %s to %s\n", formatTime(s.FirstActive), formatTime(s.LastActive))
	}
	fmt.Fprintf(out, "Pace: %s  Collaboration: %s  Sessions: %s\n", s.Pace, s.Collaboration, s.SessionStyle)
	if len(s.Traits) > 0 {
		fmt.Fprintf(out, "Traits: %s\n", strings.Join(s.Traits, ", "))
	}
	for _, insight := range s.Insights {
		fmt.Fprintf(out, "  • %s\n", insight)
	}
	for _, b := range s.Breaks {
		fmt.Fprintf(out, "  break: %s → %s (%d days)\n",
			b.Start.Format("2006-01-02"), b.End.Format("2006-01-02"), b.Days)
	}
}
