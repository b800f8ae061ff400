package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/recaplabs/claude-recap/internal/history"
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions <project>",
		Short: "List the sessions of one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(opts)
			if err != nil {
				return err
			}
			project, ok := history.FindProject(projects, args[0])
			if !ok {
				return fmt.Errorf("%w: project %q", history.ErrNotFound, args[0])
			}

			rows := make([][]string, 0, len(project.Sessions))
			for _, sess := range project.Sessions {
				kind := "main"
				if sess.IsAgent {
					kind = "agent"
				}
				rows = append(rows, []string{
					sess.ID,
					kind,
					formatTime(sess.StartedAt),
					strconv.Itoa(sess.MessageCount()),
					formatDuration(sess.Duration().Minutes()),
					sess.DisplayTitle(),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"session", "type", "started", "messages", "length", "title"}, rows)
			return nil
		},
	}
}
