package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recaplabs/claude-recap/internal/history"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search message content across all sessions (regular expression)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(opts)
			if err != nil {
				return err
			}
			matches, err := history.Search(projects, args[0])
			if err != nil {
				return fmt.Errorf("bad pattern: %w", err)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{m.ProjectPath, m.SessionID, m.Role, m.Snippet})
			}
			renderTable(cmd.OutOrStdout(), []string{"project", "session", "role", "match"}, rows)
			return nil
		},
	}
}
