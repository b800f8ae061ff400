package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recaplabs/claude-recap/internal/wrapped"
)

func newWrappedCmd(opts *rootOptions) *cobra.Command {
	var year int
	var name string

	cmd := &cobra.Command{
		Use:   "wrapped",
		Short: "Build and encode the shareable year-in-review payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(opts)
			if err != nil {
				return err
			}
			if name == "" {
				settings, err := loadSettings(opts)
				if err != nil {
					return err
				}
				name = settings.DisplayName
			}

			summary, err := wrapped.Build(projects, wrapped.BuildOptions{Year: year, Name: name})
			if err != nil {
				return err
			}
			payload, err := wrapped.Encode(summary)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d: %d projects, %d sessions, %d messages, %d active days (%d bytes encoded)\n",
				summary.Year, summary.Counts.Projects, summary.Counts.Sessions,
				summary.Counts.Messages, summary.Counts.ActiveDays, len(payload))
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().UTC().Year(), "Calendar year to summarize")
	cmd.Flags().StringVar(&name, "name", "", "Display name embedded in the payload")
	return cmd
}

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <payload>",
		Short: "Decode a year-in-review payload back to its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := wrapped.Decode(args[0])
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
