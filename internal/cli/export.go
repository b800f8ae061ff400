package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/recaplabs/claude-recap/internal/history"
	"github.com/recaplabs/claude-recap/internal/story"
)

// exportReport is the full derived model, for feeding external renderers.
type exportReport struct {
	Global   history.GlobalStats `json:"global"`
	Projects []exportProject     `json:"projects"`
}

type exportProject struct {
	Stats history.ProjectStats `json:"stats"`
	Story story.ProjectStory   `json:"story"`
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all derived statistics and stories as xz-compressed JSON",
		Args:  cobra.NoArgs,
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

			report := exportReport{Global: history.Aggregate(projects)}
			for _, project := range projects {
				report.Projects = append(report.Projects, exportProject{
					Stats: project.Stats(),
					Story: story.BuildProjectStory(project.Path, story.Summarize(project.Sessions), th),
				})
			}

			if err := writeReport(outPath, report); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "claude-recap-export.json.xz", "Output file")
	return cmd
}

func writeReport(path string, report exportReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}

	zw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("compress export: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("encode export: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("compress export: %w", err)
	}
	return f.Close()
}
