package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recaplabs/claude-recap/internal/config"
	"github.com/recaplabs/claude-recap/internal/history"
)

var (
	version = "dev"
	commit  = ""
)

type rootOptions struct {
	claudeDir  string
	configPath string
	verbose    bool
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "claude-recap",
		Short:         "Statistics, stories, and a shareable year in review from your Claude Code logs",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.claudeDir, "claude-dir", "", "Override Claude data dir (default: $CLAUDE_DIR or ~/.claude)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newStatsCmd(opts),
		newStoryCmd(opts),
		newSessionsCmd(opts),
		newSearchCmd(opts),
		newWrappedCmd(opts),
		newDecodeCmd(opts),
		newExportCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	return v
}

func loadProjects(opts *rootOptions) ([]history.Project, error) {
	return history.LoadProjects(opts.claudeDir)
}

func loadSettings(opts *rootOptions) (config.Settings, error) {
	store, err := config.NewStore(opts.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	return store.Load()
}
