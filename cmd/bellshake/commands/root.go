package commands

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/bellshake/internal/app"
	"github.com/phanxgames/bellshake/internal/config"
)

var (
	configPath    string
	debug         bool
	watch         bool
	scriptPath    string
	screenshotDir string
)

// Execute runs the root command.
func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bellshake",
		Short:        "Shake a bell with live duration, angle and pivot controls",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, app.Options{
				ConfigPath:    configPath,
				Debug:         debug,
				Watch:         watch,
				ScriptPath:    scriptPath,
				ScreenshotDir: screenshotDir,
			})
			if err != nil {
				return err
			}
			return a.Run()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults built in)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log shake parameters and frame stats")
	root.Flags().BoolVar(&watch, "watch", false, "reload the config file when it changes")
	root.Flags().StringVar(&scriptPath, "script", "", "YAML input script to play, exiting when done")
	root.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "directory for script screenshots")

	root.AddCommand(scheduleCmd())
	return root
}
