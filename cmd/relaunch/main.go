package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRoot creates the root command. Invoked with no arguments it performs
// the full stop -> wait -> launch sequence.
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	runFlags := &RunFlags{}
	stopFlags := &StopFlags{}
	launchFlags := &LaunchFlags{}
	historyFlags := &HistoryFlags{}

	relaunchCommand := command{}

	root := createRootCommand(relaunchCommand, globalFlags, runFlags)

	root.AddCommand(
		createStopCommand(relaunchCommand, globalFlags, stopFlags),
		createLaunchCommand(relaunchCommand, globalFlags, launchFlags),
		createStatusCommand(relaunchCommand, globalFlags),
		createHistoryCommand(relaunchCommand, globalFlags, historyFlags),
		createVersionCommand(),
	)

	return root
}

// createRootCommand creates the root command with minimal persistent flags
func createRootCommand(relaunchCommand command, globalFlags *GlobalFlags, runFlags *RunFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "relaunch",
		Short: "Stop and relaunch the local dashboard and its collectors",
		Long: `Relaunch stops a running dashboard application and its background
collector daemons by command-line pattern, waits a grace period for them to
exit, then starts a fresh dashboard instance detached from this session.

Examples:
  relaunch                          # full stop -> wait -> launch sequence
  relaunch --config relaunch.toml   # same, with explicit config
  relaunch stop                     # stop phase only
  relaunch status                   # show matching processes`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return relaunchCommand.Run(globalFlags, *runFlags)
		},
	}

	root.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "path to TOML config file (optional)")
	root.Flags().BoolVar(&runFlags.SkipEnvCheck, "skip-env-check", false, "do not verify required environment variables before launch")

	return root
}

// createStopCommand creates the stop subcommand
func createStopCommand(relaunchCommand command, globalFlags *GlobalFlags, stopFlags *StopFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop matching processes without relaunching",
		Long: `Stop sends a termination request to every process whose command line
matches a configured pattern. Targets with no running process are skipped.

Examples:
  relaunch stop
  relaunch stop --target=collector`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return relaunchCommand.Stop(globalFlags, *stopFlags)
		},
	}

	cmd.Flags().StringVar(&stopFlags.Target, "target", "", "stop only the named target")

	return cmd
}

// createLaunchCommand creates the launch subcommand
func createLaunchCommand(relaunchCommand command, globalFlags *GlobalFlags, launchFlags *LaunchFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch the dashboard detached, without stopping anything first",
		Long: `Launch starts a new dashboard instance in its own session with output
redirected to log files. Required environment variables are verified first
unless --skip-env-check is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return relaunchCommand.Launch(globalFlags, *launchFlags)
		},
	}

	cmd.Flags().BoolVar(&launchFlags.SkipEnvCheck, "skip-env-check", false, "do not verify required environment variables before launch")

	return cmd
}

// createStatusCommand creates the status subcommand
func createStatusCommand(relaunchCommand command, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show processes matching each configured target",
		RunE: func(cmd *cobra.Command, args []string) error {
			return relaunchCommand.Status(globalFlags)
		},
	}
}

// createHistoryCommand creates the history subcommand
func createHistoryCommand(relaunchCommand command, globalFlags *GlobalFlags, historyFlags *HistoryFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent restart audit events",
		Long: `History lists recent stop and launch events recorded to the configured
history database. Requires history.dsn to be set in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return relaunchCommand.History(globalFlags, *historyFlags)
		},
	}

	cmd.Flags().IntVar(&historyFlags.Limit, "limit", 20, "maximum number of events to show")

	return cmd
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the relaunch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("relaunch", version)
		},
	}
}
