package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&confPathFlag, "config", "", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "one of trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logTimeFlag, "log-time", false, "include timestamps in log lines")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "emit log lines as JSON")
	rootCmd.PersistentFlags().StringSliceVar(&groupsFlag, "groups", nil, "groups to bind to; all of them by default")
	rootCmd.PersistentFlags().BoolVar(&noEnrichFlag, "no-enrich", false, "don't probe link settings when links come up")

	watchCmd.Flags().StringSliceVar(&dumpFlag, "dump", nil, "groups to dump before streaming notifications")
}

var (
	rootCmd = &cobra.Command{
		Use:   "nlmon",
		Short: "Watch rtnetlink notifications as JSON records.",
		Long: "nlmon binds to the rtnetlink link, ifaddr, route and neigh groups and prints\n" +
			"each notification as a JSON object on a line of its own.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(os.Stderr, logLevelFlag, logJSONFlag)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get the built version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("built commit: %s\n", builtCommit)
		},
	}

	confPathFlag string
	logLevelFlag string
	logTimeFlag  bool
	logJSONFlag  bool
	groupsFlag   []string
	dumpFlag     []string
	noEnrichFlag bool

	builtCommit = "dev"
)

func init() {
	// Disable completion please!
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the different sub-commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(ethtoolCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
