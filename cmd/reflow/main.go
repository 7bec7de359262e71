// Command reflow inspects what the change-tracking engine would schedule
// for a given update: diff two HTML files and print the resulting work
// sets, or query the property severity table.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "reflow",
	Short:         "Incremental relayout scheduling for UI trees",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log transaction details")
	rootCmd.AddCommand(diffCmd, scopeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		os.Exit(1)
	}
}
