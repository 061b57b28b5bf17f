package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/complyreport/internal/config"
)

// NewRootCmd creates the root command for complyreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complyreport",
		Short: "Render compliance run results into reports",
		Long: `complyreport turns the result tree of a compliance run into reports.

A single run can be written by several reporters at once, for example a
coloured console summary on standard output together with a JSON document
and a JUnit file for CI. Every reported run is archived in a local history
database so it can be listed and rendered again later.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().String("data-dir", config.XDGDataDir(),
		"Directory holding the run history database")

	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getDataDir retrieves the data directory from the command or its parent.
func getDataDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("data-dir")
	if err != nil || dir == "" {
		return config.XDGDataDir()
	}
	return dir
}
