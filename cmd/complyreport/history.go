package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/complyreport/internal/config"
	"github.com/nao1215/complyreport/internal/database"
	"github.com/nao1215/complyreport/internal/report"
)

// defaultHistoryLimit is the number of runs listed without --limit.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command lists runs archived by the report command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs or render one of them again",
		Long: `History shows the runs archived by 'complyreport report'.

Without flags the most recent runs are listed with their control and test
summaries. With --show the archived result tree of one run is rendered
again with the console reporter.

Examples:
  # List the 20 most recent runs
  complyreport history

  # List every archived run
  complyreport history --limit 0

  # Render run 5 again
  complyreport history --show 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("show", "s", 0,
		"Render the run with this ID using the console reporter")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Bool("color", true,
		"Use colours when rendering a run")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	useColor, err := cmd.Flags().GetBool("color")
	if err != nil {
		return err
	}

	db, err := database.Open(getDataDir(cmd), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if showID > 0 {
		return showRun(cmd, db, showID, useColor)
	}
	return listRuns(cmd, db, limit)
}

// listRuns prints a table of archived runs, newest first.
func listRuns(cmd *cobra.Command, db *database.RunDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs found.")
		fmt.Fprintln(out, "\nUse 'complyreport report <run.json>' to report and archive a run.")
		return nil
	}

	fmt.Fprintf(out, "Run history (%d runs):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %-24s  %s\n", "ID", "Date", "Version", "Target", "Summary")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 90))

	for _, meta := range runs {
		target := meta.Target
		if target == "" {
			target = "-"
		}
		fmt.Fprintf(out, "  %-6d  %-20s  %-10s  %-24s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Version,
			target,
			formatRunSummary(meta.Summary),
		)
	}
	fmt.Fprintln(out, "\nUse 'complyreport history --show <id>' to render a run again.")

	return nil
}

// formatRunSummary returns a one-line control and test summary.
func formatRunSummary(s database.RunSummary) string {
	controls := fmt.Sprintf("%d controls (%d passed, %d failed, %d skipped)",
		s.Profile.Total, s.Profile.Passed, s.Profile.Failed, s.Profile.Skipped)
	if s.Profile.Failed > 0 {
		controls += fmt.Sprintf(" [critical %d, major %d, minor %d]",
			s.Profile.Critical, s.Profile.Major, s.Profile.Minor)
	}
	return fmt.Sprintf("%s, %d tests", controls, s.Test.Total)
}

// showRun renders an archived run with the console reporter.
func showRun(cmd *cobra.Command, db *database.RunDB, id int64, useColor bool) error {
	run, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}

	r, err := report.New(config.ReporterCLI, report.WithColor(useColor))
	if err != nil {
		return err
	}
	data, err := r.Render(run)
	if err != nil {
		return fmt.Errorf("failed to render run %d: %w", id, err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
