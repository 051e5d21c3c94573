package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labstats/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show experiment statistics",
	Long: `Show statistics for one experiment or a group of experiments.

Examples:
  labstats stats experiment 5                              # One experiment
  labstats stats user 1                                    # Every experiment of a user
  labstats stats type 2                                    # Every experiment of a type
  labstats stats range 2024-01-01T00:00:00 2024-02-01      # Experiments strictly inside a window
  labstats stats overall                                   # Whole-system roll-up
  labstats stats summary --json                            # User count plus roll-up, as JSON`,
}

func init() {
	statsCmd.AddCommand(
		&cobra.Command{
			Use:   "experiment <id>",
			Short: "Statistics of a single experiment",
			Args:  cobra.ExactArgs(1),
			RunE:  runExperimentStats,
		},
		&cobra.Command{
			Use:   "user <user-id>",
			Short: "Statistics of every experiment owned by a user",
			Args:  cobra.ExactArgs(1),
			RunE:  runUserStats,
		},
		&cobra.Command{
			Use:   "type <type-id>",
			Short: "Statistics of every experiment of a type",
			Args:  cobra.ExactArgs(1),
			RunE:  runTypeStats,
		},
		&cobra.Command{
			Use:   "range <start> <end>",
			Short: "Statistics of experiments strictly between two timestamps",
			Args:  cobra.ExactArgs(2),
			RunE:  runRangeStats,
		},
		&cobra.Command{
			Use:   "overall",
			Short: "Whole-system statistics",
			Args:  cobra.NoArgs,
			RunE:  runOverallStats,
		},
		&cobra.Command{
			Use:   "detail <id>",
			Short: "Detailed analysis of a single experiment",
			Args:  cobra.ExactArgs(1),
			RunE:  runDetailStats,
		},
		&cobra.Command{
			Use:   "summary",
			Short: "User count and whole-system statistics",
			Args:  cobra.NoArgs,
			RunE:  runSystemSummary,
		},
		&cobra.Command{
			Use:   "activity",
			Short: "Experiment count per user",
			Args:  cobra.NoArgs,
			RunE:  runUserActivity,
		},
		&cobra.Command{
			Use:   "user-report <user-id>",
			Short: "Comprehensive report for one user",
			Args:  cobra.ExactArgs(1),
			RunE:  runUserReport,
		},
	)
}

func runExperimentStats(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "experiment id")
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *AppContext) error {
		stats, err := app.Service.ExperimentStatistics(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printSummaries(cmd.OutOrStdout(), fmt.Sprintf("Experiment %d", id), stats)
	})
}

func runUserStats(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "user id")
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *AppContext) error {
		stats, err := app.Service.UserStatistics(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printSummaries(cmd.OutOrStdout(), fmt.Sprintf("Experiments of user %d", id), stats)
	})
}

func runTypeStats(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "experiment type id")
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *AppContext) error {
		stats, err := app.Service.ExperimentTypeStatistics(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printSummaries(cmd.OutOrStdout(), fmt.Sprintf("Experiments of type %d", id), stats)
	})
}

func runRangeStats(cmd *cobra.Command, args []string) error {
	start, err := util.ParseTimestamp(args[0])
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	end, err := util.ParseTimestamp(args[1])
	if err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}
	return withApp(cmd.Context(), func(app *AppContext) error {
		stats, err := app.Service.TimeRangeStatistics(cmd.Context(), start, end)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("Experiments between %s and %s", args[0], args[1])
		return printSummaries(cmd.OutOrStdout(), title, stats)
	})
}

func runOverallStats(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *AppContext) error {
		summary, err := app.Service.OverallStatistics(cmd.Context())
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), "Overall statistics", summary)
	})
}

func runDetailStats(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "experiment id")
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *AppContext) error {
		summary, err := app.Service.DetailedAnalysis(cmd.Context(), id)
		if err != nil {
			return err
		}
		if summary == nil {
			return fmt.Errorf("experiment %d not found", id)
		}
		return printSummary(cmd.OutOrStdout(), fmt.Sprintf("Experiment %d", id), *summary)
	})
}

func runSystemSummary(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *AppContext) error {
		summary, err := app.Service.SystemSummary(cmd.Context())
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), summary)
		}
		title := fmt.Sprintf("System summary (%d users)", summary.TotalUsers)
		return printSummary(cmd.OutOrStdout(), title, summary.OverallExperimentStats)
	})
}

func runUserActivity(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *AppContext) error {
		activity, err := app.Service.UserActivity(cmd.Context())
		if err != nil {
			return err
		}
		return printActivity(cmd.OutOrStdout(), activity)
	})
}

func runUserReport(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "user id")
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *AppContext) error {
		report, err := app.Service.UserReport(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printUserReport(cmd.OutOrStdout(), report)
	})
}
