package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/statistics"
	"github.com/emiliopalmerini/labstats/internal/util"
)

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummaries(w io.Writer, title string, stats []domain.StatisticsSummary) error {
	if outputJSON {
		return printJSON(w, stats)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "  %s\n", repeatChar('=', len(title)))
	fmt.Fprintln(w)

	if len(stats) == 0 {
		fmt.Fprintln(w, "  No experiments found.")
		fmt.Fprintln(w)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTYPE\tUSER\tTIME\tPOINTS\tAVG CONC\tCONFIDENCE")
	for _, s := range stats {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			util.FormatIDPtr(s.ExperimentID), s.ExperimentType, s.UserName,
			util.FormatTimePtr(s.ExperimentTime), s.TotalDataPoints,
			s.AverageConcentration, s.ConfidenceLevel)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func printSummary(w io.Writer, title string, s domain.StatisticsSummary) error {
	if outputJSON {
		return printJSON(w, s)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "  %s\n", repeatChar('=', len(title)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Experiment:     %s\n", util.FormatIDPtr(s.ExperimentID))
	fmt.Fprintf(w, "  Type:           %s\n", s.ExperimentType)
	fmt.Fprintf(w, "  User:           %s\n", s.UserName)
	fmt.Fprintf(w, "  Time:           %s\n", util.FormatTimePtr(s.ExperimentTime))
	fmt.Fprintf(w, "  Data points:    %d\n", s.TotalDataPoints)
	fmt.Fprintf(w, "  Concentration:  %.2f\n", s.AverageConcentration)
	fmt.Fprintf(w, "  Confidence:     %.2f\n", s.ConfidenceLevel)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.AnalysisSummary)
	fmt.Fprintln(w)
	return nil
}

func printActivity(w io.Writer, a *statistics.UserActivity) error {
	if outputJSON {
		return printJSON(w, a)
	}

	names := make([]string, 0, len(a.UserExperimentCounts))
	for name := range a.UserExperimentCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  User activity (%d users)\n", a.TotalUsers)
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  USER\tEXPERIMENTS")
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%d\n", name, a.UserExperimentCounts[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func printUserReport(w io.Writer, r *statistics.UserReport) error {
	if outputJSON {
		return printJSON(w, r)
	}

	title := fmt.Sprintf("User: %s", r.User.Name)
	if err := printSummaries(w, title, r.Experiments); err != nil {
		return err
	}
	fmt.Fprintf(w, "  Experiments:              %d\n", r.ExperimentCount)
	if r.AverageDataPointsPerExperiment != nil {
		fmt.Fprintf(w, "  Avg points/experiment:    %.2f\n", *r.AverageDataPointsPerExperiment)
	}
	if r.AverageConcentration != nil {
		fmt.Fprintf(w, "  Avg concentration:        %.2f\n", *r.AverageConcentration)
	}
	fmt.Fprintln(w)
	return nil
}

func repeatChar(c rune, n int) string {
	s := make([]rune, n)
	for i := range s {
		s[i] = c
	}
	return string(s)
}
