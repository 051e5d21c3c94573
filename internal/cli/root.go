package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "labstats",
	Short: "Statistics for laboratory experiments",
	Long: `labstats derives statistics from laboratory experiment measurements.

It joins each experiment with its target detection, concentration and
general records and rolls the results up per user, per experiment type,
per time window or across the whole system.`,
	SilenceUsage: true,
}

var outputJSON bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
}
