package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labstats/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  labstats migrate      # Run all pending migrations
  labstats migrate 1    # Migrate to version 1
  labstats migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withApp(ctx, func(app *AppContext) error {
		if app.DB == nil {
			return fmt.Errorf("migrate needs a database connection")
		}
		m, err := migrate.New(app.DB.DB, app.Logger)
		if err != nil {
			return err
		}

		target := m.Latest()
		if len(args) == 1 {
			target, err = strconv.Atoi(args[0])
			if err != nil || target < 0 {
				return fmt.Errorf("invalid version %q", args[0])
			}
			if target > m.Latest() {
				return fmt.Errorf("version %d does not exist (latest is %d)", target, m.Latest())
			}
		}

		before, _, err := m.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		ran, err := m.To(ctx, target)
		if err != nil {
			return fmt.Errorf("migration failed after %d step(s): %w", ran, err)
		}

		if ran == 0 {
			fmt.Fprintf(out, "Database is at version %d, nothing to do.\n", before)
			return nil
		}
		fmt.Fprintf(out, "Migrated from version %d to %d (%d step(s)).\n", before, target, ran)
		return nil
	})
}
