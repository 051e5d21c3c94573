package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labstats/internal/adapters/storage"
	"github.com/emiliopalmerini/labstats/internal/infrastructure/config"
	"github.com/emiliopalmerini/labstats/internal/ports"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save a statistics report as JSON",
	Long: `Compute a statistics report and save it as JSON.

Reports go to $LABSTATS_DATA_DIR/reports (default $XDG_DATA_HOME/labstats/reports), or to S3 when LABSTATS_S3_BUCKET is set.

Scopes:
  overall    whole-system roll-up (default)
  summary    user count plus roll-up
  activity   experiment count per user
  user       comprehensive report for --user

Examples:
  labstats export
  labstats export --scope user --user 3 --key user-3-weekly`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportScope  string
	exportUserID int64
	exportKey    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportScope, "scope", "s", "overall", "Report scope: overall, summary, activity, user")
	exportCmd.Flags().Int64Var(&exportUserID, "user", 0, "User id for the user scope")
	exportCmd.Flags().StringVar(&exportKey, "key", "", "Report key (default: <scope>-<uuid>)")
}

// Report is the stored envelope around one scope's result.
type Report struct {
	ID          string    `json:"id"`
	Scope       string    `json:"scope"`
	GeneratedAt time.Time `json:"generatedAt"`
	Data        any       `json:"data"`
}

// newReportStorage is swapped in tests.
var newReportStorage = func(ctx context.Context, cfg *config.Config) (ports.ReportStorage, error) {
	if cfg != nil && cfg.S3.Bucket != "" {
		return storage.NewS3ReportStorage(ctx, storage.S3Config{
			Bucket:   cfg.S3.Bucket,
			Prefix:   cfg.S3.Prefix,
			Region:   cfg.S3.Region,
			Endpoint: cfg.S3.Endpoint,
		})
	}
	return storage.NewReportStorage()
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withApp(ctx, func(app *AppContext) error {
		data, err := buildReportData(ctx, app, exportScope, exportUserID)
		if err != nil {
			return err
		}

		report := Report{
			ID:          uuid.NewString(),
			Scope:       exportScope,
			GeneratedAt: time.Now().UTC(),
			Data:        data,
		}
		key := exportKey
		if key == "" {
			key = exportScope + "-" + report.ID
		}

		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}

		store, err := newReportStorage(ctx, app.Config)
		if err != nil {
			return fmt.Errorf("failed to initialize report storage: %w", err)
		}
		location, err := store.Store(ctx, key, payload)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Report %s written to %s\n", key, location)
		return nil
	})
}

func buildReportData(ctx context.Context, app *AppContext, scope string, userID int64) (any, error) {
	switch scope {
	case "overall":
		return app.Service.OverallStatistics(ctx)
	case "summary":
		return app.Service.SystemSummary(ctx)
	case "activity":
		return app.Service.UserActivity(ctx)
	case "user":
		if userID == 0 {
			return nil, fmt.Errorf("--user is required for the user scope")
		}
		return app.Service.UserReport(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown scope %q", scope)
	}
}
