package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/emiliopalmerini/labstats/internal/adapters/memory"
	"github.com/emiliopalmerini/labstats/internal/ports"
	"github.com/emiliopalmerini/labstats/internal/statistics"
)

// useSQLiteFile points the CLI at a fresh SQLite file for the duration of the test.
func useSQLiteFile(t *testing.T) {
	t.Helper()
	t.Setenv("LABSTATS_DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "labstats.db"))
	t.Setenv("LABSTATS_DATABASE_DRIVER", "sqlite")
	t.Setenv("LABSTATS_OTEL_ENABLED", "false")
	t.Setenv("LABSTATS_S3_BUCKET", "")
}

// useMemoryStore makes every command run against store instead of a database.
func useMemoryStore(t *testing.T, store *memory.Store) {
	t.Helper()
	r := store.Repositories()
	previous := openApp
	openApp = func(ctx context.Context, extra ...ports.MetricsExporter) (*AppContext, error) {
		svc := statistics.NewService(statistics.Repositories{
			Experiments:     r.Experiments,
			Detections:      r.Detections,
			Concentrations:  r.Concentrations,
			General:         r.General,
			Users:           r.Users,
			ExperimentTypes: r.ExperimentTypes,
		})
		return &AppContext{Users: r.Users, Service: svc}, nil
	}
	t.Cleanup(func() { openApp = previous })
}

// runCLI executes the root command with args and returns everything it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outputJSON = false
	exportScope, exportUserID, exportKey = "overall", 0, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
