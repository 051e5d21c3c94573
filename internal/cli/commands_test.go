package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/emiliopalmerini/labstats/internal/adapters/memory"
	"github.com/emiliopalmerini/labstats/internal/adapters/storage"
	"github.com/emiliopalmerini/labstats/internal/domain"
)

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("labstats %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestMigrateSeedAndStats(t *testing.T) {
	useSQLiteFile(t)

	out := mustRun(t, "migrate")
	if !strings.Contains(out, "Migrated from version 0 to 1") {
		t.Errorf("unexpected migrate output %q", out)
	}
	out = mustRun(t, "migrate")
	if !strings.Contains(out, "nothing to do") {
		t.Errorf("second migrate should be a no-op, got %q", out)
	}

	out = mustRun(t, "seed")
	if !strings.Contains(out, "Seeded 3 experiments") {
		t.Errorf("unexpected seed output %q", out)
	}

	var overall domain.StatisticsSummary
	if err := json.Unmarshal([]byte(mustRun(t, "stats", "overall", "--json")), &overall); err != nil {
		t.Fatalf("overall output is not JSON: %v", err)
	}
	if overall.TotalDataPoints != 12 || overall.ExperimentType != domain.OverallTypeLabel {
		t.Errorf("unexpected overall summary %+v", overall)
	}

	var userStats []domain.StatisticsSummary
	if err := json.Unmarshal([]byte(mustRun(t, "stats", "user", "1", "--json")), &userStats); err != nil {
		t.Fatalf("user output is not JSON: %v", err)
	}
	if len(userStats) != 2 || userStats[0].UserName != "Ada Lovelace" {
		t.Errorf("unexpected user stats %+v", userStats)
	}

	out = mustRun(t, "stats", "activity")
	for _, want := range []string{"Ada Lovelace", "Rosalind Franklin"} {
		if !strings.Contains(out, want) {
			t.Errorf("activity output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "migrate", "0")
	if !strings.Contains(out, "Migrated from version 1 to 0") {
		t.Errorf("unexpected rollback output %q", out)
	}
}

func TestMigrate_InvalidVersion(t *testing.T) {
	useSQLiteFile(t)

	for _, arg := range []string{"abc", "-1", "99"} {
		if _, err := runCLI(t, "migrate", arg); err == nil {
			t.Errorf("migrate %s: expected error", arg)
		}
	}
}

func exampleStore() *memory.Store {
	store := memory.NewStore()
	store.AddUser(domain.User{ID: 1, Name: "alice"})
	store.AddExperimentType(domain.ExperimentType{ID: 2, TypeName: "glucose"})
	store.AddExperiment(domain.Experiment{ID: 5, ExperimentTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), UserID: 1, ExperimentTypeID: 2})
	store.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 5, Confidence: 0.8})
	store.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 5, Confidence: 0.9})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 5, Concentration: 2.0, Confidence: 0.7})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 5, Concentration: 4.0, Confidence: 0.9})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 5, Concentration: 6.0, Confidence: 0.5})
	store.AddGeneral(domain.GeneralRecord{ExperimentID: 5, Key: "operator", Value: "alice"})
	return store
}

func TestStatsCommands(t *testing.T) {
	useMemoryStore(t, exampleStore())

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"stats", "experiment", "5"}, "Experiment contains 6 data points"},
		{[]string{"stats", "experiment", "9"}, "No experiments found."},
		{[]string{"stats", "user", "1"}, "alice"},
		{[]string{"stats", "type", "2"}, "glucose"},
		{[]string{"stats", "range", "2024-06-01", "2024-06-02"}, "glucose"},
		{[]string{"stats", "range", "2024-06-01T12:00:00", "2024-06-02"}, "No experiments found."},
		{[]string{"stats", "overall"}, "Total 1 experiments, 6 data points, average 6.00 data points/experiment, average concentration 4.00"},
		{[]string{"stats", "detail", "5"}, "average confidence 0.76"},
		{[]string{"stats", "summary"}, "System summary (1 users)"},
		{[]string{"stats", "activity"}, "alice"},
		{[]string{"stats", "user-report", "1"}, "Avg concentration:        4.00"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out := mustRun(t, tt.args...)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestStatsCommands_Errors(t *testing.T) {
	useMemoryStore(t, exampleStore())

	tests := [][]string{
		{"stats", "experiment", "five"},
		{"stats", "detail", "9"},
		{"stats", "range", "soon", "later"},
		{"stats", "user-report", "42"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := runCLI(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExport(t *testing.T) {
	useMemoryStore(t, exampleStore())
	t.Setenv("LABSTATS_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	out := mustRun(t, "export", "--scope", "activity", "--key", "weekly-activity")
	if !strings.Contains(out, "Report weekly-activity written to") {
		t.Errorf("unexpected export output %q", out)
	}

	store, err := storage.NewReportStorage()
	if err != nil {
		t.Fatalf("NewReportStorage failed: %v", err)
	}
	data, err := store.Get(context.Background(), "weekly-activity")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	var report struct {
		Scope string `json:"scope"`
		Data  struct {
			TotalUsers           int64          `json:"totalUsers"`
			UserExperimentCounts map[string]int `json:"userExperimentCounts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("stored report is not JSON: %v", err)
	}
	if report.Scope != "activity" || report.Data.TotalUsers != 1 || report.Data.UserExperimentCounts["alice"] != 1 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestExport_Errors(t *testing.T) {
	useMemoryStore(t, exampleStore())
	t.Setenv("LABSTATS_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if _, err := runCLI(t, "export", "--scope", "nope"); err == nil {
		t.Error("expected error for unknown scope")
	}
	if _, err := runCLI(t, "export", "--scope", "user"); err == nil {
		t.Error("expected error for user scope without --user")
	}
}
