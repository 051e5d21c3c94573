package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/labstats/internal/adapters/memory"
	"github.com/emiliopalmerini/labstats/internal/adapters/otel"
	"github.com/emiliopalmerini/labstats/internal/adapters/storage"
	"github.com/emiliopalmerini/labstats/internal/adapters/turso"
	"github.com/emiliopalmerini/labstats/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestExperimentRepositoryConformance(t *testing.T) {
	var _ ports.ExperimentRepository = (*turso.ExperimentRepository)(nil)
	var _ ports.ExperimentRepository = (*memory.ExperimentRepository)(nil)
}

func TestTargetDetectionRepositoryConformance(t *testing.T) {
	var _ ports.TargetDetectionRepository = (*turso.TargetDetectionRepository)(nil)
	var _ ports.TargetDetectionRepository = (*memory.TargetDetectionRepository)(nil)
}

func TestConcentrationRepositoryConformance(t *testing.T) {
	var _ ports.ConcentrationRepository = (*turso.ConcentrationRepository)(nil)
	var _ ports.ConcentrationRepository = (*memory.ConcentrationRepository)(nil)
}

func TestGeneralRecordRepositoryConformance(t *testing.T) {
	var _ ports.GeneralRecordRepository = (*turso.GeneralRecordRepository)(nil)
	var _ ports.GeneralRecordRepository = (*memory.GeneralRecordRepository)(nil)
}

func TestUserRepositoryConformance(t *testing.T) {
	var _ ports.UserRepository = (*turso.UserRepository)(nil)
	var _ ports.UserRepository = (*memory.UserRepository)(nil)
}

func TestExperimentTypeRepositoryConformance(t *testing.T) {
	var _ ports.ExperimentTypeRepository = (*turso.ExperimentTypeRepository)(nil)
	var _ ports.ExperimentTypeRepository = (*memory.ExperimentTypeRepository)(nil)
}

func TestMetricsExporterConformance(t *testing.T) {
	var _ ports.MetricsExporter = (*otel.Exporter)(nil)
}

func TestReportStorageConformance(t *testing.T) {
	var _ ports.ReportStorage = (*storage.ReportStorage)(nil)
	var _ ports.ReportStorage = (*storage.S3ReportStorage)(nil)
}
