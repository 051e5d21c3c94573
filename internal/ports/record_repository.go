package ports

import (
	"context"

	"github.com/emiliopalmerini/labstats/internal/domain"
)

type TargetDetectionRepository interface {
	ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.TargetDetectionRecord, error)
}

type ConcentrationRepository interface {
	ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.ConcentrationRecord, error)
}

type GeneralRecordRepository interface {
	ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.GeneralRecord, error)
}
