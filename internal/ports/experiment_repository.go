package ports

import (
	"context"

	"github.com/emiliopalmerini/labstats/internal/domain"
)

// ExperimentRepository reads experiments. GetByID returns (nil, nil) when
// the experiment does not exist.
type ExperimentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Experiment, error)
	List(ctx context.Context) ([]*domain.Experiment, error)
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Experiment, error)
	ListByExperimentTypeID(ctx context.Context, experimentTypeID int64) ([]*domain.Experiment, error)
}
