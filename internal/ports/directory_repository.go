package ports

import (
	"context"

	"github.com/emiliopalmerini/labstats/internal/domain"
)

// UserRepository is the user directory. GetByID returns (nil, nil) for an unknown id.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// ExperimentTypeRepository is the experiment type directory. GetByID returns
// (nil, nil) for an unknown id.
type ExperimentTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ExperimentType, error)
}
