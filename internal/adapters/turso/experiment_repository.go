package turso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/infrastructure/database"
	sqlc "github.com/emiliopalmerini/labstats/sqlc/generated"
)

type ExperimentRepository struct {
	queries *sqlc.Queries
}

func NewExperimentRepository(db *sql.DB) *ExperimentRepository {
	return &ExperimentRepository{queries: sqlc.New(db)}
}

// Create stores the experiment and sets its ID.
func (r *ExperimentRepository) Create(ctx context.Context, experiment *domain.Experiment) error {
	id, err := r.queries.CreateExperiment(ctx, sqlc.CreateExperimentParams{
		ExperimentTime:   formatTime(experiment.ExperimentTime),
		UserID:           experiment.UserID,
		ExperimentTypeID: experiment.ExperimentTypeID,
		Description:      experiment.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create experiment: %w", err)
	}
	experiment.ID = id
	return nil
}

func (r *ExperimentRepository) GetByID(ctx context.Context, id int64) (*domain.Experiment, error) {
	row, err := database.WithRetry(ctx, maxRetries, func() (sqlc.Experiment, error) {
		return r.queries.GetExperimentByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}
	return experimentFromRow(row)
}

func (r *ExperimentRepository) List(ctx context.Context) ([]*domain.Experiment, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.Experiment, error) {
		return r.queries.ListExperiments(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	return experimentsFromRows(rows)
}

func (r *ExperimentRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Experiment, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.Experiment, error) {
		return r.queries.ListExperimentsByUserID(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments by user: %w", err)
	}
	return experimentsFromRows(rows)
}

func (r *ExperimentRepository) ListByExperimentTypeID(ctx context.Context, experimentTypeID int64) ([]*domain.Experiment, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.Experiment, error) {
		return r.queries.ListExperimentsByExperimentTypeID(ctx, experimentTypeID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments by type: %w", err)
	}
	return experimentsFromRows(rows)
}

func experimentsFromRows(rows []sqlc.Experiment) ([]*domain.Experiment, error) {
	experiments := make([]*domain.Experiment, len(rows))
	for i, row := range rows {
		exp, err := experimentFromRow(row)
		if err != nil {
			return nil, err
		}
		experiments[i] = exp
	}
	return experiments, nil
}

func experimentFromRow(row sqlc.Experiment) (*domain.Experiment, error) {
	experimentTime, err := parseTime(row.ExperimentTime)
	if err != nil {
		return nil, fmt.Errorf("experiment %d: invalid experiment_time: %w", row.ID, err)
	}
	createdAt, _ := parseTime(row.CreatedAt)
	updatedAt, _ := parseTime(row.UpdatedAt)

	return &domain.Experiment{
		ID:               row.ID,
		ExperimentTime:   experimentTime,
		UserID:           row.UserID,
		ExperimentTypeID: row.ExperimentTypeID,
		Description:      row.Description,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}
