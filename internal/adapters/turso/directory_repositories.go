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

type UserRepository struct {
	queries *sqlc.Queries
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{queries: sqlc.New(db)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	id, err := r.queries.CreateUser(ctx, sqlc.CreateUserParams{Name: user.Name, Email: user.Email})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := database.WithRetry(ctx, maxRetries, func() (sqlc.User, error) {
		return r.queries.GetUserByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &domain.User{ID: row.ID, Name: row.Name, Email: row.Email}, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.User, error) {
		return r.queries.ListUsers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*domain.User, len(rows))
	for i, row := range rows {
		users[i] = &domain.User{ID: row.ID, Name: row.Name, Email: row.Email}
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	count, err := database.WithRetry(ctx, maxRetries, func() (int64, error) {
		return r.queries.CountUsers(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

type ExperimentTypeRepository struct {
	queries *sqlc.Queries
}

func NewExperimentTypeRepository(db *sql.DB) *ExperimentTypeRepository {
	return &ExperimentTypeRepository{queries: sqlc.New(db)}
}

func (r *ExperimentTypeRepository) Create(ctx context.Context, et *domain.ExperimentType) error {
	id, err := r.queries.CreateExperimentType(ctx, et.TypeName)
	if err != nil {
		return fmt.Errorf("failed to create experiment type: %w", err)
	}
	et.ID = id
	return nil
}

func (r *ExperimentTypeRepository) GetByID(ctx context.Context, id int64) (*domain.ExperimentType, error) {
	row, err := database.WithRetry(ctx, maxRetries, func() (sqlc.ExperimentType, error) {
		return r.queries.GetExperimentTypeByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get experiment type: %w", err)
	}
	return &domain.ExperimentType{ID: row.ID, TypeName: row.TypeName}, nil
}
