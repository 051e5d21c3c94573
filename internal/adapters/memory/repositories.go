package memory

import (
	"context"

	"github.com/emiliopalmerini/labstats/internal/domain"
)

type ExperimentRepository struct {
	store *Store
}

func (r *ExperimentRepository) GetByID(ctx context.Context, id int64) (*domain.Experiment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, e := range r.store.experiments {
		if e.ID == id {
			exp := e
			return &exp, nil
		}
	}
	return nil, nil
}

func (r *ExperimentRepository) List(ctx context.Context) ([]*domain.Experiment, error) {
	return r.filter(ctx, func(domain.Experiment) bool { return true })
}

func (r *ExperimentRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Experiment, error) {
	return r.filter(ctx, func(e domain.Experiment) bool { return e.UserID == userID })
}

func (r *ExperimentRepository) ListByExperimentTypeID(ctx context.Context, experimentTypeID int64) ([]*domain.Experiment, error) {
	return r.filter(ctx, func(e domain.Experiment) bool { return e.ExperimentTypeID == experimentTypeID })
}

func (r *ExperimentRepository) filter(ctx context.Context, keep func(domain.Experiment) bool) ([]*domain.Experiment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var experiments []*domain.Experiment
	for _, e := range r.store.experiments {
		if keep(e) {
			exp := e
			experiments = append(experiments, &exp)
		}
	}
	return experiments, nil
}

type TargetDetectionRepository struct {
	store *Store
}

func (r *TargetDetectionRepository) ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.TargetDetectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var records []domain.TargetDetectionRecord
	for _, rec := range r.store.detections {
		if rec.ExperimentID == experimentID {
			records = append(records, rec)
		}
	}
	return records, nil
}

type ConcentrationRepository struct {
	store *Store
}

func (r *ConcentrationRepository) ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.ConcentrationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var records []domain.ConcentrationRecord
	for _, rec := range r.store.concentrations {
		if rec.ExperimentID == experimentID {
			records = append(records, rec)
		}
	}
	return records, nil
}

type GeneralRecordRepository struct {
	store *Store
}

func (r *GeneralRecordRepository) ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.GeneralRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var records []domain.GeneralRecord
	for _, rec := range r.store.general {
		if rec.ExperimentID == experimentID {
			records = append(records, rec)
		}
	}
	return records, nil
}

type UserRepository struct {
	store *Store
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	users := make([]*domain.User, len(r.store.users))
	for i := range r.store.users {
		u := r.store.users[i]
		users[i] = &u
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.users)), nil
}

type ExperimentTypeRepository struct {
	store *Store
}

func (r *ExperimentTypeRepository) GetByID(ctx context.Context, id int64) (*domain.ExperimentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, t := range r.store.experimentTypes {
		if t.ID == id {
			et := t
			return &et, nil
		}
	}
	return nil, nil
}
