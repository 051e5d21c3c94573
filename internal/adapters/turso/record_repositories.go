package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/infrastructure/database"
	sqlc "github.com/emiliopalmerini/labstats/sqlc/generated"
)

type TargetDetectionRepository struct {
	queries *sqlc.Queries
}

func NewTargetDetectionRepository(db *sql.DB) *TargetDetectionRepository {
	return &TargetDetectionRepository{queries: sqlc.New(db)}
}

func (r *TargetDetectionRepository) Create(ctx context.Context, rec *domain.TargetDetectionRecord) error {
	id, err := r.queries.CreateTargetDetection(ctx, sqlc.CreateTargetDetectionParams{
		ExperimentID: rec.ExperimentID,
		GroupNumber:  int64(rec.GroupNumber),
		ClassName:    rec.ClassName,
		Confidence:   rec.Confidence,
		X:            rec.X,
		Y:            rec.Y,
		Diameter:     rec.Diameter,
	})
	if err != nil {
		return fmt.Errorf("failed to create target detection record: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *TargetDetectionRepository) ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.TargetDetectionRecord, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.TargetDetectionDatum, error) {
		return r.queries.ListTargetDetectionsByExperimentID(ctx, experimentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list target detection records: %w", err)
	}
	records := make([]domain.TargetDetectionRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.TargetDetectionRecord{
			ID:           row.ID,
			ExperimentID: row.ExperimentID,
			GroupNumber:  int(row.GroupNumber),
			ClassName:    row.ClassName,
			Confidence:   row.Confidence,
			X:            row.X,
			Y:            row.Y,
			Diameter:     row.Diameter,
		}
	}
	return records, nil
}

type ConcentrationRepository struct {
	queries *sqlc.Queries
}

func NewConcentrationRepository(db *sql.DB) *ConcentrationRepository {
	return &ConcentrationRepository{queries: sqlc.New(db)}
}

func (r *ConcentrationRepository) Create(ctx context.Context, rec *domain.ConcentrationRecord) error {
	id, err := r.queries.CreateConcentration(ctx, sqlc.CreateConcentrationParams{
		ExperimentID:  rec.ExperimentID,
		GroupNumber:   int64(rec.GroupNumber),
		Concentration: rec.Concentration,
		Confidence:    rec.Confidence,
	})
	if err != nil {
		return fmt.Errorf("failed to create concentration record: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *ConcentrationRepository) ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.ConcentrationRecord, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.ConcentrationDatum, error) {
		return r.queries.ListConcentrationsByExperimentID(ctx, experimentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list concentration records: %w", err)
	}
	records := make([]domain.ConcentrationRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.ConcentrationRecord{
			ID:            row.ID,
			ExperimentID:  row.ExperimentID,
			GroupNumber:   int(row.GroupNumber),
			Concentration: row.Concentration,
			Confidence:    row.Confidence,
		}
	}
	return records, nil
}

type GeneralRecordRepository struct {
	queries *sqlc.Queries
}

func NewGeneralRecordRepository(db *sql.DB) *GeneralRecordRepository {
	return &GeneralRecordRepository{queries: sqlc.New(db)}
}

func (r *GeneralRecordRepository) Create(ctx context.Context, rec *domain.GeneralRecord) error {
	id, err := r.queries.CreateGeneralData(ctx, sqlc.CreateGeneralDataParams{
		ExperimentID: rec.ExperimentID,
		GroupNumber:  int64(rec.GroupNumber),
		DataKey:      rec.Key,
		DataValue:    rec.Value,
	})
	if err != nil {
		return fmt.Errorf("failed to create general record: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *GeneralRecordRepository) ListByExperimentID(ctx context.Context, experimentID int64) ([]domain.GeneralRecord, error) {
	rows, err := database.WithRetry(ctx, maxRetries, func() ([]sqlc.GeneralDatum, error) {
		return r.queries.ListGeneralDataByExperimentID(ctx, experimentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list general records: %w", err)
	}
	records := make([]domain.GeneralRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.GeneralRecord{
			ID:           row.ID,
			ExperimentID: row.ExperimentID,
			GroupNumber:  int(row.GroupNumber),
			Key:          row.DataKey,
			Value:        row.DataValue,
		}
	}
	return records, nil
}
