package turso

import (
	"database/sql"
)

// Repositories holds every turso repository implementation.
type Repositories struct {
	Experiments     *ExperimentRepository
	Detections      *TargetDetectionRepository
	Concentrations  *ConcentrationRepository
	General         *GeneralRecordRepository
	Users           *UserRepository
	ExperimentTypes *ExperimentTypeRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Experiments:     NewExperimentRepository(db),
		Detections:      NewTargetDetectionRepository(db),
		Concentrations:  NewConcentrationRepository(db),
		General:         NewGeneralRecordRepository(db),
		Users:           NewUserRepository(db),
		ExperimentTypes: NewExperimentTypeRepository(db),
	}
}
