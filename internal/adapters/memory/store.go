// Package memory holds in-memory implementations of the persistence ports.
// Collections keep insertion order, which is the order List methods return.
package memory

import (
	"sync"

	"github.com/emiliopalmerini/labstats/internal/domain"
)

type Store struct {
	mu              sync.RWMutex
	experiments     []domain.Experiment
	detections      []domain.TargetDetectionRecord
	concentrations  []domain.ConcentrationRecord
	general         []domain.GeneralRecord
	users           []domain.User
	experimentTypes []domain.ExperimentType
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) AddExperiment(e domain.Experiment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experiments = append(s.experiments, e)
}

func (s *Store) AddTargetDetection(r domain.TargetDetectionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detections = append(s.detections, r)
}

func (s *Store) AddConcentration(r domain.ConcentrationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concentrations = append(s.concentrations, r)
}

func (s *Store) AddGeneral(r domain.GeneralRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.general = append(s.general, r)
}

func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) AddExperimentType(t domain.ExperimentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experimentTypes = append(s.experimentTypes, t)
}

// Repositories returns port implementations backed by the store.
func (s *Store) Repositories() *Repositories {
	return &Repositories{
		Experiments:     &ExperimentRepository{store: s},
		Detections:      &TargetDetectionRepository{store: s},
		Concentrations:  &ConcentrationRepository{store: s},
		General:         &GeneralRecordRepository{store: s},
		Users:           &UserRepository{store: s},
		ExperimentTypes: &ExperimentTypeRepository{store: s},
	}
}

type Repositories struct {
	Experiments     *ExperimentRepository
	Detections      *TargetDetectionRepository
	Concentrations  *ConcentrationRepository
	General         *GeneralRecordRepository
	Users           *UserRepository
	ExperimentTypes *ExperimentTypeRepository
}
