package domain

import "time"

type Experiment struct {
	ID               int64
	ExperimentTime   time.Time
	UserID           int64
	ExperimentTypeID int64
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// User is the owner of experiments. Only Name is read by statistics.
type User struct {
	ID    int64
	Name  string
	Email string
}

type ExperimentType struct {
	ID       int64
	TypeName string
}
