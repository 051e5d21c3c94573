package domain

// TargetDetectionRecord is one detected object in an experiment image.
type TargetDetectionRecord struct {
	ID           int64
	ExperimentID int64
	GroupNumber  int
	ClassName    string
	Confidence   float64
	X            float64
	Y            float64
	Diameter     float64
}

// ConcentrationRecord is one concentration reading with the model's confidence.
type ConcentrationRecord struct {
	ID            int64
	ExperimentID  int64
	GroupNumber   int
	Concentration float64
	Confidence    float64
}

// GeneralRecord is a free-form key/value observation. It has no confidence.
type GeneralRecord struct {
	ID           int64
	ExperimentID int64
	GroupNumber  int
	Key          string
	Value        string
}
