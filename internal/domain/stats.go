package domain

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// UnknownLabel replaces a user or experiment type name that cannot be resolved.
	UnknownLabel = "Unknown"
	// OverallTypeLabel is the experiment type reported by the system-wide roll-up.
	OverallTypeLabel = "Overall"
	// AllUsersLabel is the user name reported by the system-wide roll-up.
	AllUsersLabel = "All Users"
)

// StatisticsSummary is the derived statistics of one experiment, or of every
// experiment when ExperimentID and ExperimentTime are nil.
type StatisticsSummary struct {
	ExperimentID         *int64     `json:"experimentId"`
	ExperimentType       string     `json:"experimentType"`
	UserName             string     `json:"userName"`
	ExperimentTime       *time.Time `json:"experimentTime"`
	TotalDataPoints      int        `json:"totalDataPoints"`
	AverageConcentration float64    `json:"averageConcentration"`
	ConfidenceLevel      float64    `json:"confidenceLevel"`
	AnalysisSummary      string     `json:"analysisSummary"`
}

// Measurements groups every record attached to a single experiment.
type Measurements struct {
	Detections     []TargetDetectionRecord
	Concentrations []ConcentrationRecord
	General        []GeneralRecord
}

// TotalDataPoints counts records across all three collections.
func (m Measurements) TotalDataPoints() int {
	return len(m.Detections) + len(m.Concentrations) + len(m.General)
}

// AverageConcentration is the mean concentration, 0 without concentration records.
func (m Measurements) AverageConcentration() float64 {
	values := make([]float64, len(m.Concentrations))
	for i, c := range m.Concentrations {
		values[i] = c.Concentration
	}
	return Mean(values)
}

// ConfidencePool returns concentration confidences followed by detection
// confidences. General records carry no confidence.
func (m Measurements) ConfidencePool() []float64 {
	pool := make([]float64, 0, len(m.Concentrations)+len(m.Detections))
	for _, c := range m.Concentrations {
		pool = append(pool, c.Confidence)
	}
	for _, d := range m.Detections {
		pool = append(pool, d.Confidence)
	}
	return pool
}

// AverageConfidence is the mean of ConfidencePool, 0 when the pool is empty.
func (m Measurements) AverageConfidence() float64 {
	return Mean(m.ConfidencePool())
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// NewExperimentSummary builds the statistics of exp from its measurements.
// Names are used as given; callers resolve missing directory entries.
func NewExperimentSummary(exp *Experiment, m Measurements, userName, typeName string) StatisticsSummary {
	id := exp.ID
	experimentTime := exp.ExperimentTime
	total := m.TotalDataPoints()
	avgConcentration := m.AverageConcentration()
	avgConfidence := m.AverageConfidence()

	return StatisticsSummary{
		ExperimentID:         &id,
		ExperimentType:       typeName,
		UserName:             userName,
		ExperimentTime:       &experimentTime,
		TotalDataPoints:      total,
		AverageConcentration: avgConcentration,
		ConfidenceLevel:      avgConfidence,
		AnalysisSummary:      FormatExperimentAnalysis(total, avgConcentration, avgConfidence),
	}
}

// FormatExperimentAnalysis renders the analysis sentence of a single experiment.
func FormatExperimentAnalysis(totalDataPoints int, avgConcentration, avgConfidence float64) string {
	return fmt.Sprintf("Experiment contains %d data points, average concentration %.2f, average confidence %.2f",
		totalDataPoints, avgConcentration, avgConfidence)
}

// OverallTotals accumulates the system-wide roll-up one experiment at a time.
// Concentration is pooled over individual records, never over per-experiment means.
type OverallTotals struct {
	ExperimentCount    int
	TotalDataPoints    int
	ConcentrationSum   float64
	ConcentrationCount int
}

// Add folds one experiment's measurements into the totals.
func (t *OverallTotals) Add(m Measurements) {
	t.ExperimentCount++
	t.TotalDataPoints += m.TotalDataPoints()
	for _, c := range m.Concentrations {
		t.ConcentrationSum += c.Concentration
		t.ConcentrationCount++
	}
}

// Merge adds other into t.
func (t *OverallTotals) Merge(other OverallTotals) {
	t.ExperimentCount += other.ExperimentCount
	t.TotalDataPoints += other.TotalDataPoints
	t.ConcentrationSum += other.ConcentrationSum
	t.ConcentrationCount += other.ConcentrationCount
}

func (t OverallTotals) AverageConcentration() float64 {
	if t.ConcentrationCount == 0 {
		return 0
	}
	return t.ConcentrationSum / float64(t.ConcentrationCount)
}

func (t OverallTotals) AverageDataPointsPerExperiment() float64 {
	if t.ExperimentCount == 0 {
		return 0
	}
	return float64(t.TotalDataPoints) / float64(t.ExperimentCount)
}

// Summary renders the totals as the "overall" StatisticsSummary.
// ConfidenceLevel is always 0 at this scope.
func (t OverallTotals) Summary() StatisticsSummary {
	avgConcentration := t.AverageConcentration()
	return StatisticsSummary{
		ExperimentType:       OverallTypeLabel,
		UserName:             AllUsersLabel,
		TotalDataPoints:      t.TotalDataPoints,
		AverageConcentration: avgConcentration,
		ConfidenceLevel:      0,
		AnalysisSummary: fmt.Sprintf("Total %d experiments, %d data points, average %.2f data points/experiment, average concentration %.2f",
			t.ExperimentCount, t.TotalDataPoints, t.AverageDataPointsPerExperiment(), avgConcentration),
	}
}
