package templates

import "time"

type OverviewPage struct {
	GeneratedAt time.Time
	TotalUsers  int64

	ExperimentCount      int
	TotalDataPoints      int
	AverageConcentration float64
	AnalysisSummary      string

	Activity []UserActivityRow
}

type UserActivityRow struct {
	UserName        string
	ExperimentCount int
}
