package statistics

import (
	"context"
	"errors"
	"fmt"

	"github.com/emiliopalmerini/labstats/internal/domain"
)

// ErrUserNotFound is returned by UserReport for an unknown user id.
var ErrUserNotFound = errors.New("user not found")

type SystemSummary struct {
	TotalUsers             int64                    `json:"totalUsers"`
	OverallExperimentStats domain.StatisticsSummary `json:"overallExperimentStats"`
}

type UserActivity struct {
	TotalUsers int64 `json:"totalUsers"`
	// UserExperimentCounts is keyed by user name; users sharing a name collapse
	// into the last one listed.
	UserExperimentCounts map[string]int `json:"userExperimentCounts"`
}

// UserReport averages are means of per-experiment values, unlike the pooled
// overall roll-up. Both are nil when the user has no experiments.
type UserReport struct {
	User                           domain.User                `json:"user"`
	Experiments                    []domain.StatisticsSummary `json:"experiments"`
	ExperimentCount                int                        `json:"experimentCount"`
	AverageDataPointsPerExperiment *float64                   `json:"averageDataPointsPerExperiment,omitempty"`
	AverageConcentration           *float64                   `json:"averageConcentration,omitempty"`
}

// SystemSummary returns the user count together with the overall roll-up.
func (s *Service) SystemSummary(ctx context.Context) (*SystemSummary, error) {
	count, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	overall, err := s.OverallStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return &SystemSummary{TotalUsers: count, OverallExperimentStats: overall}, nil
}

// UserActivity counts experiments per user.
func (s *Service) UserActivity(ctx context.Context) (*UserActivity, error) {
	count, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	counts := make(map[string]int, len(users))
	for _, u := range users {
		stats, err := s.UserStatistics(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		counts[u.Name] = len(stats)
	}
	return &UserActivity{TotalUsers: count, UserExperimentCounts: counts}, nil
}

// UserReport returns every experiment summary of a user with their averages.
func (s *Service) UserReport(ctx context.Context, userID int64) (*UserReport, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}

	stats, err := s.UserStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &UserReport{
		User:            *user,
		Experiments:     stats,
		ExperimentCount: len(stats),
	}
	if len(stats) > 0 {
		dataPoints := make([]float64, len(stats))
		concentrations := make([]float64, len(stats))
		for i, st := range stats {
			dataPoints[i] = float64(st.TotalDataPoints)
			concentrations[i] = st.AverageConcentration
		}
		avgDataPoints := domain.Mean(dataPoints)
		avgConcentration := domain.Mean(concentrations)
		report.AverageDataPointsPerExperiment = &avgDataPoints
		report.AverageConcentration = &avgConcentration
	}
	return report, nil
}
