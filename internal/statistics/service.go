// Package statistics derives experiment statistics from the measurement
// repositories. Every call recomputes from the repositories' current contents.
package statistics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/ports"
)

const defaultConcurrency = 4

// Repositories holds the ports the service reads from.
type Repositories struct {
	Experiments     ports.ExperimentRepository
	Detections      ports.TargetDetectionRepository
	Concentrations  ports.ConcentrationRepository
	General         ports.GeneralRecordRepository
	Users           ports.UserRepository
	ExperimentTypes ports.ExperimentTypeRepository
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsExporter adds an exporter. Every exporter sees every call.
func WithMetricsExporter(exporter ports.MetricsExporter) Option {
	return func(s *Service) {
		if exporter != nil {
			s.exporters = append(s.exporters, exporter)
		}
	}
}

// WithConcurrency bounds how many experiments are computed at once in
// multi-experiment scopes. Values below 1 mean sequential.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// Service is stateless and safe for concurrent use.
type Service struct {
	repos       Repositories
	logger      *zap.Logger
	exporters   []ports.MetricsExporter
	concurrency int
}

func NewService(repos Repositories, opts ...Option) *Service {
	s := &Service{
		repos:       repos,
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExperimentStatistics returns a one-element list with the statistics of the
// experiment, or an empty list if it does not exist.
func (s *Service) ExperimentStatistics(ctx context.Context, experimentID int64) (stats []domain.StatisticsSummary, err error) {
	defer s.observe(ctx, "experiment", time.Now(), &stats, &err)

	exp, err := s.repos.Experiments.GetByID(ctx, experimentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment %d: %w", experimentID, err)
	}
	if exp == nil {
		s.logger.Debug("experiment not found", zap.Int64("experiment_id", experimentID))
		return []domain.StatisticsSummary{}, nil
	}

	summary, err := s.experimentSummary(ctx, exp)
	if err != nil {
		return nil, err
	}
	return []domain.StatisticsSummary{summary}, nil
}

// UserStatistics returns the statistics of every experiment owned by userID.
func (s *Service) UserStatistics(ctx context.Context, userID int64) (stats []domain.StatisticsSummary, err error) {
	defer s.observe(ctx, "user", time.Now(), &stats, &err)

	experiments, err := s.repos.Experiments.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments for user %d: %w", userID, err)
	}
	s.logger.Debug("resolved user scope", zap.Int64("user_id", userID), zap.Int("experiments", len(experiments)))
	return s.summarize(ctx, experiments)
}

// ExperimentTypeStatistics returns the statistics of every experiment of the given type.
func (s *Service) ExperimentTypeStatistics(ctx context.Context, experimentTypeID int64) (stats []domain.StatisticsSummary, err error) {
	defer s.observe(ctx, "experiment_type", time.Now(), &stats, &err)

	experiments, err := s.repos.Experiments.ListByExperimentTypeID(ctx, experimentTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments for type %d: %w", experimentTypeID, err)
	}
	s.logger.Debug("resolved type scope", zap.Int64("experiment_type_id", experimentTypeID), zap.Int("experiments", len(experiments)))
	return s.summarize(ctx, experiments)
}

// TimeRangeStatistics returns the statistics of experiments strictly after
// start and strictly before end. An experiment at either bound is excluded.
func (s *Service) TimeRangeStatistics(ctx context.Context, start, end time.Time) (stats []domain.StatisticsSummary, err error) {
	defer s.observe(ctx, "time_range", time.Now(), &stats, &err)

	all, err := s.repos.Experiments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}

	var inRange []*domain.Experiment
	for _, exp := range all {
		if exp.ExperimentTime.After(start) && exp.ExperimentTime.Before(end) {
			inRange = append(inRange, exp)
		}
	}
	s.logger.Debug("resolved time range scope",
		zap.Time("start", start), zap.Time("end", end),
		zap.Int("scanned", len(all)), zap.Int("experiments", len(inRange)))
	return s.summarize(ctx, inRange)
}

// OverallStatistics rolls every experiment up into a single summary.
func (s *Service) OverallStatistics(ctx context.Context) (summary domain.StatisticsSummary, err error) {
	start := time.Now()
	defer func() {
		stats := []domain.StatisticsSummary{summary}
		s.observe(ctx, "overall", start, &stats, &err)
	}()

	totals, err := s.OverallTotals(ctx)
	if err != nil {
		return domain.StatisticsSummary{}, err
	}
	return totals.Summary(), nil
}

// OverallTotals returns the raw counters behind OverallStatistics.
func (s *Service) OverallTotals(ctx context.Context) (domain.OverallTotals, error) {
	experiments, err := s.repos.Experiments.List(ctx)
	if err != nil {
		return domain.OverallTotals{}, fmt.Errorf("failed to list experiments: %w", err)
	}

	partials := make([]domain.OverallTotals, len(experiments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, exp := range experiments {
		g.Go(func() error {
			m, err := s.fetchMeasurements(gctx, exp.ID)
			if err != nil {
				return err
			}
			partials[i].Add(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.OverallTotals{}, err
	}

	var totals domain.OverallTotals
	for _, p := range partials {
		totals.Merge(p)
	}
	return totals, nil
}

// DetailedAnalysis returns the statistics of one experiment, or nil if it does not exist.
func (s *Service) DetailedAnalysis(ctx context.Context, experimentID int64) (*domain.StatisticsSummary, error) {
	stats, err := s.ExperimentStatistics(ctx, experimentID)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

// summarize computes one summary per experiment, keeping the input order.
// Any failure discards every summary.
func (s *Service) summarize(ctx context.Context, experiments []*domain.Experiment) ([]domain.StatisticsSummary, error) {
	stats := make([]domain.StatisticsSummary, len(experiments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, exp := range experiments {
		g.Go(func() error {
			summary, err := s.experimentSummary(gctx, exp)
			if err != nil {
				return err
			}
			stats[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) experimentSummary(ctx context.Context, exp *domain.Experiment) (domain.StatisticsSummary, error) {
	m, err := s.fetchMeasurements(ctx, exp.ID)
	if err != nil {
		return domain.StatisticsSummary{}, err
	}

	userName, err := s.userName(ctx, exp)
	if err != nil {
		return domain.StatisticsSummary{}, err
	}
	typeName, err := s.typeName(ctx, exp)
	if err != nil {
		return domain.StatisticsSummary{}, err
	}

	return domain.NewExperimentSummary(exp, m, userName, typeName), nil
}

// fetchMeasurements loads the three record collections of an experiment concurrently.
func (s *Service) fetchMeasurements(ctx context.Context, experimentID int64) (domain.Measurements, error) {
	var m domain.Measurements
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.repos.Detections.ListByExperimentID(gctx, experimentID)
		if err != nil {
			return fmt.Errorf("failed to list target detection records for experiment %d: %w", experimentID, err)
		}
		m.Detections = records
		return nil
	})

	g.Go(func() error {
		records, err := s.repos.Concentrations.ListByExperimentID(gctx, experimentID)
		if err != nil {
			return fmt.Errorf("failed to list concentration records for experiment %d: %w", experimentID, err)
		}
		m.Concentrations = records
		return nil
	})

	g.Go(func() error {
		records, err := s.repos.General.ListByExperimentID(gctx, experimentID)
		if err != nil {
			return fmt.Errorf("failed to list general records for experiment %d: %w", experimentID, err)
		}
		m.General = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Measurements{}, err
	}
	return m, nil
}

func (s *Service) userName(ctx context.Context, exp *domain.Experiment) (string, error) {
	user, err := s.repos.Users.GetByID(ctx, exp.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to get user %d: %w", exp.UserID, err)
	}
	if user == nil {
		s.logger.Warn("user not found, using default label",
			zap.Int64("experiment_id", exp.ID), zap.Int64("user_id", exp.UserID))
		return domain.UnknownLabel, nil
	}
	return user.Name, nil
}

func (s *Service) typeName(ctx context.Context, exp *domain.Experiment) (string, error) {
	et, err := s.repos.ExperimentTypes.GetByID(ctx, exp.ExperimentTypeID)
	if err != nil {
		return "", fmt.Errorf("failed to get experiment type %d: %w", exp.ExperimentTypeID, err)
	}
	if et == nil {
		s.logger.Warn("experiment type not found, using default label",
			zap.Int64("experiment_id", exp.ID), zap.Int64("experiment_type_id", exp.ExperimentTypeID))
		return domain.UnknownLabel, nil
	}
	return et.TypeName, nil
}

// observe logs the call and hands it to the metrics exporters.
func (s *Service) observe(ctx context.Context, scope string, start time.Time, stats *[]domain.StatisticsSummary, err *error) {
	m := &ports.ComputationMetrics{
		Scope:    scope,
		Duration: time.Since(start),
		Failed:   *err != nil,
	}
	if *err == nil {
		m.Summaries = len(*stats)
		for _, st := range *stats {
			m.DataPoints += st.TotalDataPoints
		}
	}

	if *err != nil {
		s.logger.Error("statistics computation failed", zap.String("scope", scope), zap.Error(*err))
	} else {
		s.logger.Debug("statistics computed",
			zap.String("scope", scope),
			zap.Int("summaries", m.Summaries),
			zap.Duration("duration", m.Duration))
	}

	for _, exporter := range s.exporters {
		if exportErr := exporter.ExportComputation(context.WithoutCancel(ctx), m); exportErr != nil {
			s.logger.Warn("failed to export statistics metrics", zap.Error(exportErr))
		}
	}
}
