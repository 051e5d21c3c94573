package statistics

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/emiliopalmerini/labstats/internal/adapters/memory"
	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/ports"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store *memory.Store, opts ...Option) *Service {
	t.Helper()
	return NewService(repositoriesFrom(store), opts...)
}

func repositoriesFrom(store *memory.Store) Repositories {
	r := store.Repositories()
	return Repositories{
		Experiments:     r.Experiments,
		Detections:      r.Detections,
		Concentrations:  r.Concentrations,
		General:         r.General,
		Users:           r.Users,
		ExperimentTypes: r.ExperimentTypes,
	}
}

// seedExample stores experiment 5: two detections, three concentrations, one general record.
func seedExample(store *memory.Store) {
	store.AddUser(domain.User{ID: 1, Name: "alice"})
	store.AddExperimentType(domain.ExperimentType{ID: 2, TypeName: "glucose"})
	store.AddExperiment(domain.Experiment{ID: 5, ExperimentTime: baseTime, UserID: 1, ExperimentTypeID: 2})
	store.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 5, Confidence: 0.8})
	store.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 5, Confidence: 0.9})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 5, Concentration: 2.0, Confidence: 0.7})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 5, Concentration: 4.0, Confidence: 0.9})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 5, Concentration: 6.0, Confidence: 0.5})
	store.AddGeneral(domain.GeneralRecord{ExperimentID: 5, Key: "operator", Value: "alice"})
}

func TestExperimentStatistics_EndToEnd(t *testing.T) {
	store := memory.NewStore()
	seedExample(store)
	svc := newTestService(t, store)

	stats, err := svc.ExperimentStatistics(context.Background(), 5)
	if err != nil {
		t.Fatalf("ExperimentStatistics failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(stats))
	}

	s := stats[0]
	if *s.ExperimentID != 5 {
		t.Errorf("expected experiment id 5, got %d", *s.ExperimentID)
	}
	if s.TotalDataPoints != 6 {
		t.Errorf("expected 6 data points, got %d", s.TotalDataPoints)
	}
	assertFloatNear(t, "AverageConcentration", 4.0, s.AverageConcentration)
	assertFloatNear(t, "ConfidenceLevel", 0.76, s.ConfidenceLevel)
	if s.UserName != "alice" || s.ExperimentType != "glucose" {
		t.Errorf("unexpected labels: user=%q type=%q", s.UserName, s.ExperimentType)
	}
	if !s.ExperimentTime.Equal(baseTime) {
		t.Errorf("expected time %v, got %v", baseTime, s.ExperimentTime)
	}
	want := "Experiment contains 6 data points, average concentration 4.00, average confidence 0.76"
	if s.AnalysisSummary != want {
		t.Errorf("expected analysis %q, got %q", want, s.AnalysisSummary)
	}
}

func TestExperimentStatistics_NotFound(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	stats, err := svc.ExperimentStatistics(context.Background(), 404)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats == nil || len(stats) != 0 {
		t.Errorf("expected empty non-nil list, got %v", stats)
	}
}

func TestExperimentStatistics_EdgeCases(t *testing.T) {
	tests := []struct {
		name           string
		seed           func(*memory.Store)
		wantTotal      int
		wantConc       float64
		wantConfidence float64
		wantUser       string
		wantType       string
	}{
		{
			name:     "no records at all",
			seed:     func(s *memory.Store) {},
			wantUser: domain.UnknownLabel,
			wantType: domain.UnknownLabel,
		},
		{
			name: "general records only",
			seed: func(s *memory.Store) {
				s.AddGeneral(domain.GeneralRecord{ExperimentID: 1, Key: "a", Value: "1"})
				s.AddGeneral(domain.GeneralRecord{ExperimentID: 1, Key: "b", Value: "2"})
			},
			wantTotal: 2,
			wantUser:  domain.UnknownLabel,
			wantType:  domain.UnknownLabel,
		},
		{
			name: "detections only",
			seed: func(s *memory.Store) {
				s.AddUser(domain.User{ID: 1, Name: "bob"})
				s.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 1, Confidence: 0.2})
				s.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 1, Confidence: 0.6})
			},
			wantTotal:      2,
			wantConfidence: 0.4,
			wantUser:       "bob",
			wantType:       domain.UnknownLabel,
		},
		{
			name: "records of other experiments are ignored",
			seed: func(s *memory.Store) {
				s.AddExperimentType(domain.ExperimentType{ID: 1, TypeName: "ph"})
				s.AddConcentration(domain.ConcentrationRecord{ExperimentID: 1, Concentration: 3, Confidence: 1})
				s.AddConcentration(domain.ConcentrationRecord{ExperimentID: 2, Concentration: 100, Confidence: 0})
				s.AddGeneral(domain.GeneralRecord{ExperimentID: 2})
			},
			wantTotal:      1,
			wantConc:       3,
			wantConfidence: 1,
			wantUser:       domain.UnknownLabel,
			wantType:       "ph",
		},
		{
			name: "stored empty names are kept",
			seed: func(s *memory.Store) {
				s.AddUser(domain.User{ID: 1, Name: ""})
				s.AddExperimentType(domain.ExperimentType{ID: 1, TypeName: ""})
			},
			wantUser: "",
			wantType: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			store.AddExperiment(domain.Experiment{ID: 1, ExperimentTime: baseTime, UserID: 1, ExperimentTypeID: 1})
			tt.seed(store)
			svc := newTestService(t, store)

			stats, err := svc.ExperimentStatistics(context.Background(), 1)
			if err != nil {
				t.Fatalf("ExperimentStatistics failed: %v", err)
			}
			if len(stats) != 1 {
				t.Fatalf("expected 1 summary, got %d", len(stats))
			}
			s := stats[0]
			if s.TotalDataPoints != tt.wantTotal {
				t.Errorf("expected %d data points, got %d", tt.wantTotal, s.TotalDataPoints)
			}
			assertFloatNear(t, "AverageConcentration", tt.wantConc, s.AverageConcentration)
			assertFloatNear(t, "ConfidenceLevel", tt.wantConfidence, s.ConfidenceLevel)
			if s.UserName != tt.wantUser {
				t.Errorf("expected user %q, got %q", tt.wantUser, s.UserName)
			}
			if s.ExperimentType != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, s.ExperimentType)
			}
		})
	}
}

func TestUserAndTypeStatistics(t *testing.T) {
	store := memory.NewStore()
	store.AddUser(domain.User{ID: 1, Name: "alice"})
	store.AddUser(domain.User{ID: 2, Name: "bob"})
	store.AddExperiment(domain.Experiment{ID: 10, UserID: 1, ExperimentTypeID: 7, ExperimentTime: baseTime})
	store.AddExperiment(domain.Experiment{ID: 11, UserID: 2, ExperimentTypeID: 7, ExperimentTime: baseTime})
	store.AddExperiment(domain.Experiment{ID: 12, UserID: 1, ExperimentTypeID: 8, ExperimentTime: baseTime})
	svc := newTestService(t, store)
	ctx := context.Background()

	byUser, err := svc.UserStatistics(ctx, 1)
	if err != nil {
		t.Fatalf("UserStatistics failed: %v", err)
	}
	assertSummaryIDs(t, "UserStatistics", byUser, 10, 12)

	byType, err := svc.ExperimentTypeStatistics(ctx, 7)
	if err != nil {
		t.Fatalf("ExperimentTypeStatistics failed: %v", err)
	}
	assertSummaryIDs(t, "ExperimentTypeStatistics", byType, 10, 11)

	none, err := svc.UserStatistics(ctx, 99)
	if err != nil {
		t.Fatalf("UserStatistics(99) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no summaries for unknown user, got %d", len(none))
	}
}

func TestTimeRangeStatistics_ExclusiveBounds(t *testing.T) {
	start := baseTime
	end := baseTime.Add(24 * time.Hour)

	store := memory.NewStore()
	store.AddExperiment(domain.Experiment{ID: 1, ExperimentTime: start})
	store.AddExperiment(domain.Experiment{ID: 2, ExperimentTime: start.Add(time.Nanosecond)})
	store.AddExperiment(domain.Experiment{ID: 3, ExperimentTime: start.Add(12 * time.Hour)})
	store.AddExperiment(domain.Experiment{ID: 4, ExperimentTime: end})
	store.AddExperiment(domain.Experiment{ID: 5, ExperimentTime: end.Add(-time.Nanosecond)})
	store.AddExperiment(domain.Experiment{ID: 6, ExperimentTime: start.Add(-time.Hour)})
	svc := newTestService(t, store)

	stats, err := svc.TimeRangeStatistics(context.Background(), start, end)
	if err != nil {
		t.Fatalf("TimeRangeStatistics failed: %v", err)
	}
	assertSummaryIDs(t, "TimeRangeStatistics", stats, 2, 3, 5)
}

func TestTimeRangeStatistics_EmptyWindow(t *testing.T) {
	store := memory.NewStore()
	store.AddExperiment(domain.Experiment{ID: 1, ExperimentTime: baseTime})
	svc := newTestService(t, store)

	stats, err := svc.TimeRangeStatistics(context.Background(), baseTime, baseTime)
	if err != nil {
		t.Fatalf("TimeRangeStatistics failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected no summaries when start == end, got %d", len(stats))
	}
}

func TestOverallStatistics_PooledMean(t *testing.T) {
	store := memory.NewStore()
	store.AddExperiment(domain.Experiment{ID: 1})
	store.AddExperiment(domain.Experiment{ID: 2})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 1, Concentration: 1.0, Confidence: 0.1})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 1, Concentration: 3.0, Confidence: 0.1})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 2, Concentration: 10.0, Confidence: 0.9})
	store.AddTargetDetection(domain.TargetDetectionRecord{ExperimentID: 2, Confidence: 0.9})
	store.AddGeneral(domain.GeneralRecord{ExperimentID: 2})
	svc := newTestService(t, store)

	s, err := svc.OverallStatistics(context.Background())
	if err != nil {
		t.Fatalf("OverallStatistics failed: %v", err)
	}

	assertFloatNear(t, "AverageConcentration", 14.0/3.0, s.AverageConcentration)
	if s.TotalDataPoints != 5 {
		t.Errorf("expected 5 data points, got %d", s.TotalDataPoints)
	}
	if s.ConfidenceLevel != 0 {
		t.Errorf("expected confidence 0, got %v", s.ConfidenceLevel)
	}
	if s.ExperimentID != nil || s.ExperimentTime != nil {
		t.Error("overall summary must not carry id or time")
	}
	if s.ExperimentType != domain.OverallTypeLabel || s.UserName != domain.AllUsersLabel {
		t.Errorf("unexpected labels: type=%q user=%q", s.ExperimentType, s.UserName)
	}
	want := "Total 2 experiments, 5 data points, average 2.50 data points/experiment, average concentration 4.67"
	if s.AnalysisSummary != want {
		t.Errorf("expected analysis %q, got %q", want, s.AnalysisSummary)
	}
}

func TestOverallStatistics_NoExperiments(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	s, err := svc.OverallStatistics(context.Background())
	if err != nil {
		t.Fatalf("OverallStatistics failed: %v", err)
	}
	if s.TotalDataPoints != 0 || s.AverageConcentration != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
	want := "Total 0 experiments, 0 data points, average 0.00 data points/experiment, average concentration 0.00"
	if s.AnalysisSummary != want {
		t.Errorf("expected analysis %q, got %q", want, s.AnalysisSummary)
	}
}

func TestDetailedAnalysis(t *testing.T) {
	store := memory.NewStore()
	seedExample(store)
	svc := newTestService(t, store)
	ctx := context.Background()

	s, err := svc.DetailedAnalysis(ctx, 5)
	if err != nil {
		t.Fatalf("DetailedAnalysis failed: %v", err)
	}
	if s == nil || s.TotalDataPoints != 6 {
		t.Fatalf("expected summary with 6 data points, got %+v", s)
	}

	missing, err := svc.DetailedAnalysis(ctx, 6)
	if err != nil {
		t.Fatalf("DetailedAnalysis(6) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing experiment, got %+v", missing)
	}
}

func TestService_PortFailurePropagates(t *testing.T) {
	errDown := errors.New("database unavailable")

	store := memory.NewStore()
	seedExample(store)
	store.AddExperiment(domain.Experiment{ID: 6, UserID: 1, ExperimentTypeID: 2})

	tests := []struct {
		name  string
		patch func(*Repositories)
		call  func(*Service) error
	}{
		{
			name:  "concentration port",
			patch: func(r *Repositories) { r.Concentrations = failingConcentrations{err: errDown} },
			call: func(s *Service) error {
				_, err := s.ExperimentStatistics(context.Background(), 5)
				return err
			},
		},
		{
			name:  "user directory",
			patch: func(r *Repositories) { r.Users = failingUsers{err: errDown} },
			call: func(s *Service) error {
				_, err := s.UserStatistics(context.Background(), 1)
				return err
			},
		},
		{
			name:  "experiment listing",
			patch: func(r *Repositories) { r.Experiments = failingExperiments{err: errDown} },
			call: func(s *Service) error {
				_, err := s.OverallStatistics(context.Background())
				return err
			},
		},
		{
			name:  "concentration port during roll-up",
			patch: func(r *Repositories) { r.Concentrations = failingConcentrations{err: errDown} },
			call: func(s *Service) error {
				_, err := s.OverallStatistics(context.Background())
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repositoriesFrom(store)
			tt.patch(&repos)
			svc := NewService(repos)

			if err := tt.call(svc); !errors.Is(err, errDown) {
				t.Errorf("expected wrapped port error, got %v", err)
			}
		})
	}
}

func TestService_PortFailureDiscardsScope(t *testing.T) {
	errDown := errors.New("timeout")
	store := memory.NewStore()
	for id := int64(1); id <= 5; id++ {
		store.AddExperiment(domain.Experiment{ID: id, UserID: 1})
	}
	repos := repositoriesFrom(store)
	repos.General = failingGeneralFor{id: 3, err: errDown, next: repos.General}
	svc := NewService(repos, WithConcurrency(2))

	stats, err := svc.UserStatistics(context.Background(), 1)
	if !errors.Is(err, errDown) {
		t.Fatalf("expected error for experiment 3, got %v", err)
	}
	if stats != nil {
		t.Errorf("expected no partial result, got %d summaries", len(stats))
	}
}

func TestService_CanceledContext(t *testing.T) {
	store := memory.NewStore()
	seedExample(store)
	svc := newTestService(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := svc.ExperimentStatistics(ctx, 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if stats != nil {
		t.Errorf("expected no summaries, got %v", stats)
	}

	if _, err := svc.OverallStatistics(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("OverallStatistics: expected context.Canceled, got %v", err)
	}
}

func TestService_ConcurrentFanOutKeepsOrder(t *testing.T) {
	store := memory.NewStore()
	const n = 12
	for id := int64(1); id <= n; id++ {
		store.AddExperiment(domain.Experiment{ID: id, UserID: 1, ExperimentTime: baseTime.Add(time.Duration(id) * time.Minute)})
		store.AddConcentration(domain.ConcentrationRecord{ExperimentID: id, Concentration: float64(id)})
	}
	repos := repositoriesFrom(store)
	// Earlier experiments answer last.
	repos.Detections = slowDetections{next: repos.Detections, delay: func(id int64) time.Duration {
		return time.Duration(n-id) * time.Millisecond
	}}

	for _, workers := range []int{1, 3, n} {
		svc := NewService(repos, WithConcurrency(workers))
		stats, err := svc.UserStatistics(context.Background(), 1)
		if err != nil {
			t.Fatalf("UserStatistics(concurrency=%d) failed: %v", workers, err)
		}
		want := make([]int64, n)
		for i := range want {
			want[i] = int64(i + 1)
		}
		assertSummaryIDs(t, "UserStatistics", stats, want...)
		for i, s := range stats {
			assertFloatNear(t, "AverageConcentration", float64(i+1), s.AverageConcentration)
		}
	}
}

func TestService_ReentrantCalls(t *testing.T) {
	store := memory.NewStore()
	seedExample(store)
	svc := newTestService(t, store)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := svc.ExperimentStatistics(context.Background(), 5)
			if err != nil {
				errs <- err
				return
			}
			if len(stats) != 1 || stats[0].TotalDataPoints != 6 {
				errs <- errors.New("unexpected summary")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestService_ExportsMetrics(t *testing.T) {
	store := memory.NewStore()
	seedExample(store)
	exporter := &recordingExporter{}
	svc := newTestService(t, store, WithMetricsExporter(exporter))
	ctx := context.Background()

	if _, err := svc.ExperimentStatistics(ctx, 5); err != nil {
		t.Fatalf("ExperimentStatistics failed: %v", err)
	}
	if _, err := svc.OverallStatistics(ctx); err != nil {
		t.Fatalf("OverallStatistics failed: %v", err)
	}

	if len(exporter.calls) != 2 {
		t.Fatalf("expected 2 exported calls, got %d", len(exporter.calls))
	}
	first := exporter.calls[0]
	if first.Scope != "experiment" || first.Summaries != 1 || first.DataPoints != 6 || first.Failed {
		t.Errorf("unexpected experiment metrics: %+v", first)
	}
	if exporter.calls[1].Scope != "overall" {
		t.Errorf("expected overall scope, got %q", exporter.calls[1].Scope)
	}
}

func TestWithConcurrency_ClampsToOne(t *testing.T) {
	svc := NewService(Repositories{}, WithConcurrency(0))
	if svc.concurrency != 1 {
		t.Errorf("expected concurrency 1, got %d", svc.concurrency)
	}
}

type failingConcentrations struct{ err error }

func (f failingConcentrations) ListByExperimentID(context.Context, int64) ([]domain.ConcentrationRecord, error) {
	return nil, f.err
}

type failingUsers struct{ err error }

func (f failingUsers) GetByID(context.Context, int64) (*domain.User, error) { return nil, f.err }
func (f failingUsers) List(context.Context) ([]*domain.User, error)         { return nil, f.err }
func (f failingUsers) Count(context.Context) (int64, error)                 { return 0, f.err }

type failingExperiments struct{ err error }

func (f failingExperiments) GetByID(context.Context, int64) (*domain.Experiment, error) {
	return nil, f.err
}
func (f failingExperiments) List(context.Context) ([]*domain.Experiment, error) { return nil, f.err }
func (f failingExperiments) ListByUserID(context.Context, int64) ([]*domain.Experiment, error) {
	return nil, f.err
}
func (f failingExperiments) ListByExperimentTypeID(context.Context, int64) ([]*domain.Experiment, error) {
	return nil, f.err
}

type failingGeneralFor struct {
	id   int64
	err  error
	next ports.GeneralRecordRepository
}

func (f failingGeneralFor) ListByExperimentID(ctx context.Context, id int64) ([]domain.GeneralRecord, error) {
	if id == f.id {
		return nil, f.err
	}
	return f.next.ListByExperimentID(ctx, id)
}

type slowDetections struct {
	next  ports.TargetDetectionRepository
	delay func(int64) time.Duration
}

func (s slowDetections) ListByExperimentID(ctx context.Context, id int64) ([]domain.TargetDetectionRecord, error) {
	select {
	case <-time.After(s.delay(id)):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.next.ListByExperimentID(ctx, id)
}

type recordingExporter struct {
	mu    sync.Mutex
	calls []ports.ComputationMetrics
}

func (r *recordingExporter) ExportComputation(_ context.Context, m *ports.ComputationMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, *m)
	return nil
}

func (r *recordingExporter) Close(context.Context) error { return nil }

func assertSummaryIDs(t *testing.T, name string, stats []domain.StatisticsSummary, want ...int64) {
	t.Helper()
	if len(stats) != len(want) {
		t.Fatalf("%s: expected %d summaries, got %d", name, len(want), len(stats))
	}
	for i, id := range want {
		if stats[i].ExperimentID == nil || *stats[i].ExperimentID != id {
			t.Errorf("%s[%d]: expected experiment %d, got %v", name, i, id, stats[i].ExperimentID)
		}
	}
}

func assertFloatNear(t *testing.T, name string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 0.0001 {
		t.Errorf("%s: expected %.6f, got %.6f", name, expected, actual)
	}
}

func TestOverallTotals(t *testing.T) {
	store := memory.NewStore()
	seedExample(store)
	store.AddExperiment(domain.Experiment{ID: 6, ExperimentTime: baseTime, UserID: 1, ExperimentTypeID: 2})
	store.AddConcentration(domain.ConcentrationRecord{ExperimentID: 6, Concentration: 8.0})
	svc := newTestService(t, store)

	totals, err := svc.OverallTotals(context.Background())
	if err != nil {
		t.Fatalf("OverallTotals failed: %v", err)
	}
	if totals.ExperimentCount != 2 || totals.TotalDataPoints != 7 {
		t.Errorf("unexpected totals %+v", totals)
	}
	assertFloatNear(t, "AverageConcentration", 5.0, totals.AverageConcentration())
}
