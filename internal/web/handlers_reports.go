package web

import (
	"context"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/statistics"
	"github.com/emiliopalmerini/labstats/internal/web/templates"
)

func (s *Server) handleOverviewReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := s.fetchOverview(ctx)
	if err != nil {
		internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.Overview(page).Render(ctx, w)
}

func (s *Server) fetchOverview(ctx context.Context) (templates.OverviewPage, error) {
	var (
		userCount int64
		activity  *statistics.UserActivity
		totals    domain.OverallTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.service.UserActivity(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.service.OverallTotals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return templates.OverviewPage{}, err
	}

	overall := totals.Summary()
	page := templates.OverviewPage{
		GeneratedAt:          time.Now().UTC(),
		TotalUsers:           userCount,
		ExperimentCount:      totals.ExperimentCount,
		TotalDataPoints:      totals.TotalDataPoints,
		AverageConcentration: overall.AverageConcentration,
		AnalysisSummary:      overall.AnalysisSummary,
	}
	for name, count := range activity.UserExperimentCounts {
		page.Activity = append(page.Activity, templates.UserActivityRow{UserName: name, ExperimentCount: count})
	}
	sort.Slice(page.Activity, func(i, j int) bool {
		if page.Activity[i].ExperimentCount != page.Activity[j].ExperimentCount {
			return page.Activity[i].ExperimentCount > page.Activity[j].ExperimentCount
		}
		return page.Activity[i].UserName < page.Activity[j].UserName
	})
	return page, nil
}
