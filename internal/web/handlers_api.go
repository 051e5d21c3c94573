package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/emiliopalmerini/labstats/internal/domain"
	"github.com/emiliopalmerini/labstats/internal/statistics"
)

func (s *Server) handleExperimentStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := s.service.ExperimentStatistics(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleExperimentSubroute(w http.ResponseWriter, r *http.Request) {
	switch scope, value := r.PathValue("scope"), r.PathValue("value"); {
	case scope == "user":
		s.handleScopedStatistics(w, r, "value", s.service.UserStatistics)
	case scope == "type":
		s.handleScopedStatistics(w, r, "value", s.service.ExperimentTypeStatistics)
	case value == "detailed":
		s.handleDetailedAnalysis(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleScopedStatistics(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	compute func(ctx context.Context, id int64) ([]domain.StatisticsSummary, error),
) {
	id, err := pathID(r, param)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := compute(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleDetailedAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scope")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := s.service.DetailedAnalysis(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if summary == nil {
		http.Error(w, "experiment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, summary)
}

func (s *Server) handleTimeRangeStatistics(w http.ResponseWriter, r *http.Request) {
	start, err := queryTime(r, "startTime")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	end, err := queryTime(r, "endTime")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := s.service.TimeRangeStatistics(r.Context(), start, end)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleOverallStatistics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.OverallStatistics(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

func (s *Server) handleUserCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.users.Count(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, count)
}

func (s *Server) handleUserExperiments(w http.ResponseWriter, r *http.Request) {
	s.handleScopedStatistics(w, r, "userId", s.service.UserStatistics)
}

func (s *Server) handleSystemSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.SystemSummary(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

func (s *Server) handleUserActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.service.UserActivity(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, activity)
}

func (s *Server) handleUserReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := s.service.UserReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, statistics.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, report)
}
