package httpserver

import (
	"net/http"
	"strconv"

	analyticshttp "knowledgenet/contexts/knowledge-governance/analytics-service/transport/http"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeAnalyticsError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.analytics.Handler.LeaderboardHandler(r.Context(), query.Get("regionId"), limit)
	if err != nil {
		s.logger.Error("leaderboard request failed",
			"event", "http_leaderboard_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeAnalyticsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDashboardSummary always answers 200; missing sources degrade to
// placeholder fields inside the summary.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analytics.Handler.DashboardSummaryHandler(r.Context()))
}

func writeAnalyticsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, analyticshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
