package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
)

// StatsHandler serves the dashboard numbers: activity counters, the two
// pie charts, the points breakdown, and the recent-activity feed.
//
// Anonymous visitors get guest data, which is all zeroes.
type StatsHandler struct {
	userData *service.UserDataService
	profiles *service.ProfileService
	logger   *slog.Logger
	now      func() time.Time
}

func NewStatsHandler(userData *service.UserDataService, profiles *service.ProfileService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		userData: userData,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// userID resolves the aggregate-record owner, empty for guests.
func (h *StatsHandler) userID(r *http.Request) string {
	if session := auth.SessionFromContext(r.Context()); session != nil {
		return session.UserID
	}
	return ""
}

// HandleActivity returns the raw counters.
//
// HTTP: GET /api/stats/activity
func (h *StatsHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userData.ActivityStats(r.Context(), h.userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// HandleDomainChart returns pie sectors for joined-community domains.
//
// HTTP: GET /api/stats/domains
func (h *StatsHandler) HandleDomainChart(w http.ResponseWriter, r *http.Request) {
	slices, err := h.userData.DomainChartData(r.Context(), h.userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, slices)
}

// HandleLanguageChart returns pie sectors for languages detected in the
// profile's skills.
//
// HTTP: GET /api/stats/languages
func (h *StatsHandler) HandleLanguageChart(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, service.LanguageChartData(profile))
}

// HandlePoints returns the points breakdown with per-category
// percentages against the points ceiling.
//
// HTTP: GET /api/stats/points
func (h *StatsHandler) HandlePoints(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.userData.PointsBreakdown(r.Context(), h.userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, breakdown)
}

// activityFeedEntry is an activity item with its timestamp rendered as
// relative time for display.
type activityFeedEntry struct {
	model.ActivityEntry
	TimeAgo string `json:"timeAgo"`
}

// HandleRecentActivity returns the ten most recent activity items.
//
// HTTP: GET /api/stats/recent-activity
func (h *StatsHandler) HandleRecentActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.userData.RecentActivity(r.Context(), h.userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	now := h.now()
	out := make([]activityFeedEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, activityFeedEntry{
			ActivityEntry: e,
			TimeAgo:       service.FormatRelativeTime(e.Timestamp, now),
		})
	}
	writeData(w, http.StatusOK, out)
}
