package model

import "time"

// ActivityStats is the dashboard's headline numbers, derived by counting
// the aggregate's lists plus the two standalone counters.
type ActivityStats struct {
	CommunitiesJoined      int `json:"communitiesJoined"`
	ProjectsCreated        int `json:"projectsCreated"`
	HackathonsParticipated int `json:"hackathonsParticipated"`
	ProfileViews           int `json:"profileViews"`
	Contributions          int `json:"contributions"`
}

// ChartSlice is one pie-chart sector: a label, its integer percentage
// share, a display color, and the SVG arc path for the slice.
type ChartSlice struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
	Path       string `json:"path"`
}

// PointsCategory is one bar of the points breakdown. Percentage is the
// bar width relative to the fixed 2000-point ceiling, clamped to 100.
type PointsCategory struct {
	Label      string  `json:"label"`
	Points     int     `json:"points"`
	Percentage float64 `json:"percentage"`
	Icon       string  `json:"icon"`
}

// PointsBreakdown is the full fixed-weight scoring view.
type PointsBreakdown struct {
	HackathonParticipation PointsCategory `json:"hackathonParticipation"`
	CommunityInvolvement   PointsCategory `json:"communityInvolvement"`
	ProjectCompletion      PointsCategory `json:"projectCompletion"`
	Contributions          PointsCategory `json:"contributions"`
	TotalPoints            int            `json:"totalPoints"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
}
